package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/localized-content/pkg/localizedcontent"
	"github.com/tendant/localized-content/pkg/localizedcontent/api"
	"github.com/tendant/localized-content/pkg/localizedcontent/config"
	memoryrepo "github.com/tendant/localized-content/pkg/localizedcontent/repo/memory"
	postgresrepo "github.com/tendant/localized-content/pkg/localizedcontent/repo/postgres"
	"github.com/tendant/localized-content/pkg/portfolio/contact"
	contactmemory "github.com/tendant/localized-content/pkg/portfolio/contact/store/memory"
	contactpostgres "github.com/tendant/localized-content/pkg/portfolio/contact/store/postgres"
	"github.com/tendant/localized-content/pkg/portfolio/experience"
	"github.com/tendant/localized-content/pkg/portfolio/profile"
	"github.com/tendant/localized-content/pkg/portfolio/project"
	"github.com/tendant/localized-content/pkg/portfolio/skill"
	itemmemory "github.com/tendant/localized-content/pkg/portfolio/skill/itemstore/memory"
	itempostgres "github.com/tendant/localized-content/pkg/portfolio/skill/itemstore/postgres"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(config.WithEnv())
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	store, err := cfg.BuildBlobStore()
	if err != nil {
		logger.Error("failed to build storage provider", "error", err)
		os.Exit(1)
	}

	pool, err := cfg.ConnectPool(ctx)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
	}

	router, err := buildRouter(pool, store, logger)
	if err != nil {
		logger.Error("failed to build services", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info("localized-content server starting",
			"port", cfg.Port,
			"environment", cfg.Environment,
			"database", cfg.DatabaseType,
			"storage", cfg.StorageProvider)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exiting")
}

// newRepository picks the postgres repository when a pool is present, the
// in-memory one otherwise.
func newRepository[G, T any](pool *pgxpool.Pool, family string) localizedcontent.Repository[G, T] {
	if pool != nil {
		return postgresrepo.NewWithPool[G, T](pool, family)
	}
	return memoryrepo.New[G, T]()
}

func buildRouter(pool *pgxpool.Pool, store localizedcontent.BlobStore, logger *slog.Logger) (chi.Router, error) {
	projectSvc, err := project.NewService(
		localizedcontent.WithRepository(newRepository[project.Attributes, project.TranslationAttributes](pool, project.Family)),
		localizedcontent.WithBlobStore[project.Attributes, project.TranslationAttributes](store),
		localizedcontent.WithLogger[project.Attributes, project.TranslationAttributes](logger),
	)
	if err != nil {
		return nil, fmt.Errorf("project service: %w", err)
	}

	experienceSvc, err := experience.NewService(
		localizedcontent.WithRepository(newRepository[experience.Attributes, experience.TranslationAttributes](pool, experience.Family)),
		localizedcontent.WithBlobStore[experience.Attributes, experience.TranslationAttributes](store),
		localizedcontent.WithLogger[experience.Attributes, experience.TranslationAttributes](logger),
	)
	if err != nil {
		return nil, fmt.Errorf("experience service: %w", err)
	}

	profileSvc, err := profile.NewService(
		localizedcontent.WithRepository(newRepository[profile.Attributes, profile.TranslationAttributes](pool, profile.Family)),
		localizedcontent.WithBlobStore[profile.Attributes, profile.TranslationAttributes](store),
		localizedcontent.WithLogger[profile.Attributes, profile.TranslationAttributes](logger),
	)
	if err != nil {
		return nil, fmt.Errorf("profile service: %w", err)
	}

	var itemStore skill.ItemStore
	if pool != nil {
		itemStore = itempostgres.NewWithPool(pool)
	} else {
		itemStore = itemmemory.New()
	}

	categorySvc, err := skill.NewCategoryService(itemStore,
		localizedcontent.WithRepository(newRepository[skill.Attributes, skill.TranslationAttributes](pool, skill.Family)),
		localizedcontent.WithBlobStore[skill.Attributes, skill.TranslationAttributes](store),
		localizedcontent.WithLogger[skill.Attributes, skill.TranslationAttributes](logger),
	)
	if err != nil {
		return nil, fmt.Errorf("skill category service: %w", err)
	}

	itemSvc := skill.NewItemService(categorySvc, itemStore,
		skill.WithItemBlobStore(store),
		skill.WithItemLogger(logger),
	)

	var contactStore contact.Store
	if pool != nil {
		contactStore = contactpostgres.NewWithPool(pool)
	} else {
		contactStore = contactmemory.New()
	}
	contactSvc := contact.NewService(contactStore, contact.WithLogger(logger))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1/portfolio", func(r chi.Router) {
		r.Mount("/projects", api.NewHandler(projectSvc,
			api.PatchDecoder[project.Attributes, project.Patch](),
			api.PatchDecoder[project.TranslationAttributes, project.TranslationPatch](),
			logger).Routes())
		r.Mount("/experiences", api.NewHandler(experienceSvc,
			api.PatchDecoder[experience.Attributes, experience.Patch](),
			api.PatchDecoder[experience.TranslationAttributes, experience.TranslationPatch](),
			logger).Routes())
		r.Mount("/about", api.NewHandler(profileSvc,
			api.PatchDecoder[profile.Attributes, profile.Patch](),
			api.PatchDecoder[profile.TranslationAttributes, profile.TranslationPatch](),
			logger).Routes())
		r.Mount("/skills/categories", api.NewHandler(categorySvc,
			api.PatchDecoder[skill.Attributes, skill.Patch](),
			api.PatchDecoder[skill.TranslationAttributes, skill.TranslationPatch](),
			logger).Routes())
		r.Mount("/skills/items", skill.NewItemHandler(itemSvc, logger).Routes())
		r.Mount("/contact", contact.NewHandler(contactSvc, logger).Routes())
	})

	return r, nil
}
