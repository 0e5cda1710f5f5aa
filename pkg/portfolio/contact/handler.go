package contact

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/localized-content/pkg/localizedcontent"
)

// Handler handles HTTP requests for the contact record. The record is a
// singleton, so every route works on the bare mount path.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler creates a contact handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Routes returns the contact routes, e.g. mounted at /contact.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Get)
	r.Post("/", h.Create)
	r.Patch("/", h.Update)
	r.Delete("/", h.Delete)

	return r
}

// Get returns the contact record.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	contact, err := h.service.Get(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, contact)
}

// Create creates the contact record. Conflicts once one exists.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid contact payload", http.StatusBadRequest)
		return
	}

	contact, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, contact)
}

// Update applies a partial update to the contact record.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var patch Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid contact payload", http.StatusBadRequest)
		return
	}

	contact, err := h.service.Update(r.Context(), patch)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, contact)
}

// Delete removes the contact record. Always succeeds.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context()); err != nil {
		h.renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrContactNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrContactExists):
		status = http.StatusConflict
	case localizedcontent.IsBadRequest(err):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": err.Error()})
}
