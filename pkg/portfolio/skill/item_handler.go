package skill

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/tendant/localized-content/pkg/localizedcontent"
)

const maxIconBytes = 8 << 20

// ItemHandler handles HTTP requests for skill items. It mounts alongside
// the generic category routes.
type ItemHandler struct {
	items  *ItemService
	logger *slog.Logger
}

// NewItemHandler creates an item handler.
func NewItemHandler(items *ItemService, logger *slog.Logger) *ItemHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ItemHandler{items: items, logger: logger}
}

// Routes returns the routes for skill items. Mounted next to the category
// aggregate routes, e.g. at /skills/items.
func (h *ItemHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateItem)
	r.Get("/", h.ListItems)
	r.Patch("/{itemID}", h.UpdateItem)
	r.Delete("/{itemID}", h.DeleteItem)

	return r
}

type itemPayload struct {
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	Name       *string    `json:"name,omitempty"`
}

// CreateItem adds an item to a category, optionally with an icon file. The
// payload carries the category id.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	payload, icon, err := decodeItemBody(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.CategoryID == nil {
		http.Error(w, "category_id is required", http.StatusBadRequest)
		return
	}

	var name string
	if payload.Name != nil {
		name = *payload.Name
	}
	item, err := h.items.CreateItem(r.Context(), CreateItemRequest{
		CategoryID: *payload.CategoryID,
		Name:       name,
		Icon:       icon,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, item)
}

// ListItems lists a category's items by ?category_id=, optionally filtered
// by ?name=.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(r.URL.Query().Get("category_id"))
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	items, err := h.items.ListItemsByCategory(r.Context(), categoryID, ItemFilter{
		Name: r.URL.Query().Get("name"),
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if items == nil {
		items = []*Item{}
	}

	render.JSON(w, r, items)
}

// UpdateItem renames an item or replaces its icon.
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}
	payload, icon, err := decodeItemBody(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.items.UpdateItem(r.Context(), UpdateItemRequest{
		ItemID: itemID,
		Name:   payload.Name,
		Icon:   icon,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, item)
}

// DeleteItem removes an item and its icon.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	if err := h.items.DeleteItem(r.Context(), itemID); err != nil {
		h.renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeItemBody(r *http.Request) (*itemPayload, *localizedcontent.AssetFile, error) {
	payload := &itemPayload{}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		data, err := io.ReadAll(io.LimitReader(r.Body, maxIconBytes))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read request body: %w", err)
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, payload); err != nil {
				return nil, nil, fmt.Errorf("invalid item payload: %w", err)
			}
		}
		return payload, nil, nil
	}

	if err := r.ParseMultipartForm(maxIconBytes); err != nil {
		return nil, nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}
	if data := r.FormValue("data"); data != "" {
		if err := json.Unmarshal([]byte(data), payload); err != nil {
			return nil, nil, fmt.Errorf("invalid item payload: %w", err)
		}
	}

	var icon *localizedcontent.AssetFile
	if headers := r.MultipartForm.File["icon"]; len(headers) > 0 {
		file, err := readIcon(headers[0])
		if err != nil {
			return nil, nil, err
		}
		icon = file
	}

	return payload, icon, nil
}

func readIcon(header *multipart.FileHeader) (*localizedcontent.AssetFile, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded icon: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded icon: %w", err)
	}

	return &localizedcontent.AssetFile{
		Data:     data,
		FileName: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
	}, nil
}

func (h *ItemHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrItemNotFound) || localizedcontent.IsNotFound(err):
		status = http.StatusNotFound
	case errors.Is(err, ErrItemExists):
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
