// Package api exposes one aggregate family over HTTP. The handler is
// generic over the family's attribute shapes; domain packages supply the
// service instance and patch decoders and mount Routes() on their router.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/tendant/localized-content/pkg/localizedcontent"
)

// Handler handles HTTP requests for one aggregate family.
type Handler[G, T any] struct {
	service                localizedcontent.Service[G, T]
	decodeGeneralPatch     func([]byte) (localizedcontent.Patch[G], error)
	decodeTranslationPatch func([]byte) (localizedcontent.Patch[T], error)
	logger                 *slog.Logger
}

// NewHandler creates a handler for one family. The patch decoders turn raw
// JSON into the family's concrete patch types; build them with PatchDecoder.
func NewHandler[G, T any](
	service localizedcontent.Service[G, T],
	decodeGeneralPatch func([]byte) (localizedcontent.Patch[G], error),
	decodeTranslationPatch func([]byte) (localizedcontent.Patch[T], error),
	logger *slog.Logger,
) *Handler[G, T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler[G, T]{
		service:                service,
		decodeGeneralPatch:     decodeGeneralPatch,
		decodeTranslationPatch: decodeTranslationPatch,
		logger:                 logger,
	}
}

// PatchDecoder builds a JSON decoder for a concrete patch type P.
func PatchDecoder[A any, P localizedcontent.Patch[A]]() func([]byte) (localizedcontent.Patch[A], error) {
	return func(data []byte) (localizedcontent.Patch[A], error) {
		var p P
		if len(data) > 0 {
			if err := json.Unmarshal(data, &p); err != nil {
				return nil, err
			}
		}
		return p, nil
	}
}

// Routes returns the routes for one aggregate family.
func (h *Handler[G, T]) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateGeneral)
	r.Get("/", h.List)
	r.Get("/grouped", h.ListGrouped)

	r.Get("/{generalID}", h.GetGeneral)
	r.Patch("/{generalID}", h.UpdateGeneral)
	r.Delete("/{generalID}", h.DeleteGeneral)

	r.Post("/{generalID}/translations", h.AddTranslation)
	r.Get("/{generalID}/translations/{locale}", h.GetByLocale)
	r.Patch("/{generalID}/translations/{locale}", h.UpdateTranslation)
	r.Delete("/{generalID}/translations/{locale}", h.DeleteTranslation)

	return r
}

// CreateGeneral creates a General record explicitly, optionally with asset
// files from a multipart form.
func (h *Handler[G, T]) CreateGeneral(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var attrs G
	if err := json.Unmarshal(body.data, &attrs); err != nil {
		http.Error(w, "invalid attributes payload", http.StatusBadRequest)
		return
	}

	general, err := h.service.CreateGeneral(r.Context(), localizedcontent.CreateGeneralRequest[G]{
		Attributes: attrs,
		Assets:     body.assets,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, general)
}

// List lists all localized views for the locale in the query string.
func (h *Handler[G, T]) List(w http.ResponseWriter, r *http.Request) {
	locale := localizedcontent.Locale(r.URL.Query().Get("locale"))
	views, err := h.service.ListByLocale(r.Context(), locale)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if views == nil {
		views = []*localizedcontent.LocalizedView[G, T]{}
	}

	render.JSON(w, r, views)
}

// ListGrouped lists every translation of the family grouped by General id.
func (h *Handler[G, T]) ListGrouped(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.service.ListGrouped(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, grouped)
}

// GetGeneral returns one General by id.
func (h *Handler[G, T]) GetGeneral(w http.ResponseWriter, r *http.Request) {
	id, ok := h.generalID(w, r)
	if !ok {
		return
	}

	general, err := h.service.GetGeneral(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, general)
}

// UpdateGeneral applies a partial update, optionally replacing the General's
// assets with files from a multipart form.
func (h *Handler[G, T]) UpdateGeneral(w http.ResponseWriter, r *http.Request) {
	id, ok := h.generalID(w, r)
	if !ok {
		return
	}
	body, err := decodeBody(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	patch, err := h.decodeGeneralPatch(body.data)
	if err != nil {
		http.Error(w, "invalid patch payload", http.StatusBadRequest)
		return
	}

	general, err := h.service.UpdateGeneral(r.Context(), localizedcontent.UpdateGeneralRequest[G]{
		GeneralID: id,
		Patch:     patch,
		Assets:    body.assets,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, general)
}

// DeleteGeneral removes a General with everything it owns. Deleting an
// absent General succeeds.
func (h *Handler[G, T]) DeleteGeneral(w http.ResponseWriter, r *http.Request) {
	id, ok := h.generalID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteGeneral(r.Context(), id); err != nil {
		h.renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type addTranslationPayload[G, T any] struct {
	Locale            localizedcontent.Locale `json:"locale"`
	Attributes        T                       `json:"attributes"`
	GeneralAttributes *G                      `json:"general_attributes,omitempty"`
}

// AddTranslation attaches a translation, optionally with a document file.
// For singleton families the payload may carry general_attributes to create
// the General implicitly.
func (h *Handler[G, T]) AddTranslation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.generalID(w, r)
	if !ok {
		return
	}
	body, err := decodeBody(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var payload addTranslationPayload[G, T]
	if err := json.Unmarshal(body.data, &payload); err != nil {
		http.Error(w, "invalid translation payload", http.StatusBadRequest)
		return
	}

	view, err := h.service.AddTranslation(r.Context(), localizedcontent.AddTranslationRequest[G, T]{
		GeneralID:         id,
		Locale:            payload.Locale,
		Attributes:        payload.Attributes,
		Document:          body.document,
		GeneralAttributes: payload.GeneralAttributes,
		GeneralAssets:     body.assets,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, view)
}

// GetByLocale returns the localized view for one (general, locale) pair.
func (h *Handler[G, T]) GetByLocale(w http.ResponseWriter, r *http.Request) {
	id, ok := h.generalID(w, r)
	if !ok {
		return
	}
	locale := localizedcontent.Locale(chi.URLParam(r, "locale"))

	view, err := h.service.GetByLocale(r.Context(), id, locale)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, view)
}

// UpdateTranslation applies a partial update to one translation, optionally
// replacing its document.
func (h *Handler[G, T]) UpdateTranslation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.generalID(w, r)
	if !ok {
		return
	}
	locale := localizedcontent.Locale(chi.URLParam(r, "locale"))
	body, err := decodeBody(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	patch, err := h.decodeTranslationPatch(body.data)
	if err != nil {
		http.Error(w, "invalid patch payload", http.StatusBadRequest)
		return
	}

	view, err := h.service.UpdateTranslation(r.Context(), localizedcontent.UpdateTranslationRequest[T]{
		GeneralID: id,
		Locale:    locale,
		Patch:     patch,
		Document:  body.document,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, view)
}

// DeleteTranslationResponse reports whether removing a translation cascaded
// into deleting the owning General.
type DeleteTranslationResponse struct {
	GeneralDeleted bool `json:"general_deleted"`
}

// DeleteTranslation removes one translation.
func (h *Handler[G, T]) DeleteTranslation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.generalID(w, r)
	if !ok {
		return
	}
	locale := localizedcontent.Locale(chi.URLParam(r, "locale"))

	generalDeleted, err := h.service.DeleteTranslation(r.Context(), id, locale)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, DeleteTranslationResponse{GeneralDeleted: generalDeleted})
}

// generalID parses the generalID URL parameter. The literal "current"
// resolves to uuid.Nil, which singleton families treat as "the one General".
func (h *Handler[G, T]) generalID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "generalID")
	if raw == "current" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, "invalid general id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler[G, T]) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case localizedcontent.IsNotFound(err):
		status = http.StatusNotFound
	case localizedcontent.IsConflict(err):
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
