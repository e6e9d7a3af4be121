// internal/api/themes/handlers.go
package themes

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/themeapi/internal/api/apiutil"
	"github.com/codr1/themeapi/internal/models"
	"github.com/codr1/themeapi/internal/themestore"
)

const (
	themeIDParam = "id"

	msgThemeNotFound    = "Theme not found"
	msgNameColorsNeeded = "Name and colors are required"
	msgInvalidJSON      = "Invalid JSON body"
	msgCreated          = "Theme created successfully"
	msgUpdated          = "Theme updated successfully"
	msgDeleted          = "Theme deleted successfully"
)

// Store is the subset of themestore.Store the handlers need.
type Store interface {
	List() []models.Summary
	Get(id string) (models.Theme, error)
	Create(input models.NewTheme) (string, error)
	Update(id string, patch models.ThemePatch) (models.Theme, error)
	Delete(id string) (models.Theme, error)
	Featured() []models.Theme
}

type themeRequest struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Colors       models.Colors `json:"colors"`
	PreviewImage string        `json:"previewImage"`
}

type listResponse struct {
	Success bool             `json:"success"`
	Themes  []models.Summary `json:"themes"`
}

type featuredResponse struct {
	Success bool           `json:"success"`
	Themes  []models.Theme `json:"themes"`
}

type themeResponse struct {
	Success bool `json:"success"`
	models.Theme
}

type createResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Register installs the theme routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/themes", h.HandleThemesList)
	mux.HandleFunc("GET /api/themes/featured", h.HandleThemesFeatured)
	mux.HandleFunc("GET /api/themes/{id}", h.HandleThemeDetail)
	mux.HandleFunc("POST /api/themes", h.HandleThemeCreate)
	mux.HandleFunc("PUT /api/themes/{id}", h.HandleThemeUpdate)
	mux.HandleFunc("DELETE /api/themes/{id}", h.HandleThemeDelete)
}

// GET /api/themes
func (h *Handler) HandleThemesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	themes := h.store.List()
	logger.Debug().Int("count", len(themes)).Msg("Listing themes")

	if err := apiutil.WriteJSON(w, http.StatusOK, listResponse{Success: true, Themes: themes}); err != nil {
		logger.Error().Err(err).Msg("Failed to write themes list response")
	}
}

// GET /api/themes/featured
func (h *Handler) HandleThemesFeatured(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	featured := h.store.Featured()
	logger.Debug().Int("count", len(featured)).Msg("Listing featured themes")

	if err := apiutil.WriteJSON(w, http.StatusOK, featuredResponse{Success: true, Themes: featured}); err != nil {
		logger.Error().Err(err).Msg("Failed to write featured themes response")
	}
}

// GET /api/themes/{id}
func (h *Handler) HandleThemeDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	themeID := themeIDFromRequest(r)

	theme, err := h.store.Get(themeID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	logger.Debug().Str("theme_id", themeID).Str("name", theme.Name).Msg("Theme found")
	if err := apiutil.WriteJSON(w, http.StatusOK, themeResponse{Success: true, Theme: theme}); err != nil {
		logger.Error().Err(err).Str("theme_id", themeID).Msg("Failed to write theme response")
	}
}

// POST /api/themes
func (h *Handler) HandleThemeCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	var req themeRequest
	if err := decodeBody(r, &req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	id, err := h.store.Create(models.NewTheme{
		Name:         req.Name,
		Description:  req.Description,
		Colors:       req.Colors,
		PreviewImage: req.PreviewImage,
	})
	if err != nil {
		logger.Info().Str("name", req.Name).Bool("colors_provided", req.Colors != nil).Msg("Theme validation failed")
		writeStoreError(w, r, err)
		return
	}

	logger.Info().Str("theme_id", id).Str("name", req.Name).Msg("Theme created")
	if err := apiutil.WriteJSON(w, http.StatusCreated, createResponse{Success: true, ID: id, Message: msgCreated}); err != nil {
		logger.Error().Err(err).Str("theme_id", id).Msg("Failed to write theme create response")
	}
}

// PUT /api/themes/{id}
func (h *Handler) HandleThemeUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	themeID := themeIDFromRequest(r)

	var patch models.ThemePatch
	if err := decodeBody(r, &patch); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	previous, err := h.store.Update(themeID, patch)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	logger.Info().
		Str("theme_id", themeID).
		Str("previous_name", previous.Name).
		Bool("name_provided", patch.Name.Set).
		Bool("description_provided", patch.Description.Set).
		Bool("colors_provided", patch.Colors.Set).
		Msg("Theme updated")
	if err := apiutil.WriteJSON(w, http.StatusOK, messageResponse{Success: true, Message: msgUpdated}); err != nil {
		logger.Error().Err(err).Str("theme_id", themeID).Msg("Failed to write theme update response")
	}
}

// DELETE /api/themes/{id}
func (h *Handler) HandleThemeDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	themeID := themeIDFromRequest(r)

	deleted, err := h.store.Delete(themeID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	logger.Info().Str("theme_id", themeID).Str("name", deleted.Name).Msg("Theme deleted")
	if err := apiutil.WriteJSON(w, http.StatusOK, messageResponse{Success: true, Message: msgDeleted}); err != nil {
		logger.Error().Err(err).Str("theme_id", themeID).Msg("Failed to write theme delete response")
	}
}

func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, themestore.ErrNotFound):
		log.Ctx(r.Context()).Info().Str("theme_id", themeIDFromRequest(r)).Msg("Theme not found")
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusNotFound, Message: msgThemeNotFound, Err: err})
	case errors.Is(err, themestore.ErrInvalidInput):
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: msgNameColorsNeeded, Err: err})
	default:
		apiutil.WriteError(w, r, err)
	}
}

// decodeBody treats a missing body as an empty object.
func decodeBody(r *http.Request, dst any) error {
	err := apiutil.DecodeJSON(r, dst)
	if err == nil || errors.Is(err, apiutil.ErrEmptyBody) {
		return nil
	}
	return apiutil.HandlerError{Status: http.StatusBadRequest, Message: msgInvalidJSON, Err: err}
}

func themeIDFromRequest(r *http.Request) string {
	return r.PathValue(themeIDParam)
}
