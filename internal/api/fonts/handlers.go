// internal/api/fonts/handlers.go
package fonts

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/themeapi/internal/api/apiutil"
	fontdir "github.com/codr1/themeapi/internal/fonts"
)

const (
	fontContentType  = "font/ttf"
	fontCacheControl = "public, max-age=31536000"

	msgListFailed   = "Failed to list fonts"
	msgLoadFailed   = "Failed to load font"
	msgFontNotFound = "Font not found"
	msgSuggestion   = "Check the family and weight spelling, or GET /api/fonts for the available fonts"
)

// Resolver is the subset of fonts.Resolver the handlers need.
type Resolver interface {
	Resolve(family, weight string) (fontdir.Font, error)
	ListAll() ([]fontdir.Info, error)
}

type listResponse struct {
	Success bool           `json:"success"`
	Fonts   []fontdir.Info `json:"fonts"`
	Count   int            `json:"count"`
}

type notFoundResponse struct {
	Success        bool     `json:"success"`
	Error          string   `json:"error"`
	Message        string   `json:"message"`
	RequestedFile  string   `json:"requestedFile"`
	AvailableFonts []string `json:"availableFonts"`
	Suggestion     string   `json:"suggestion"`
}

type Handler struct {
	resolver Resolver
}

func NewHandler(resolver Resolver) *Handler {
	return &Handler{resolver: resolver}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/fonts", h.HandleFontsList)
	mux.HandleFunc("GET /api/fonts/{family}/{weight}", h.HandleFontFile)
}

// GET /api/fonts
func (h *Handler) HandleFontsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	fonts, err := h.resolver.ListAll()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list fonts")
		writeJSON(w, r, http.StatusInternalServerError, apiutil.ErrorResponse{
			Success: false,
			Error:   msgListFailed,
			Message: err.Error(),
		})
		return
	}

	logger.Debug().Int("count", len(fonts)).Msg("Listing fonts")
	writeJSON(w, r, http.StatusOK, listResponse{Success: true, Fonts: fonts, Count: len(fonts)})
}

// GET /api/fonts/{family}/{weight}
func (h *Handler) HandleFontFile(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	family := r.PathValue("family")
	weight := r.PathValue("weight")

	font, err := h.resolver.Resolve(family, weight)
	if err != nil {
		var notFound *fontdir.NotFoundError
		switch {
		case errors.As(err, &notFound):
			logger.Info().
				Str("family", family).
				Str("weight", weight).
				Str("requested_file", notFound.RequestedFile).
				Int("available", len(notFound.Available)).
				Msg("Font not found")
			writeJSON(w, r, http.StatusNotFound, notFoundResponse{
				Success:        false,
				Error:          msgFontNotFound,
				Message:        fmt.Sprintf("Font file %s does not exist", notFound.RequestedFile),
				RequestedFile:  notFound.RequestedFile,
				AvailableFonts: notFound.Available,
				Suggestion:     msgSuggestion,
			})
		case errors.Is(err, fontdir.ErrIOFailure):
			logger.Error().Err(err).Str("family", family).Str("weight", weight).Msg("Failed to read font")
			writeJSON(w, r, http.StatusInternalServerError, apiutil.ErrorResponse{
				Success: false,
				Error:   msgLoadFailed,
				Message: err.Error(),
			})
		default:
			apiutil.WriteError(w, r, err)
		}
		return
	}

	logger.Debug().Str("file", font.FileName()).Int("bytes", len(font.Data)).Msg("Serving font")
	w.Header().Set("Content-Type", fontContentType)
	w.Header().Set("Cache-Control", fontCacheControl)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	http.ServeContent(w, r, font.FileName(), font.ModTime, bytes.NewReader(font.Data))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	if err := apiutil.WriteJSON(w, status, payload); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write fonts response")
	}
}
