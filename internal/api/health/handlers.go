// internal/api/health/handlers.go
package health

import (
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/codr1/themeapi/internal/api/apiutil"
)

// timestampLayout is ISO 8601 in UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z"

type Counter interface {
	Count() int
}

type response struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Themes    int    `json:"themes"`
}

type Handler struct {
	themes Counter
	clock  clockwork.Clock
}

func NewHandler(themes Counter, clock clockwork.Clock) *Handler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Handler{themes: themes, clock: clock}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HandleHealth)
}

// GET /health
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	resp := response{
		Status:    "OK",
		Timestamp: h.clock.Now().UTC().Format(timestampLayout),
		Themes:    h.themes.Count(),
	}
	logger.Debug().Int("themes", resp.Themes).Msg("Health check")

	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write health response")
	}
}
