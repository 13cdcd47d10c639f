package progress

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/bluefood/survey/internal/platform/auth"
	"github.com/bluefood/survey/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the surveyor-facing progress route.
func (h *Handler) Register(g *echo.Group) {
	g.GET("/progress", h.Get)
}

// RegisterAdmin mounts the admin roll-up routes.
func (h *Handler) RegisterAdmin(g *echo.Group) {
	g.GET("/progress", h.List)
	g.GET("/progress/summary", h.Summary)
}

// Get returns the session resident's progress, creating the row on the
// first dashboard visit.
func (h *Handler) Get(c echo.Context) error {
	id, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "surveyor session required")
	}

	p, err := h.service.GetOrCreate(c.Request().Context(), id)
	if err != nil {
		log.Error().Err(err).Str("elderly_id", id.ElderlyID).Msg("Failed to load progress")
		return echo.NewHTTPError(http.StatusBadGateway, "failed to load progress")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) List(c echo.Context) error {
	rows, err := h.service.List(c.Request().Context(), c.QueryParam("nursing_home_id"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list progress")
		return echo.NewHTTPError(http.StatusBadGateway, "listing failed")
	}
	p := pagination.FromContext(c)
	return c.JSON(http.StatusOK, pagination.NewResponse(pagination.Page(rows, p), len(rows), p))
}

func (h *Handler) Summary(c echo.Context) error {
	sum, err := h.service.Summarize(c.Request().Context(), c.QueryParam("nursing_home_id"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to summarize progress")
		return echo.NewHTTPError(http.StatusBadGateway, "summary failed")
	}
	return c.JSON(http.StatusOK, sum)
}
