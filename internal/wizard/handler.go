package wizard

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/bluefood/survey/internal/platform/auth"
)

// Handler exposes the wizard over HTTP for the presentation shell.
type Handler struct {
	registry       *Registry
	questionnaires map[string]Questionnaire
}

func NewHandler(registry *Registry, questionnaires ...Questionnaire) *Handler {
	byName := make(map[string]Questionnaire, len(questionnaires))
	for _, q := range questionnaires {
		byName[q.Name()] = q
	}
	return &Handler{registry: registry, questionnaires: byName}
}

// Register mounts the wizard routes on a group that already carries
// the session middleware.
func (h *Handler) Register(g *echo.Group) {
	g.POST("/wizard/:questionnaire/open", h.Open)
	g.PATCH("/wizard/:questionnaire/draft", h.UpdateDraft)
	g.POST("/wizard/:questionnaire/navigate", h.Navigate)
	g.POST("/wizard/:questionnaire/submit", h.Submit)
}

func (h *Handler) Open(c echo.Context) error {
	q, session, err := h.resolve(c)
	if err != nil {
		return err
	}

	state, err := session.Open(c.Request().Context(), q)
	if err != nil {
		log.Error().Err(err).Str("questionnaire", q.Name()).Msg("Failed to open questionnaire")
		return echo.NewHTTPError(http.StatusBadGateway, "failed to load saved answers")
	}
	return c.JSON(http.StatusOK, state)
}

func (h *Handler) UpdateDraft(c echo.Context) error {
	q, session, err := h.resolve(c)
	if err != nil {
		return err
	}

	var req struct {
		Fields map[string]any `json:"fields"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Fields) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "fields is required")
	}

	state, err := session.UpdateDraft(q.Name(), req.Fields)
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, state)
}

func (h *Handler) Navigate(c echo.Context) error {
	q, session, err := h.resolve(c)
	if err != nil {
		return err
	}

	var req struct {
		Direction string `json:"direction"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	switch req.Direction {
	case "next":
		state, err := session.Next(q.Name())
		if err != nil {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return c.JSON(http.StatusOK, state)
	case "back":
		state, err := session.Back(q.Name())
		if err != nil {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return c.JSON(http.StatusOK, state)
	case "home":
		session.Home(q.Name())
		return c.JSON(http.StatusOK, map[string]any{"dashboard": true})
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "direction must be next, back or home")
	}
}

func (h *Handler) Submit(c echo.Context) error {
	q, session, err := h.resolve(c)
	if err != nil {
		return err
	}

	err = session.Submit(c.Request().Context(), q.Name())
	if err == nil {
		return c.JSON(http.StatusOK, map[string]any{"submitted": true})
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"error":          "validation_failed",
			"missing_fields": vErr.MissingFields,
		})
	}
	var pErr *PersistenceError
	if errors.As(err, &pErr) {
		log.Error().Err(pErr.Err).Str("questionnaire", q.Name()).Msg("Submit failed at persistence")
		return c.JSON(http.StatusBadGateway, map[string]any{
			"error":   "persistence_failed",
			"message": "saving failed, your answers are kept, retry submit",
		})
	}
	return echo.NewHTTPError(http.StatusConflict, err.Error())
}

func (h *Handler) resolve(c echo.Context) (Questionnaire, *Session, error) {
	name := c.Param("questionnaire")
	q, ok := h.questionnaires[name]
	if !ok {
		return nil, nil, echo.NewHTTPError(http.StatusNotFound, "unknown questionnaire: "+name)
	}

	ctx := c.Request().Context()
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return nil, nil, echo.NewHTTPError(http.StatusUnauthorized, "surveyor session required")
	}
	session := h.registry.Session(auth.SubjectFromContext(ctx), id)
	return q, session, nil
}
