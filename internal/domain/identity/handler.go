package identity

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/bluefood/survey/internal/platform/auth"
	"github.com/bluefood/survey/pkg/pagination"
)

type Handler struct {
	service *Service
	issuer  *auth.Issuer
}

func NewHandler(service *Service, issuer *auth.Issuer) *Handler {
	return &Handler{service: service, issuer: issuer}
}

// RegisterPublic mounts the login routes, reachable without a session.
func (h *Handler) RegisterPublic(g *echo.Group) {
	g.POST("/auth/login", h.Login)
	g.POST("/auth/admin", h.AdminLogin)
}

// RegisterAdmin mounts the roster listings behind the admin role.
func (h *Handler) RegisterAdmin(g *echo.Group) {
	g.GET("/nursing-homes", h.ListNursingHomes)
	g.GET("/surveyors", h.ListSurveyors)
	g.GET("/residents", h.ListResidents)
}

type loginRequest struct {
	NursingHomeID string `json:"nursing_home_id"`
	SurveyorID    string `json:"surveyor_id"`
	ElderlyID     string `json:"elderly_id"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.NursingHomeID == "" || req.SurveyorID == "" || req.ElderlyID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "nursing_home_id, surveyor_id and elderly_id are required")
	}

	id := auth.Identity{
		NursingHomeID: req.NursingHomeID,
		SurveyorID:    req.SurveyorID,
		ElderlyID:     req.ElderlyID,
	}

	if err := h.service.Authenticate(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrFacilityNotFound),
			errors.Is(err, ErrSurveyorNotFound),
			errors.Is(err, ErrSurveyorMismatch),
			errors.Is(err, ErrResidentNotFound),
			errors.Is(err, ErrResidentMismatch):
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
		default:
			log.Error().Err(err).Msg("Identity lookup failed")
			return echo.NewHTTPError(http.StatusBadGateway, "identity lookup failed")
		}
	}

	token, err := h.issuer.IssueSurveyor(id)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue session token")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to establish session")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"token": token,
		"role":  auth.RoleSurveyor,
	})
}

func (h *Handler) AdminLogin(c echo.Context) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.service.AuthenticateAdmin(req.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}

	token, err := h.issuer.IssueAdmin()
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue admin token")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to establish session")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"token": token,
		"role":  auth.RoleAdmin,
	})
}

func (h *Handler) ListNursingHomes(c echo.Context) error {
	items, err := h.service.ListNursingHomes(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list nursing homes")
		return echo.NewHTTPError(http.StatusBadGateway, "listing failed")
	}
	return c.JSON(http.StatusOK, map[string]any{"nursing_homes": items})
}

func (h *Handler) ListSurveyors(c echo.Context) error {
	items, err := h.service.ListSurveyors(c.Request().Context(), c.QueryParam("nursing_home_id"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list surveyors")
		return echo.NewHTTPError(http.StatusBadGateway, "listing failed")
	}
	return c.JSON(http.StatusOK, map[string]any{"surveyors": items})
}

func (h *Handler) ListResidents(c echo.Context) error {
	items, err := h.service.ListResidents(c.Request().Context(), c.QueryParam("nursing_home_id"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list residents")
		return echo.NewHTTPError(http.StatusBadGateway, "listing failed")
	}
	p := pagination.FromContext(c)
	return c.JSON(http.StatusOK, pagination.NewResponse(pagination.Page(items, p), len(items), p))
}
