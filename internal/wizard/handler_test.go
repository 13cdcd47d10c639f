package wizard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bluefood/survey/internal/platform/auth"
)

func newHandlerContext(t *testing.T, method, path, body string, id auth.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	ctx := req.Context()
	ctx = context.WithValue(ctx, auth.SubjectKey, id.Subject())
	ctx = context.WithValue(ctx, auth.RoleKey, auth.RoleSurveyor)
	ctx = context.WithValue(ctx, auth.IdentityKey, id)
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_OpenAndNavigate(t *testing.T) {
	q := intakeFake()
	h := NewHandler(NewRegistry(), q)
	id := testID()

	c, rec := newHandlerContext(t, http.MethodPost, "/wizard/intake/open", "", id)
	c.SetParamNames("questionnaire")
	c.SetParamValues("intake")
	if err := h.Open(c); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var state State
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if state.Page != 1 || state.TotalPages != 7 {
		t.Errorf("state = %+v", state)
	}

	c, rec = newHandlerContext(t, http.MethodPost, "/wizard/intake/navigate", `{"direction":"next"}`, id)
	c.SetParamNames("questionnaire")
	c.SetParamValues("intake")
	if err := h.Navigate(c); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if state.Page != 2 {
		t.Errorf("page = %d, want 2", state.Page)
	}
}

func TestHandler_UnknownQuestionnaire(t *testing.T) {
	h := NewHandler(NewRegistry(), intakeFake())

	c, _ := newHandlerContext(t, http.MethodPost, "/wizard/bogus/open", "", testID())
	c.SetParamNames("questionnaire")
	c.SetParamValues("bogus")

	err := h.Open(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_RequiresSurveyorIdentity(t *testing.T) {
	h := NewHandler(NewRegistry(), intakeFake())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/wizard/intake/open", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("questionnaire")
	c.SetParamValues("intake")

	err := h.Open(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestHandler_SubmitValidationPayload(t *testing.T) {
	q := intakeFake()
	registry := NewRegistry()
	h := NewHandler(registry, q)
	id := testID()

	// Walk to the last page through the session directly.
	s := registry.Session(id.Subject(), id)
	if _, err := s.Open(context.Background(), q); err != nil {
		t.Fatalf("Open: %v", err)
	}
	for i := 1; i < q.totalPages; i++ {
		if _, err := s.Next(q.name); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}

	c, rec := newHandlerContext(t, http.MethodPost, "/wizard/intake/submit", "", id)
	c.SetParamNames("questionnaire")
	c.SetParamValues("intake")
	if err := h.Submit(c); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var payload struct {
		Error         string   `json:"error"`
		MissingFields []string `json:"missing_fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if payload.Error != "validation_failed" || len(payload.MissingFields) != 3 {
		t.Errorf("payload = %+v", payload)
	}
}

func TestHandler_NavigateHome(t *testing.T) {
	q := intakeFake()
	registry := NewRegistry()
	h := NewHandler(registry, q)
	id := testID()

	s := registry.Session(id.Subject(), id)
	if _, err := s.Open(context.Background(), q); err != nil {
		t.Fatalf("Open: %v", err)
	}

	c, rec := newHandlerContext(t, http.MethodPost, "/wizard/intake/navigate", `{"direction":"home"}`, id)
	c.SetParamNames("questionnaire")
	c.SetParamValues("intake")
	if err := h.Navigate(c); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"dashboard":true`) {
		t.Errorf("body = %s", rec.Body.String())
	}
	if len(q.persisted) != 0 {
		t.Error("home must not persist")
	}
}
