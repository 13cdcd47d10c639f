package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bluefood/survey/internal/platform/auth"
)

func testHandler() *Handler {
	svc := NewService(newMockRepo(), "admin-secret")
	issuer := auth.NewIssuer([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	return NewHandler(svc, issuer)
}

func postJSON(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_Login(t *testing.T) {
	h := testHandler()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantReason string
	}{
		{
			"valid triple",
			`{"nursing_home_id":"NH-001","surveyor_id":"SV-010","elderly_id":"EL-123"}`,
			http.StatusOK, "",
		},
		{
			"missing field",
			`{"nursing_home_id":"NH-001","surveyor_id":"SV-010"}`,
			http.StatusBadRequest, "",
		},
		{
			"unknown facility",
			`{"nursing_home_id":"NH-999","surveyor_id":"SV-010","elderly_id":"EL-123"}`,
			http.StatusUnauthorized, "nursing home not found",
		},
		{
			"mismatched surveyor",
			`{"nursing_home_id":"NH-001","surveyor_id":"SV-020","elderly_id":"EL-123"}`,
			http.StatusUnauthorized, "surveyor does not belong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := postJSON("/auth/login", tt.body)
			err := h.Login(c)

			if tt.wantStatus == http.StatusBadRequest {
				he, ok := err.(*echo.HTTPError)
				if !ok || he.Code != http.StatusBadRequest {
					t.Fatalf("expected 400, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantReason != "" && !strings.Contains(rec.Body.String(), tt.wantReason) {
				t.Errorf("body = %s, want reason %q", rec.Body.String(), tt.wantReason)
			}
		})
	}
}

func TestHandler_Login_IssuesParsableToken(t *testing.T) {
	h := testHandler()

	c, rec := postJSON("/auth/login", `{"nursing_home_id":"NH-001","surveyor_id":"SV-010","elderly_id":"EL-123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	claims, err := h.issuer.Parse(resp["token"])
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Role != auth.RoleSurveyor || claims.ElderlyID != "EL-123" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestHandler_AdminLogin(t *testing.T) {
	h := testHandler()

	c, rec := postJSON("/auth/admin", `{"password":"admin-secret"}`)
	if err := h.AdminLogin(c); err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	claims, err := h.issuer.Parse(resp["token"])
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Role != auth.RoleAdmin {
		t.Errorf("role = %q", claims.Role)
	}

	c, rec = postJSON("/auth/admin", `{"password":"nope"}`)
	if err := h.AdminLogin(c); err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestHandler_ListResidents(t *testing.T) {
	h := testHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/residents?nursing_home_id=NH-001", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListResidents(c); err != nil {
		t.Fatalf("ListResidents: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Data  []*Resident `json:"data"`
		Total int         `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != "EL-123" {
		t.Errorf("residents = %+v", resp.Data)
	}
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Total)
	}
}
