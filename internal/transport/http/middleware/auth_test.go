package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"leavedesk/internal/domain/auth"
)

const testSecret = "test-secret-0123456789abcdef0123456789"

func authedRequest(t *testing.T, role string) *http.Request {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: "u1", EmployeeID: "e1", Role: role}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAuthAttachesUser(t *testing.T) {
	var got auth.UserContext
	var ok bool
	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetUser(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), authedRequest(t, auth.RoleEmployee))
	if !ok {
		t.Fatal("expected user on context")
	}
	if got.UserID != "u1" || got.EmployeeID != "e1" || got.Role != auth.RoleEmployee {
		t.Fatalf("user = %+v", got)
	}
}

func TestAuthIgnoresInvalidToken(t *testing.T) {
	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); ok {
			t.Error("user must not be set for an invalid token")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	ran := false
	handler := Auth(testSecret)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, auth.RoleEmployee))
	if rec.Code != http.StatusForbidden || ran {
		t.Fatalf("employee: status = %d, ran = %v", rec.Code, ran)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, auth.RoleAdmin))
	if !ran {
		t.Fatal("admin request must reach the handler")
	}
}
