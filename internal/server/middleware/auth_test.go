package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "test-secret"

// protected records the context values BearerAuth installed.
func protected(gotUser, gotRole *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotUser = UserIDFromContext(r.Context())
		*gotRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestBearerAuth_ValidToken(t *testing.T) {
	token, err := IssueToken(testSecret, "u1", "USER", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	var gotUser, gotRole string
	handler := BearerAuth(testSecret)(protected(&gotUser, &gotRole))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUser != "u1" || gotRole != "USER" {
		t.Errorf("context = %q/%q; want u1/USER", gotUser, gotRole)
	}
}

func TestBearerAuth_Rejections(t *testing.T) {
	expired, err := IssueToken(testSecret, "u1", "USER", -time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	wrongKey, err := IssueToken("other-secret", "u1", "USER", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
		{"wrong signing key", "Bearer " + wrongKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser, gotRole string
			handler := BearerAuth(testSecret)(protected(&gotUser, &gotRole))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/auth/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	for _, role := range []string{"USER", "ADMIN"} {
		token, err := IssueToken(testSecret, "u1", role, time.Hour)
		if err != nil {
			t.Fatalf("IssueToken failed: %v", err)
		}

		var gotUser, gotRole string
		handler := BearerAuth(testSecret)(RequireAdmin(protected(&gotUser, &gotRole)))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/admin/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		handler.ServeHTTP(rec, req)

		want := http.StatusForbidden
		if role == "ADMIN" {
			want = http.StatusOK
		}
		if rec.Code != want {
			t.Errorf("role %s: expected %d, got %d", role, want, rec.Code)
		}
	}
}
