package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func signTestToken(t *testing.T, secret []byte, subject string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestAdminAuth(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{
			name:           "valid token",
			header:         "Bearer " + signTestToken(t, secret, "staff", time.Now().Add(time.Hour)),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "no header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "not a bearer scheme",
			header:         "Basic abc",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			header:         "Bearer not-a-jwt",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong secret",
			header:         "Bearer " + signTestToken(t, []byte("other-secret"), "staff", time.Now().Add(time.Hour)),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			header:         "Bearer " + signTestToken(t, secret, "staff", time.Now().Add(-time.Hour)),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var gotSubject string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotSubject = UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AdminAuth(secret)(next).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedStatus == http.StatusOK && gotSubject != "staff" {
				t.Fatalf("expected subject %q in context, got %q", "staff", gotSubject)
			}
		})
	}
}

func TestOptionalUser(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")

	t.Run("valid token attaches subject", func(t *testing.T) {
		t.Parallel()
		var gotSubject string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotSubject = UserIDFromContext(r.Context())
		})

		req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, secret, "user-7", time.Now().Add(time.Hour)))
		OptionalUser(secret)(next).ServeHTTP(httptest.NewRecorder(), req)

		if gotSubject != "user-7" {
			t.Fatalf("expected subject %q, got %q", "user-7", gotSubject)
		}
	})

	t.Run("guest passes through", func(t *testing.T) {
		t.Parallel()
		var gotSubject string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotSubject = UserIDFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
		rec := httptest.NewRecorder()
		OptionalUser(secret)(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if gotSubject != "" {
			t.Fatalf("expected empty subject for guest, got %q", gotSubject)
		}
	})

	t.Run("invalid token is treated as guest", func(t *testing.T) {
		t.Parallel()
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		rec := httptest.NewRecorder()
		OptionalUser(secret)(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	})
}
