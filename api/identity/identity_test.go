package identity_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/matheusot/enquete/api/identity"
)

func mintToken(t *testing.T, secret, email string, expiresAt time.Time) string {
	t.Helper()
	claims := identity.Claims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiresAt.Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("could not sign token: %v", err)
	}
	return token
}

func TestSessionProviderFromRequest(t *testing.T) {
	provider := identity.NewSessionProvider()

	t.Run("reads the session cookie", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "test-secret")

		req := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)
		req.AddCookie(&http.Cookie{
			Name:  identity.DefaultSessionCookie,
			Value: mintToken(t, "test-secret", "admin@example.com", time.Now().Add(time.Hour)),
		})

		claims, err := provider.FromRequest(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.Email != "admin@example.com" {
			t.Errorf("email = %q, want admin@example.com", claims.Email)
		}
	})

	t.Run("reads a bearer header when no cookie is set", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "test-secret")

		req := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, "test-secret", "admin@example.com", time.Now().Add(time.Hour)))

		claims, err := provider.FromRequest(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.Email != "admin@example.com" {
			t.Errorf("email = %q, want admin@example.com", claims.Email)
		}
	})

	t.Run("respects the SESSION_COOKIE override", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "test-secret")
		t.Setenv("SESSION_COOKIE", "sb_session")

		req := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)
		req.AddCookie(&http.Cookie{
			Name:  "sb_session",
			Value: mintToken(t, "test-secret", "admin@example.com", time.Now().Add(time.Hour)),
		})

		if _, err := provider.FromRequest(req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("no token yields ErrNoSession", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)

		_, err := provider.FromRequest(req)
		if !errors.Is(err, identity.ErrNoSession) {
			t.Errorf("error = %v, want ErrNoSession", err)
		}
	})

	t.Run("expired token yields ErrInvalidSession", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "test-secret")

		req := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, "test-secret", "admin@example.com", time.Now().Add(-time.Hour)))

		_, err := provider.FromRequest(req)
		if !errors.Is(err, identity.ErrInvalidSession) {
			t.Errorf("error = %v, want ErrInvalidSession", err)
		}
	})

	t.Run("token signed with another secret yields ErrInvalidSession", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "test-secret")

		req := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, "other-secret", "admin@example.com", time.Now().Add(time.Hour)))

		_, err := provider.FromRequest(req)
		if !errors.Is(err, identity.ErrInvalidSession) {
			t.Errorf("error = %v, want ErrInvalidSession", err)
		}
	})

	t.Run("token without an email yields ErrInvalidSession", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "test-secret")

		req := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, "test-secret", "", time.Now().Add(time.Hour)))

		_, err := provider.FromRequest(req)
		if !errors.Is(err, identity.ErrInvalidSession) {
			t.Errorf("error = %v, want ErrInvalidSession", err)
		}
	})
}
