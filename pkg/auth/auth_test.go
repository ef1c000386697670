package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lorrylink/lorrylink/pkg/models"
	"github.com/stretchr/testify/assert"
)

// signToken builds a token the way the identity provider would; the validator
// trusts claims without re-checking the signature.
func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return signed
}

func TestGatewayValidator(t *testing.T) {
	validator := NewGatewayValidator()

	t.Run("Success", func(t *testing.T) {
		bearer := "Bearer " + signToken(t, jwt.MapClaims{
			"sub":              "u-1",
			"email":            "disp@example.com",
			"cognito:username": "disp1",
			"custom:role":      "dispatcher",
		})
		id, err := validator.Validate(context.Background(), bearer)
		assert.NoError(t, err)
		assert.Equal(t, "u-1", id.UserID)
		assert.Equal(t, "disp@example.com", id.Email)
		assert.Equal(t, "disp1", id.Username)
		assert.Equal(t, models.RoleDispatcher, id.Role)
	})

	t.Run("Plain claim names accepted", func(t *testing.T) {
		bearer := signToken(t, jwt.MapClaims{
			"sub":      "u-2",
			"username": "drv2",
			"role":     "driver",
		})
		id, err := validator.Validate(context.Background(), bearer)
		assert.NoError(t, err)
		assert.Equal(t, models.RoleDriver, id.Role)
		assert.Equal(t, "drv2", id.Username)
	})

	t.Run("Empty header rejected", func(t *testing.T) {
		_, err := validator.Validate(context.Background(), "")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("Garbage token rejected", func(t *testing.T) {
		_, err := validator.Validate(context.Background(), "Bearer not.a.jwt")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("Missing subject rejected", func(t *testing.T) {
		bearer := signToken(t, jwt.MapClaims{"role": "driver"})
		_, err := validator.Validate(context.Background(), bearer)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("Unknown role rejected", func(t *testing.T) {
		bearer := signToken(t, jwt.MapClaims{"sub": "u-3", "role": "superuser"})
		_, err := validator.Validate(context.Background(), bearer)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestMiddleware(t *testing.T) {
	validator := NewGatewayValidator()
	var seen Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := FromContext(r.Context())
		assert.True(t, ok)
		seen = id
		w.WriteHeader(http.StatusOK)
	})
	handler := Middleware(validator)(next)

	t.Run("Valid token passes identity through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/trips", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
			"sub": "u-9", "role": "lorry_owner",
		}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u-9", seen.UserID)
		assert.Equal(t, models.RoleLorryOwner, seen.Role)
	})

	t.Run("Missing token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/trips", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
