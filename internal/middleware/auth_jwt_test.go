package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/config"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func mustMakeJWT(t *testing.T, secret string, sub interface{}, isAdmin bool, method jwt.SigningMethod) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":      sub,
		"is_admin": isAdmin,
		"iat":      1,
		"exp":      9999999999,
	}

	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

// 認証が通ったらcontextの中身をそのまま返すハンドラ
func echoHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user_id":  c.Get(middleware.CtxUserIDKey),
		"is_admin": c.Get(middleware.CtxIsAdminKey),
	})
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, next echo.HandlerFunc, authz string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mw(next)(c))
	return rec
}

func TestAuthJWT(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	mw := middleware.AuthJWT(cfg)

	t.Run("valid token passes and sets context", func(t *testing.T) {
		token := mustMakeJWT(t, testSecret, 42, false, jwt.SigningMethodHS256)
		rec := doRequest(t, mw, echoHandler, "Bearer "+token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"user_id":42`)
		assert.Contains(t, rec.Body.String(), `"is_admin":false`)
	})

	t.Run("string sub is accepted", func(t *testing.T) {
		token := mustMakeJWT(t, testSecret, "42", true, jwt.SigningMethodHS256)
		rec := doRequest(t, mw, echoHandler, "Bearer "+token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"is_admin":true`)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := doRequest(t, mw, echoHandler, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("not bearer", func(t *testing.T) {
		rec := doRequest(t, mw, echoHandler, "Basic abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := mustMakeJWT(t, "other-secret", 42, false, jwt.SigningMethodHS256)
		rec := doRequest(t, mw, echoHandler, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong signing method", func(t *testing.T) {
		token := mustMakeJWT(t, testSecret, 42, false, jwt.SigningMethodHS512)
		rec := doRequest(t, mw, echoHandler, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("zero sub is rejected", func(t *testing.T) {
		token := mustMakeJWT(t, testSecret, 0, false, jwt.SigningMethodHS256)
		rec := doRequest(t, mw, echoHandler, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdminRoleGuard(t *testing.T) {
	guard := middleware.AdminRoleGuard()

	run := func(t *testing.T, setup func(c echo.Context)) *httptest.ResponseRecorder {
		t.Helper()
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if setup != nil {
			setup(c)
		}
		require.NoError(t, guard(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})(c))
		return rec
	}

	t.Run("admin passes", func(t *testing.T) {
		rec := run(t, func(c echo.Context) {
			c.Set(middleware.CtxIsAdminKey, true)
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("shopper is forbidden", func(t *testing.T) {
		rec := run(t, func(c echo.Context) {
			c.Set(middleware.CtxIsAdminKey, false)
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing claim is unauthorized", func(t *testing.T) {
		rec := run(t, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
