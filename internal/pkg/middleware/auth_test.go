package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtpkg "github.com/camride/camride/internal/pkg/jwt"
	"github.com/camride/camride/internal/pkg/models"
)

var testJWT = models.JWTConfig{
	Secret:     "test-secret-key-for-tokens",
	Expiration: 60,
	Issuer:     "camride-test",
}

func authRequest(token string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestJWTAuthMiddleware_AttachesIdentity(t *testing.T) {
	userID := uuid.New()
	token, _, err := jwtpkg.GenerateToken(userID, "ada@campus.edu", models.RoleStudent, testJWT)
	require.NoError(t, err)

	c, rec := authRequest(token)
	handler := JWTAuthMiddleware(testJWT)(func(c echo.Context) error {
		gotID, gotRole, ok := CallerIdentity(c)
		require.True(t, ok)
		assert.Equal(t, userID, gotID)
		assert.Equal(t, models.RoleStudent, gotRole)
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthMiddleware_MissingToken(t *testing.T) {
	c, rec := authRequest("")
	handler := JWTAuthMiddleware(testJWT)(okHandler)

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddleware_BadToken(t *testing.T) {
	c, rec := authRequest("not.a.token")
	handler := JWTAuthMiddleware(testJWT)(okHandler)

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddleware_WrongSecret(t *testing.T) {
	otherCfg := testJWT
	otherCfg.Secret = "a-different-secret"
	token, _, err := jwtpkg.GenerateToken(uuid.New(), "ada@campus.edu", models.RoleStudent, otherCfg)
	require.NoError(t, err)

	c, rec := authRequest(token)
	handler := JWTAuthMiddleware(testJWT)(okHandler)

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	token, _, err := jwtpkg.GenerateToken(uuid.New(), "driver@campus.edu", models.RoleDriver, testJWT)
	require.NoError(t, err)

	t.Run("matching role passes", func(t *testing.T) {
		c, rec := authRequest(token)
		handler := JWTAuthMiddleware(testJWT)(RequireRole(models.RoleDriver)(okHandler))

		require.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("other role is rejected", func(t *testing.T) {
		c, rec := authRequest(token)
		handler := JWTAuthMiddleware(testJWT)(RequireRole(models.RoleStudent)(okHandler))

		require.NoError(t, handler(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unauthenticated is rejected", func(t *testing.T) {
		c, rec := authRequest("")
		handler := RequireRole(models.RoleDriver)(okHandler)

		require.NoError(t, handler(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
