package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lingua-service/internal/models"
	"lingua-service/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserLoader struct {
	users map[string]*models.User
}

func (f *fakeUserLoader) FindByID(ctx context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

func setupGuardedRouter(issuer *token.Issuer, loader UserLoader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", Protect(issuer, loader), func(c *gin.Context) {
		user, err := CurrentUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "password": user.Password})
	})
	return router
}

func TestProtectNoCookie(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	router := setupGuardedRouter(issuer, &fakeUserLoader{users: map[string]*models.User{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "no token provided")
}

func TestProtectInvalidToken(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	router := setupGuardedRouter(issuer, &fakeUserLoader{users: map[string]*models.User{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "garbage"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestProtectUnknownUser(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	router := setupGuardedRouter(issuer, &fakeUserLoader{users: map[string]*models.User{}})

	tok, err := issuer.Issue("gone-user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: tok})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "user not found")
}

func TestProtectBindsUserWithoutPassword(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	loader := &fakeUserLoader{users: map[string]*models.User{
		"user-1": {ID: "user-1", FullName: "Ana", Password: "hashed"},
	}}
	router := setupGuardedRouter(issuer, loader)

	tok, err := issuer.Issue("user-1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: tok})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"user-1"`)
	// The guard clears the hash before binding the user to the context.
	assert.Contains(t, w.Body.String(), `"password":""`)
}

func TestCurrentUserMissing(t *testing.T) {
	_, err := CurrentUser(context.Background())
	assert.Error(t, err)
}
