package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"tour-booking-api/internal/config"
	"tour-booking-api/internal/logger"
	"tour-booking-api/internal/token"
	"tour-booking-api/internal/user/model"
	appErrors "tour-booking-api/pkg/errors"
	"tour-booking-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.Init("development"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeLoader struct {
	users map[uuid.UUID]*model.User
}

func (f *fakeLoader) GetByID(_ context.Context, userID uuid.UUID) (*model.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, appErrors.ErrUserNotFound
	}
	return user, nil
}

func prodConfig() *config.Config {
	return &config.Config{Server: config.ServerConfig{Environment: "production"}}
}

func newTestManager() *token.Manager {
	return token.NewManager(config.JWTConfig{Secret: "test-secret", ExpiryHours: 1})
}

func newProtectedRouter(tokens *token.Manager, loader UserLoader) *gin.Engine {
	router := gin.New()
	router.Use(ErrorHandler(prodConfig()))
	router.GET("/protected", RequireAuth(tokens, loader), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID.String()})
	})
	router.GET("/optional", OptionalAuth(tokens, loader), func(c *gin.Context) {
		_, ok := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})
	return router
}

func seedUser(loader *fakeLoader) *model.User {
	user := &model.User{
		ID:     uuid.New(),
		Name:   "Alice Doe",
		Email:  "alice@example.com",
		Role:   model.RoleUser,
		Active: true,
	}
	loader.users[user.ID] = user
	return user
}

func TestRequireAuth_MissingToken(t *testing.T) {
	router := newProtectedRouter(newTestManager(), &fakeLoader{users: map[uuid.UUID]*model.User{}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "not logged in")
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	router := newProtectedRouter(newTestManager(), &fakeLoader{users: map[uuid.UUID]*model.User{}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestRequireAuth_HeaderCarriage(t *testing.T) {
	tokens := newTestManager()
	loader := &fakeLoader{users: map[uuid.UUID]*model.User{}}
	user := seedUser(loader)
	router := newProtectedRouter(tokens, loader)

	signed, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID.String())
}

func TestRequireAuth_CookieCarriage(t *testing.T) {
	tokens := newTestManager()
	loader := &fakeLoader{users: map[uuid.UUID]*model.User{}}
	user := seedUser(loader)
	router := newProtectedRouter(tokens, loader)

	signed, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: utils.TokenCookieName, Value: signed})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_HeaderWinsOverCookie(t *testing.T) {
	tokens := newTestManager()
	loader := &fakeLoader{users: map[uuid.UUID]*model.User{}}
	user := seedUser(loader)
	router := newProtectedRouter(tokens, loader)

	signed, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	// A valid cookie must not rescue a bad Authorization header.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	req.AddCookie(&http.Cookie{Name: utils.TokenCookieName, Value: signed})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_DeletedUser(t *testing.T) {
	tokens := newTestManager()
	router := newProtectedRouter(tokens, &fakeLoader{users: map[uuid.UUID]*model.User{}})

	signed, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "no longer exists")
}

type brokenLoader struct{}

func (brokenLoader) GetByID(context.Context, uuid.UUID) (*model.User, error) {
	return nil, errors.New("pq: connection refused")
}

// A store outage behind a valid token is a server-side failure, not a
// deleted account; it must not be answered as 401.
func TestRequireAuth_StoreFailureIsInternal(t *testing.T) {
	tokens := newTestManager()
	router := newProtectedRouter(tokens, brokenLoader{})

	signed, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "no longer exists")
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestRequireAuth_PasswordChangeInvalidatesEarlierTokens(t *testing.T) {
	tokens := newTestManager()
	loader := &fakeLoader{users: map[uuid.UUID]*model.User{}}
	user := seedUser(loader)
	router := newProtectedRouter(tokens, loader)

	signed, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	// Password changed strictly after issuance: the token is signature-
	// and expiry-valid but must be rejected on the very next request.
	changed := time.Now().Add(2 * time.Second)
	user.PasswordChangedAt = &changed

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "password was changed")
}

func TestOptionalAuth_SilentlyAnonymousOnFailure(t *testing.T) {
	router := newProtectedRouter(newTestManager(), &fakeLoader{users: map[uuid.UUID]*model.User{}})

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestOptionalAuth_ResolvesValidIdentity(t *testing.T) {
	tokens := newTestManager()
	loader := &fakeLoader{users: map[uuid.UUID]*model.User{}}
	user := seedUser(loader)
	router := newProtectedRouter(tokens, loader)

	signed, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}
