package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addispot/addispot-backend/internal/app/model"
	"github.com/addispot/addispot-backend/pkg/util"
)

const testSecret = "middleware-test-secret"

type fakeUserStore struct {
	users map[string]*model.User
}

func (s *fakeUserStore) FindByID(id string) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return user, nil
}

func setupAuthTestRouter(store *fakeUserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(testSecret, store)

	router := gin.New()
	router.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	router.GET("/admin", m.Authenticate(), m.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func issueToken(t *testing.T, userID string, isAdmin bool, expiry time.Duration) string {
	tokens, err := util.GenerateTokenPair(userID, "user@example.com", isAdmin, testSecret, expiry, time.Hour)
	require.NoError(t, err)
	return tokens.AccessToken
}

func doGet(router *gin.Engine, path string, decorate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if decorate != nil {
		decorate(req)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	store := &fakeUserStore{users: map[string]*model.User{}}
	router := setupAuthTestRouter(store)
	token := issueToken(t, "user-1", false, 15*time.Minute)

	t.Run("No credentials", func(t *testing.T) {
		w := doGet(router, "/protected", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Bearer header", func(t *testing.T) {
		w := doGet(router, "/protected", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-1")
	})

	t.Run("Session cookie", func(t *testing.T) {
		w := doGet(router, "/protected", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Malformed header", func(t *testing.T) {
		w := doGet(router, "/protected", func(req *http.Request) {
			req.Header.Set("Authorization", "Token "+token)
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Garbage token", func(t *testing.T) {
		w := doGet(router, "/protected", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer not.a.jwt")
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "AUTH_TOKEN_INVALID")
	})

	t.Run("Expired token", func(t *testing.T) {
		expired := issueToken(t, "user-1", false, -time.Minute)
		w := doGet(router, "/protected", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+expired)
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "AUTH_TOKEN_EXPIRED")
	})
}

func TestRequireAdmin(t *testing.T) {
	store := &fakeUserStore{users: map[string]*model.User{
		"admin-1": {ID: "admin-1", Email: "admin@example.com", IsAdmin: true},
		"user-1":  {ID: "user-1", Email: "user@example.com", IsAdmin: false},
	}}
	router := setupAuthTestRouter(store)

	t.Run("Admin passes", func(t *testing.T) {
		token := issueToken(t, "admin-1", true, 15*time.Minute)
		w := doGet(router, "/admin", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Non-admin is forbidden", func(t *testing.T) {
		token := issueToken(t, "user-1", false, 15*time.Minute)
		w := doGet(router, "/admin", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "AUTHZ_ADMIN_ONLY")
	})

	t.Run("Admin claim without a profile row fails closed", func(t *testing.T) {
		// The token says admin, the store has no such user
		token := issueToken(t, "ghost", true, 15*time.Minute)
		w := doGet(router, "/admin", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
