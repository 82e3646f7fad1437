package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tour-booking-api/internal/user/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newRoleRouter(identity *model.User, roles ...model.Role) *gin.Engine {
	router := gin.New()
	router.Use(ErrorHandler(prodConfig()))
	router.GET("/admin-only",
		func(c *gin.Context) {
			if identity != nil {
				c.Set(currentUserKey, identity)
			}
			c.Next()
		},
		RequireRole(roles...),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "success"})
		},
	)
	return router
}

func roleUser(role model.Role) *model.User {
	return &model.User{ID: uuid.New(), Role: role, Active: true}
}

func TestRequireRole_RejectsNonMember(t *testing.T) {
	router := newRoleRouter(roleUser(model.RoleUser), model.RoleAdmin)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-only", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "permission")
}

func TestRequireRole_AdmitsMember(t *testing.T) {
	router := newRoleRouter(roleUser(model.RoleAdmin), model.RoleAdmin)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-only", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_MultipleRoles(t *testing.T) {
	router := newRoleRouter(roleUser(model.RoleLeadGuide), model.RoleAdmin, model.RoleLeadGuide)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-only", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

// Composing RequireRole without a prior RequireAuth is a wiring mistake
// and must surface as an internal error, not as a client failure.
func TestRequireRole_MissingIdentityIsInternal(t *testing.T) {
	router := newRoleRouter(nil, model.RoleAdmin)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-only", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
