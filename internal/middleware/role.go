package middleware

import (
	"net/http"

	"tour-booking-api/internal/user/model"
	appErrors "tour-booking-api/pkg/errors"

	"github.com/gin-gonic/gin"
)

// RequireRole admits only identities whose role is in the permitted set.
// The set is fixed at setup time. Must be composed after RequireAuth;
// reaching it without an attached identity is a wiring mistake and is
// answered as an internal error, not as 401.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			_ = c.Error(appErrors.New("MISSING_IDENTITY", http.StatusInternalServerError,
				"role restriction reached without an authenticated identity"))
			c.Abort()
			return
		}

		if _, permitted := allowed[user.Role]; !permitted {
			_ = c.Error(appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireRole(model.RoleAdmin)
}
