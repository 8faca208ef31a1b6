package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles only lets sessions whose role is in allowedRoles through.
// It must run after RequireAuth.
//
//	r.DELETE("/drivers/:id", RequireRoles("owner", "admin"), handler)
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := Session(c)
		if s.Anonymous() {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "no session on request")
			return
		}
		if !s.HasRole(allowedRoles...) {
			abortJSON(c, http.StatusForbidden, "forbidden", "role "+s.Role+" is not allowed")
			return
		}
		c.Next()
	}
}
