package middleware

import (
	"net/http"
	"strings"

	"tourdesk/internal/domain"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// TokenParser turns a bearer token into an admin session.
type TokenParser interface {
	ParseToken(requestID, raw string) (domain.RequestContext, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// session for handlers.
func RequireAuth(p TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := GetRequestID(c)
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		rc, err := p.ParseToken(rid, raw)
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		c.Set(sessionKey, rc)
		c.Next()
	}
}

// Session returns the admin session of the request. Public routes get an
// anonymous session that still carries the request id.
func Session(c *gin.Context) domain.RequestContext {
	rc := domain.RequestContext{}
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(domain.RequestContext); ok {
			rc = s
		}
	}
	rc.RequestID = GetRequestID(c)
	return rc
}

func bearerToken(h string) string {
	h = strings.TrimSpace(h)
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

func abortJSON(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      msg,
		"code":       code,
		"message":    msg,
		"request_id": GetRequestID(c),
	})
}
