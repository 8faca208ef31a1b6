package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tourdesk/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubParser struct{}

func (stubParser) ParseToken(requestID, raw string) (domain.RequestContext, error) {
	switch raw {
	case "owner-token":
		return domain.RequestContext{RequestID: requestID, AdminID: 1, Username: "owner", Role: domain.RoleOwner}, nil
	case "staff-token":
		return domain.RequestContext{RequestID: requestID, AdminID: 2, Username: "staff", Role: domain.RoleStaff}, nil
	}
	return domain.RequestContext{}, errors.New("bad token")
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/public", func(c *gin.Context) {
		s := Session(c)
		c.JSON(http.StatusOK, gin.H{"anonymous": s.Anonymous(), "rid": s.RequestID})
	})
	admin := r.Group("/admin", RequireAuth(stubParser{}))
	admin.GET("/me", func(c *gin.Context) { c.JSON(http.StatusOK, Session(c)) })
	admin.DELETE("/thing", RequireRoles(domain.RoleOwner), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestIDIsGeneratedAndEchoed(t *testing.T) {
	r := newTestEngine()
	w := do(r, http.MethodGet, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	rid := w.Header().Get("X-Request-ID")
	assert.Len(t, rid, 36)
	assert.Contains(t, w.Body.String(), rid)

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestRequireAuth(t *testing.T) {
	r := newTestEngine()

	w := do(r, http.MethodGet, "/admin/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"request_id"`)

	w = do(r, http.MethodGet, "/admin/me", "forged")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/admin/me", "owner-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"owner"`)
}

func TestRequireRoles(t *testing.T) {
	r := newTestEngine()
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodDelete, "/admin/thing", "staff-token").Code)
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/admin/thing", "owner-token").Code)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer   abc "))
	assert.Empty(t, bearerToken("Basic abc"))
	assert.Empty(t, bearerToken(""))
}
