package domain

import "strings"

// Roles an admin account may hold.
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// RequestContext is the authenticated admin session for one request.
// It is built by the auth middleware and passed explicitly to services.
type RequestContext struct {
	RequestID string `json:"requestId,omitempty"`
	AdminID   int64  `json:"adminId"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

// Anonymous reports whether no admin is attached.
func (rc RequestContext) Anonymous() bool {
	return rc.AdminID == 0
}

// HasRole reports whether the session role is one of roles.
func (rc RequestContext) HasRole(roles ...string) bool {
	r := strings.ToLower(strings.TrimSpace(rc.Role))
	for _, want := range roles {
		if r == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// Actor is the label written to logs for the session.
func (rc RequestContext) Actor() string {
	if rc.Anonymous() {
		return "public"
	}
	return rc.Username
}
