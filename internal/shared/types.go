package shared

import "github.com/samber/lo"

// Keys stored on the gin context by middleware.
const (
	ContextKeyRequestID = "request_id"
	ContextKeyClientIP  = "client_ip"
	ContextKeyPrincipal = "principal"
)

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID int64    `json:"user_id"`
	Login  string   `json:"login"`
	Roles  []string `json:"roles"`
}

// HasRole reports whether the principal carries role.
func (p Principal) HasRole(role string) bool {
	return lo.Contains(p.Roles, role)
}
