// Package authz implements the access-control gate: a pure decision function
// over a principal and a route's required roles, plus the static role-to-path
// redirect table used by the dashboard UI.
package authz

import (
	"asset-management-api/internal/model"
)

// LoginPath is where unauthenticated requests are redirected.
const LoginPath = "/login"

// DecisionKind distinguishes an allow from a redirect.
type DecisionKind int

const (
	DecisionAllow DecisionKind = iota
	DecisionRedirect
)

// Decision is the outcome of an authorization check. A redirect is not an
// error: it is the deterministic "wrong dashboard" answer for the principal.
type Decision struct {
	Kind       DecisionKind
	RedirectTo string
}

// Allowed reports whether the decision permits the request.
func (d Decision) Allowed() bool {
	return d.Kind == DecisionAllow
}

// Allow is the permitting decision.
func Allow() Decision {
	return Decision{Kind: DecisionAllow}
}

// RedirectTo is a denying decision pointing at path.
func RedirectTo(path string) Decision {
	return Decision{Kind: DecisionRedirect, RedirectTo: path}
}

// HomePath returns the default dashboard path for a role.
func HomePath(role model.Role) string {
	switch role {
	case model.RoleAdmin:
		return "/admin"
	case model.RoleManagement:
		return "/management"
	case model.RoleIT:
		return "/it-dashboard"
	case model.RoleSupport:
		return "/support-dashboard"
	case model.RoleUser:
		return "/dashboard"
	default:
		return "/dashboard"
	}
}

// Authorize decides whether principal may access a route requiring one of the
// given roles. No principal redirects to the login page; an empty requirement
// allows anyone authenticated; a role mismatch redirects to the principal's
// own dashboard. Pure: same inputs always yield the same decision.
func Authorize(principal *model.User, required ...model.Role) Decision {
	if principal == nil {
		return RedirectTo(LoginPath)
	}
	if len(required) == 0 {
		return Allow()
	}
	for _, role := range required {
		if principal.Role == role {
			return Allow()
		}
	}
	return RedirectTo(HomePath(principal.Role))
}
