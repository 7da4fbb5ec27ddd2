// Package access implements the single permission predicate consumed by every
// resource handler. It is a pure function over the request method, the
// explicit principal and the target resource: no queries, no side effects.
// Denial blocks the whole operation; nothing is silently filtered.
package access

import (
	"net/http"

	"github.com/avelichko/kritika/data"
)

// Resource identifies the kind of object a request targets. The kind decides
// which relationship (ownership, moderator rights, admin rights) is required
// for unsafe methods.
type Resource int

const (
	// Catalog covers titles, genres and categories: world-readable,
	// writable by moderators and admins.
	Catalog Resource = iota
	// Review and Comment are world-readable, writable by their owner or by
	// moderators and admins.
	Review
	Comment
	// UserAdmin covers the user administration endpoints, reads included.
	UserAdmin
	// Profile covers the authenticated user's own profile.
	Profile
)

// SafeMethod reports whether an HTTP method is read-only.
func SafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Allowed decides whether a principal may perform method against a resource.
// ownerID is the user ID owning the target object and is only consulted for
// Review and Comment. Anonymous principals are expected to have been rejected
// for unsafe methods by the authentication gate already; Allowed still denies
// them so the predicate is safe to call on its own.
func Allowed(method string, principal *data.User, resource Resource, ownerID int64) bool {
	switch resource {
	case Catalog:
		if SafeMethod(method) {
			return true
		}
		return hasModeratorRights(principal)
	case Review, Comment:
		if SafeMethod(method) {
			return true
		}
		if principal.IsAnonymous() {
			return false
		}
		if principal.ID == ownerID {
			return true
		}
		return hasModeratorRights(principal)
	case UserAdmin:
		if principal.IsAnonymous() {
			return false
		}
		return principal.Role == data.RoleAdmin
	case Profile:
		return !principal.IsAnonymous()
	}
	return false
}

// hasModeratorRights matches the role enum exhaustively; unknown values deny.
func hasModeratorRights(principal *data.User) bool {
	if principal.IsAnonymous() {
		return false
	}
	switch principal.Role {
	case data.RoleModerator, data.RoleAdmin:
		return true
	case data.RoleUser:
		return false
	}
	return false
}
