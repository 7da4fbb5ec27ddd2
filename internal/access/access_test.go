package access

import (
	"net/http"
	"testing"

	"github.com/avelichko/kritika/data"
	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	owner := &data.User{ID: 1, Role: data.RoleUser}
	otherUser := &data.User{ID: 2, Role: data.RoleUser}
	moderator := &data.User{ID: 3, Role: data.RoleModerator}
	admin := &data.User{ID: 4, Role: data.RoleAdmin}
	unknownRole := &data.User{ID: 5, Role: data.Role("superuser")}

	tests := []struct {
		name      string
		method    string
		principal *data.User
		resource  Resource
		ownerID   int64
		want      bool
	}{
		{"anonymous reads catalog", http.MethodGet, data.AnonymousUser, Catalog, 0, true},
		{"plain user reads catalog", http.MethodGet, otherUser, Catalog, 0, true},
		{"plain user cannot write catalog", http.MethodPost, otherUser, Catalog, 0, false},
		{"moderator writes catalog", http.MethodPost, moderator, Catalog, 0, true},
		{"admin deletes catalog", http.MethodDelete, admin, Catalog, 0, true},
		{"unknown role is denied", http.MethodPost, unknownRole, Catalog, 0, false},

		{"anonymous reads review", http.MethodGet, data.AnonymousUser, Review, 1, true},
		{"anonymous cannot write review", http.MethodPatch, data.AnonymousUser, Review, 1, false},
		{"owner edits own review", http.MethodPatch, owner, Review, 1, true},
		{"non-owner cannot edit review", http.MethodPatch, otherUser, Review, 1, false},
		{"non-owner reads review", http.MethodGet, otherUser, Review, 1, true},
		{"moderator edits any review", http.MethodPatch, moderator, Review, 1, true},
		{"admin deletes any review", http.MethodDelete, admin, Review, 1, true},

		{"owner deletes own comment", http.MethodDelete, owner, Comment, 1, true},
		{"non-owner cannot delete comment", http.MethodDelete, otherUser, Comment, 1, false},
		{"moderator deletes any comment", http.MethodDelete, moderator, Comment, 1, true},

		{"plain user cannot read user admin", http.MethodGet, otherUser, UserAdmin, 0, false},
		{"moderator cannot read user admin", http.MethodGet, moderator, UserAdmin, 0, false},
		{"admin reads user admin", http.MethodGet, admin, UserAdmin, 0, true},
		{"admin writes user admin", http.MethodPatch, admin, UserAdmin, 0, true},
		{"anonymous cannot reach user admin", http.MethodGet, data.AnonymousUser, UserAdmin, 0, false},

		{"authenticated user reads own profile", http.MethodGet, otherUser, Profile, 0, true},
		{"authenticated user edits own profile", http.MethodPatch, otherUser, Profile, 0, true},
		{"anonymous cannot reach profile", http.MethodGet, data.AnonymousUser, Profile, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Allowed(tt.method, tt.principal, tt.resource, tt.ownerID)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSafeMethod(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		assert.True(t, SafeMethod(method), method)
	}
	for _, method := range []string{http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete} {
		assert.False(t, SafeMethod(method), method)
	}
}
