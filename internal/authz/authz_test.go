package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vanthang0312/recipe-app/internal/model"
)

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name      string
		role      string
		username  string
		rootAdmin string
		want      bool
	}{
		{
			name:     "stored admin role",
			role:     model.RoleAdmin,
			username: "carol",
			want:     true,
		},
		{
			name:     "admin role case-insensitive",
			role:     "Admin",
			username: "carol",
			want:     true,
		},
		{
			name:     "admin role with whitespace",
			role:     " admin ",
			username: "carol",
			want:     true,
		},
		{
			name:      "root admin username match",
			role:      model.RoleUser,
			username:  "superchef",
			rootAdmin: "superchef",
			want:      true,
		},
		{
			name:      "root admin username case-insensitive",
			role:      model.RoleUser,
			username:  "SuperChef",
			rootAdmin: "superchef",
			want:      true,
		},
		{
			name:      "root admin username with whitespace",
			role:      model.RoleUser,
			username:  "  superchef  ",
			rootAdmin: "superchef",
			want:      true,
		},
		{
			name:     "regular user",
			role:     model.RoleUser,
			username: "alice",
			want:     false,
		},
		{
			name:      "regular user with root admin configured",
			role:      model.RoleUser,
			username:  "alice",
			rootAdmin: "superchef",
			want:      false,
		},
		{
			name:      "empty root admin never matches empty username",
			role:      model.RoleUser,
			username:  "",
			rootAdmin: "",
			want:      false,
		},
		{
			name:      "banned user is not admin even as root username",
			role:      model.RoleBanned,
			username:  "alice",
			rootAdmin: "",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsAdmin(tt.role, tt.username, tt.rootAdmin)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestViewerAdmin_NilViewer(t *testing.T) {
	var v *Viewer
	assert.False(t, v.Admin("superchef"))
}

func TestCanViewRecipe(t *testing.T) {
	const rootAdmin = "superchef"

	owner := &Viewer{ID: 7, Username: "alice", Role: model.RoleUser}
	other := &Viewer{ID: 8, Username: "bob", Role: model.RoleUser}
	admin := &Viewer{ID: 9, Username: "carol", Role: model.RoleAdmin}
	rootByName := &Viewer{ID: 10, Username: "SuperChef", Role: model.RoleUser}

	tests := []struct {
		name    string
		status  model.Status
		ownerID uint
		viewer  *Viewer
		want    bool
	}{
		{"approved visible to anonymous", model.StatusApproved, 7, nil, true},
		{"approved visible to non-owner", model.StatusApproved, 7, other, true},
		{"unset status visible to anonymous", model.StatusUnset, 7, nil, true},
		{"unset status visible to non-owner", model.StatusUnset, 7, other, true},
		{"pending hidden from anonymous", model.StatusPending, 7, nil, false},
		{"pending hidden from non-owner", model.StatusPending, 7, other, false},
		{"pending visible to owner", model.StatusPending, 7, owner, true},
		{"pending visible to admin", model.StatusPending, 7, admin, true},
		{"pending visible to root admin by username", model.StatusPending, 7, rootByName, true},
		{"rejected hidden from anonymous", model.StatusRejected, 7, nil, false},
		{"rejected hidden from non-owner", model.StatusRejected, 7, other, false},
		{"rejected visible to owner", model.StatusRejected, 7, owner, true},
		{"rejected visible to admin", model.StatusRejected, 7, admin, true},
		{"unknown status treated as restricted", model.Status("archived"), 7, other, false},
		{"unknown status visible to owner", model.Status("archived"), 7, owner, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanViewRecipe(tt.status, tt.ownerID, tt.viewer, rootAdmin)
			assert.Equal(t, tt.want, got)
		})
	}
}
