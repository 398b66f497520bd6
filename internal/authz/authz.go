// Package authz holds the moderation gate: the pure predicates deciding who
// counts as an administrator and which recipes a viewer may see. Handlers
// and services call these instead of re-deriving role checks per call site.
package authz

import (
	"strings"

	"github.com/vanthang0312/recipe-app/internal/model"
)

// Viewer is the session identity a request carries. A nil *Viewer means an
// anonymous request.
type Viewer struct {
	ID                 uint
	Username           string
	Role               string
	MustChangePassword bool
}

// IsAdmin reports whether the given role/username pair is an effective
// administrator. The stored role wins, but a username matching the
// configured root admin identifier is admin regardless of stored role.
// Comparisons are case-insensitive and whitespace-tolerant.
func IsAdmin(role, username, rootAdmin string) bool {
	if strings.EqualFold(strings.TrimSpace(role), model.RoleAdmin) {
		return true
	}
	root := strings.ToLower(strings.TrimSpace(rootAdmin))
	return root != "" && root == strings.ToLower(strings.TrimSpace(username))
}

// Admin reports whether the viewer is an effective administrator.
func (v *Viewer) Admin(rootAdmin string) bool {
	if v == nil {
		return false
	}
	return IsAdmin(v.Role, v.Username, rootAdmin)
}

// CanViewRecipe decides whether viewer may see a recipe's detail content.
//
// Rules:
//   - no status recorded (legacy rows): visible to everyone
//   - approved: visible to everyone
//   - anything else (pending, rejected, unknown values): owner and
//     administrators only
func CanViewRecipe(status model.Status, ownerID uint, viewer *Viewer, rootAdmin string) bool {
	if status == model.StatusUnset || status == model.StatusApproved {
		return true
	}
	if viewer == nil {
		return false
	}
	return viewer.ID == ownerID || viewer.Admin(rootAdmin)
}
