package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is a forum permission tier. Tiers form a fixed ladder; promote and
// demote move exactly one rung at a time.
type Role string

const (
	RoleNewUser        Role = "new_user"
	RoleMember         Role = "member"
	RoleSeniorMember   Role = "senior_member"
	RoleModerator      Role = "moderator"
	RoleSuperModerator Role = "super_moderator"
)

// roleLadder is the single source of truth for tier ordering. Index = level.
var roleLadder = []Role{
	RoleNewUser,
	RoleMember,
	RoleSeniorMember,
	RoleModerator,
	RoleSuperModerator,
}

// ModeratorLevel is the minimum level allowed to pin, lock, or delete
// other users' content.
const ModeratorLevel = 3

// Level returns the numeric level (0-4) of the role, or -1 for an
// unknown role string.
func (r Role) Level() int {
	for i, role := range roleLadder {
		if role == r {
			return i
		}
	}
	return -1
}

// Valid reports whether r is a known tier.
func (r Role) Valid() bool {
	return r.Level() >= 0
}

// RoleForLevel maps a level back to its tier. Out-of-range levels return
// false.
func RoleForLevel(level int) (Role, bool) {
	if level < 0 || level >= len(roleLadder) {
		return "", false
	}
	return roleLadder[level], true
}

// TopRole is the highest tier on the ladder.
func TopRole() Role {
	return roleLadder[len(roleLadder)-1]
}

type UserRole struct {
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Role      Role      `json:"role" db:"role"`
	Points    int       `json:"points" db:"points"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Level is a convenience accessor for permission checks.
func (ur *UserRole) Level() int {
	return ur.Role.Level()
}
