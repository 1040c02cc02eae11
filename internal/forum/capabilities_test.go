package forum

import (
	"testing"

	"sloboda/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesFor(t *testing.T) {
	tests := []struct {
		name string
		role models.Role
		want CapabilitySet
	}{
		{
			name: "new user can post and comment only",
			role: models.RoleNewUser,
			want: CapabilitySet{CanPost: true, CanComment: true},
		},
		{
			name: "member can create threads",
			role: models.RoleMember,
			want: CapabilitySet{CanPost: true, CanComment: true, CanCreateThreads: true},
		},
		{
			name: "senior member cannot moderate",
			role: models.RoleSeniorMember,
			want: CapabilitySet{CanPost: true, CanComment: true, CanCreateThreads: true},
		},
		{
			name: "moderator can moderate",
			role: models.RoleModerator,
			want: CapabilitySet{CanPost: true, CanComment: true, CanCreateThreads: true, CanModerate: true},
		},
		{
			name: "super moderator can moderate",
			role: models.RoleSuperModerator,
			want: CapabilitySet{CanPost: true, CanComment: true, CanCreateThreads: true, CanModerate: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CapabilitiesFor(tt.role.Level()))
		})
	}
}

func TestCapabilitiesForUnknownLevel(t *testing.T) {
	assert.Equal(t, CapabilitySet{}, CapabilitiesFor(-1))
}

func TestRoleLadder(t *testing.T) {
	assert.Equal(t, 0, models.RoleNewUser.Level())
	assert.Equal(t, 4, models.RoleSuperModerator.Level())
	assert.Equal(t, -1, models.Role("admin").Level())

	next, ok := models.RoleForLevel(models.RoleMember.Level() + 1)
	assert.True(t, ok)
	assert.Equal(t, models.RoleSeniorMember, next)

	_, ok = models.RoleForLevel(5)
	assert.False(t, ok)
}
