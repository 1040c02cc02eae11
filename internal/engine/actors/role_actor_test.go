package actors

import (
	"testing"

	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnRoleActor(t *testing.T, store *fakeStore, notifier Notifier) (*actor.ActorSystem, *actor.PID) {
	t.Helper()
	system := actor.NewActorSystem()
	pid := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewRoleActor(store, notifier)
	}))
	return system, pid
}

func TestRoleActorPromoteOneTier(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	moderator := store.addUser(models.RoleSuperModerator)
	member := store.addUser(models.RoleNewUser)
	system, pid := spawnRoleActor(t, store, notifier)
	defer system.Shutdown()

	result := ask(t, system, pid, &PromoteUserMsg{UserID: member, RequesterID: moderator})
	role, ok := result.(*models.UserRole)
	require.True(t, ok, "expected a role, got %T: %v", result, result)
	assert.Equal(t, models.RoleMember, role.Role)
	assert.Equal(t, models.RoleMember, store.roles[member].Role)

	// Promotion never skips tiers.
	result = ask(t, system, pid, &PromoteUserMsg{UserID: member, RequesterID: moderator})
	role = result.(*models.UserRole)
	assert.Equal(t, models.RoleSeniorMember, role.Role)

	// The promoted user is notified each time.
	require.Len(t, store.notifications, 2)
	assert.Equal(t, models.NotifyRoleChange, store.notifications[0].Kind)
	assert.Equal(t, member, store.notifications[0].UserID)
	assert.Len(t, notifier.pushes, 2)
}

func TestRoleActorDemote(t *testing.T) {
	store := newFakeStore()
	moderator := store.addUser(models.RoleSuperModerator)
	member := store.addUser(models.RoleSeniorMember)
	system, pid := spawnRoleActor(t, store, nil)
	defer system.Shutdown()

	result := ask(t, system, pid, &DemoteUserMsg{UserID: member, RequesterID: moderator})
	role, ok := result.(*models.UserRole)
	require.True(t, ok)
	assert.Equal(t, models.RoleMember, role.Role)
}

func TestRoleActorLadderEdges(t *testing.T) {
	store := newFakeStore()
	top := store.addUser(models.RoleSuperModerator)
	bottom := store.addUser(models.RoleNewUser)
	system, pid := spawnRoleActor(t, store, nil)
	defer system.Shutdown()

	// Demoting past the bottom is rejected.
	result := ask(t, system, pid, &DemoteUserMsg{UserID: bottom, RequesterID: top})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrRoleAtEdge, appErr.Code)
	assert.Equal(t, models.RoleNewUser, store.roles[bottom].Role)

	// Promoting past the top is rejected. Only the user themselves is at
	// the requester's tier here, which is permitted.
	result = ask(t, system, pid, &PromoteUserMsg{UserID: top, RequesterID: top})
	appErr, ok = result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrRoleAtEdge, appErr.Code)
}

func TestRoleActorRequiresModerator(t *testing.T) {
	store := newFakeStore()
	member := store.addUser(models.RoleSeniorMember)
	other := store.addUser(models.RoleNewUser)
	system, pid := spawnRoleActor(t, store, nil)
	defer system.Shutdown()

	result := ask(t, system, pid, &PromoteUserMsg{UserID: other, RequesterID: member})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrForbidden, appErr.Code)
}

func TestRoleActorCannotTouchPeers(t *testing.T) {
	store := newFakeStore()
	modA := store.addUser(models.RoleModerator)
	modB := store.addUser(models.RoleModerator)
	system, pid := spawnRoleActor(t, store, nil)
	defer system.Shutdown()

	result := ask(t, system, pid, &DemoteUserMsg{UserID: modB, RequesterID: modA})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrForbidden, appErr.Code)
	assert.Equal(t, models.RoleModerator, store.roles[modB].Role)
}

func TestRoleActorGetRole(t *testing.T) {
	store := newFakeStore()
	member := store.addUser(models.RoleMember)
	system, pid := spawnRoleActor(t, store, nil)
	defer system.Shutdown()

	result := ask(t, system, pid, &GetRoleMsg{UserID: member})
	role, ok := result.(*models.UserRole)
	require.True(t, ok)
	assert.Equal(t, models.RoleMember, role.Role)
}
