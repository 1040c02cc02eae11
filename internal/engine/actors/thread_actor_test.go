package actors

import (
	"testing"
	"time"

	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnThreadActor(t *testing.T, store *fakeStore) (*actor.ActorSystem, *actor.PID) {
	t.Helper()
	system := actor.NewActorSystem()
	pid := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewThreadActor(store)
	}))
	return system, pid
}

func ask(t *testing.T, system *actor.ActorSystem, pid *actor.PID, msg interface{}) interface{} {
	t.Helper()
	result, err := system.Root.RequestFuture(pid, msg, 2*time.Second).Result()
	require.NoError(t, err)
	return result
}

func seedThread(store *fakeStore, authorID uuid.UUID) *models.Thread {
	thread := &models.Thread{
		ID:       uuid.New(),
		Title:    "Garden cleanup this weekend",
		Body:     "Bring gloves",
		Type:     models.ThreadDiscussion,
		AuthorID: authorID,
	}
	store.threads[thread.ID] = thread
	return thread
}

func TestThreadActorCreate(t *testing.T) {
	store := newFakeStore()
	member := store.addUser(models.RoleMember)
	system, pid := spawnThreadActor(t, store)
	defer system.Shutdown()

	result := ask(t, system, pid, &CreateThreadMsg{
		Title:    "Spring planting schedule",
		Body:     "Who is in?",
		Type:     models.ThreadQuestion,
		AuthorID: member,
		Tags:     []string{"Garden", "garden", "Spring Planting"},
	})

	thread, ok := result.(*models.Thread)
	require.True(t, ok, "expected a thread, got %T: %v", result, result)
	assert.Equal(t, "Spring planting schedule", thread.Title)
	assert.Equal(t, models.ThreadQuestion, thread.Type)
	// Tags are slugified and deduped.
	assert.Equal(t, []string{"garden", "spring-planting"}, thread.Tags)
}

func TestThreadActorCreateRequiresMemberRole(t *testing.T) {
	store := newFakeStore()
	newcomer := store.addUser(models.RoleNewUser)
	system, pid := spawnThreadActor(t, store)
	defer system.Shutdown()

	result := ask(t, system, pid, &CreateThreadMsg{
		Title:    "First thread",
		Type:     models.ThreadDiscussion,
		AuthorID: newcomer,
	})

	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrForbidden, appErr.Code)
}

func TestThreadActorAnnouncementIsModeratorOnly(t *testing.T) {
	store := newFakeStore()
	member := store.addUser(models.RoleSeniorMember)
	moderator := store.addUser(models.RoleModerator)
	system, pid := spawnThreadActor(t, store)
	defer system.Shutdown()

	result := ask(t, system, pid, &CreateThreadMsg{
		Title:    "Server maintenance",
		Type:     models.ThreadAnnouncement,
		AuthorID: member,
	})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrForbidden, appErr.Code)

	result = ask(t, system, pid, &CreateThreadMsg{
		Title:    "Server maintenance",
		Type:     models.ThreadAnnouncement,
		AuthorID: moderator,
	})
	_, ok = result.(*models.Thread)
	assert.True(t, ok)
}

func TestThreadActorLockRequiresModerator(t *testing.T) {
	store := newFakeStore()
	member := store.addUser(models.RoleMember)
	moderator := store.addUser(models.RoleModerator)
	thread := seedThread(store, member)
	system, pid := spawnThreadActor(t, store)
	defer system.Shutdown()

	result := ask(t, system, pid, &LockThreadMsg{ThreadID: thread.ID, RequesterID: member, Locked: true})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrForbidden, appErr.Code)
	assert.False(t, store.threads[thread.ID].IsLocked)

	result = ask(t, system, pid, &LockThreadMsg{ThreadID: thread.ID, RequesterID: moderator, Locked: true})
	status, ok := result.(*models.StatusResponse)
	require.True(t, ok)
	assert.True(t, status.Success)
	assert.True(t, store.threads[thread.ID].IsLocked)
}

func TestThreadActorEditLockedThread(t *testing.T) {
	store := newFakeStore()
	author := store.addUser(models.RoleMember)
	moderator := store.addUser(models.RoleModerator)
	thread := seedThread(store, author)
	thread.IsLocked = true
	system, pid := spawnThreadActor(t, store)
	defer system.Shutdown()

	// The author loses edit access once the thread is locked.
	result := ask(t, system, pid, &EditThreadMsg{ThreadID: thread.ID, EditorID: author, Title: "New title", Body: "x"})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrThreadLocked, appErr.Code)

	// Moderators can still edit.
	result = ask(t, system, pid, &EditThreadMsg{ThreadID: thread.ID, EditorID: moderator, Title: "New title", Body: "x"})
	edited, ok := result.(*models.Thread)
	require.True(t, ok)
	assert.Equal(t, "New title", edited.Title)
}

func TestThreadActorVoteToggle(t *testing.T) {
	store := newFakeStore()
	author := store.addUser(models.RoleMember)
	voter := store.addUser(models.RoleMember)
	thread := seedThread(store, author)
	system, pid := spawnThreadActor(t, store)
	defer system.Shutdown()

	result := ask(t, system, pid, &VoteThreadMsg{ThreadID: thread.ID, UserID: voter, Value: models.VoteUp})
	vote, ok := result.(*models.VoteResult)
	require.True(t, ok)
	assert.Equal(t, 1, vote.VoteCount)
	assert.Equal(t, models.VoteUp, vote.UserVote)

	// Same value again retracts the vote.
	result = ask(t, system, pid, &VoteThreadMsg{ThreadID: thread.ID, UserID: voter, Value: models.VoteUp})
	vote = result.(*models.VoteResult)
	assert.Equal(t, 0, vote.VoteCount)
	assert.Equal(t, models.VoteNone, vote.UserVote)

	// A different value overwrites.
	ask(t, system, pid, &VoteThreadMsg{ThreadID: thread.ID, UserID: voter, Value: models.VoteUp})
	result = ask(t, system, pid, &VoteThreadMsg{ThreadID: thread.ID, UserID: voter, Value: models.VoteDown})
	vote = result.(*models.VoteResult)
	assert.Equal(t, -1, vote.VoteCount)
	assert.Equal(t, models.VoteDown, vote.UserVote)
}

func TestThreadActorVoteOnDeletedThread(t *testing.T) {
	store := newFakeStore()
	author := store.addUser(models.RoleMember)
	voter := store.addUser(models.RoleMember)
	thread := seedThread(store, author)
	thread.IsDeleted = true
	system, pid := spawnThreadActor(t, store)
	defer system.Shutdown()

	result := ask(t, system, pid, &VoteThreadMsg{ThreadID: thread.ID, UserID: voter, Value: models.VoteUp})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrThreadNotFound, appErr.Code)
}

func TestThreadActorVoteOnLockedThreadAllowed(t *testing.T) {
	store := newFakeStore()
	author := store.addUser(models.RoleMember)
	voter := store.addUser(models.RoleMember)
	thread := seedThread(store, author)
	thread.IsLocked = true
	system, pid := spawnThreadActor(t, store)
	defer system.Shutdown()

	result := ask(t, system, pid, &VoteThreadMsg{ThreadID: thread.ID, UserID: voter, Value: models.VoteUp})
	vote, ok := result.(*models.VoteResult)
	require.True(t, ok)
	assert.Equal(t, 1, vote.VoteCount)
}

func TestThreadActorDeleteByModerator(t *testing.T) {
	store := newFakeStore()
	author := store.addUser(models.RoleMember)
	moderator := store.addUser(models.RoleSuperModerator)
	stranger := store.addUser(models.RoleMember)
	thread := seedThread(store, author)
	system, pid := spawnThreadActor(t, store)
	defer system.Shutdown()

	result := ask(t, system, pid, &DeleteThreadMsg{ThreadID: thread.ID, RequesterID: stranger})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrForbidden, appErr.Code)

	result = ask(t, system, pid, &DeleteThreadMsg{ThreadID: thread.ID, RequesterID: moderator})
	status, ok := result.(*models.StatusResponse)
	require.True(t, ok)
	assert.True(t, status.Success)
	assert.True(t, store.threads[thread.ID].IsDeleted)
}
