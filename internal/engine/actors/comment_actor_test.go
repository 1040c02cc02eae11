package actors

import (
	"testing"

	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnCommentActor(t *testing.T, store *fakeStore, notifier Notifier) (*actor.ActorSystem, *actor.PID) {
	t.Helper()
	system := actor.NewActorSystem()
	pid := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewCommentActor(store, notifier)
	}))
	return system, pid
}

func TestCommentActorCreateAndNotify(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	author := store.addUser(models.RoleMember)
	commenter := store.addUser(models.RoleMember)
	thread := seedThread(store, author)
	system, pid := spawnCommentActor(t, store, notifier)
	defer system.Shutdown()

	result := ask(t, system, pid, &CreateCommentMsg{
		ThreadID: thread.ID,
		AuthorID: commenter,
		Body:     "Count me in",
	})

	comment, ok := result.(*models.Comment)
	require.True(t, ok, "expected a comment, got %T: %v", result, result)
	assert.Equal(t, 0, comment.Depth)
	assert.Equal(t, 1, store.threads[thread.ID].CommentCount)

	// Thread author gets a reply notification.
	require.Len(t, store.notifications, 1)
	assert.Equal(t, author, store.notifications[0].UserID)
	assert.Equal(t, models.NotifyReply, store.notifications[0].Kind)
	assert.Equal(t, []uuid.UUID{author}, notifier.pushes)
}

func TestCommentActorSelfReplyIsSilent(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	author := store.addUser(models.RoleMember)
	thread := seedThread(store, author)
	system, pid := spawnCommentActor(t, store, notifier)
	defer system.Shutdown()

	result := ask(t, system, pid, &CreateCommentMsg{
		ThreadID: thread.ID,
		AuthorID: author,
		Body:     "Replying to my own thread",
	})
	_, ok := result.(*models.Comment)
	require.True(t, ok)
	assert.Empty(t, store.notifications)
	assert.Empty(t, notifier.pushes)
}

func TestCommentActorLockedThread(t *testing.T) {
	store := newFakeStore()
	member := store.addUser(models.RoleMember)
	moderator := store.addUser(models.RoleModerator)
	thread := seedThread(store, member)
	thread.IsLocked = true
	system, pid := spawnCommentActor(t, store, nil)
	defer system.Shutdown()

	result := ask(t, system, pid, &CreateCommentMsg{ThreadID: thread.ID, AuthorID: member, Body: "late reply"})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrThreadLocked, appErr.Code)

	// Moderators can still comment on locked threads.
	result = ask(t, system, pid, &CreateCommentMsg{ThreadID: thread.ID, AuthorID: moderator, Body: "locking reason"})
	_, ok = result.(*models.Comment)
	assert.True(t, ok)
}

func TestCommentActorDepthLimit(t *testing.T) {
	store := newFakeStore()
	member := store.addUser(models.RoleMember)
	thread := seedThread(store, member)
	system, pid := spawnCommentActor(t, store, nil)
	defer system.Shutdown()

	var parentID *uuid.UUID
	for i := 0; i <= models.MaxCommentDepth; i++ {
		result := ask(t, system, pid, &CreateCommentMsg{
			ThreadID:        thread.ID,
			ParentCommentID: parentID,
			AuthorID:        member,
			Body:            "reply",
		})
		comment, ok := result.(*models.Comment)
		require.True(t, ok, "depth %d should be accepted, got %v", i, result)
		assert.Equal(t, i, comment.Depth)
		parentID = &comment.ID
	}

	// One past the limit is rejected.
	result := ask(t, system, pid, &CreateCommentMsg{
		ThreadID:        thread.ID,
		ParentCommentID: parentID,
		AuthorID:        member,
		Body:            "too deep",
	})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrMaxDepth, appErr.Code)
}

func TestCommentActorParentMustMatchThread(t *testing.T) {
	store := newFakeStore()
	member := store.addUser(models.RoleMember)
	threadA := seedThread(store, member)
	threadB := seedThread(store, member)
	system, pid := spawnCommentActor(t, store, nil)
	defer system.Shutdown()

	result := ask(t, system, pid, &CreateCommentMsg{ThreadID: threadA.ID, AuthorID: member, Body: "root"})
	root, ok := result.(*models.Comment)
	require.True(t, ok)

	result = ask(t, system, pid, &CreateCommentMsg{
		ThreadID:        threadB.ID,
		ParentCommentID: &root.ID,
		AuthorID:        member,
		Body:            "cross-thread reply",
	})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrInvalidInput, appErr.Code)
}

func TestCommentActorEditAndDeletePermissions(t *testing.T) {
	store := newFakeStore()
	author := store.addUser(models.RoleMember)
	stranger := store.addUser(models.RoleMember)
	moderator := store.addUser(models.RoleModerator)
	thread := seedThread(store, author)
	system, pid := spawnCommentActor(t, store, nil)
	defer system.Shutdown()

	result := ask(t, system, pid, &CreateCommentMsg{ThreadID: thread.ID, AuthorID: author, Body: "original"})
	comment := result.(*models.Comment)

	result = ask(t, system, pid, &EditCommentMsg{CommentID: comment.ID, EditorID: stranger, Body: "hijacked"})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrForbidden, appErr.Code)

	result = ask(t, system, pid, &EditCommentMsg{CommentID: comment.ID, EditorID: author, Body: "fixed typo"})
	edited, ok := result.(*models.Comment)
	require.True(t, ok)
	assert.Equal(t, "fixed typo", edited.Body)

	result = ask(t, system, pid, &DeleteCommentMsg{CommentID: comment.ID, RequesterID: moderator})
	status, ok := result.(*models.StatusResponse)
	require.True(t, ok)
	assert.True(t, status.Success)
	assert.True(t, store.comments[comment.ID].IsDeleted)

	// A deleted comment cannot be edited.
	result = ask(t, system, pid, &EditCommentMsg{CommentID: comment.ID, EditorID: author, Body: "resurrect"})
	appErr, ok = result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrCommentNotFound, appErr.Code)
}

func TestCommentActorVote(t *testing.T) {
	store := newFakeStore()
	author := store.addUser(models.RoleMember)
	voter := store.addUser(models.RoleMember)
	thread := seedThread(store, author)
	system, pid := spawnCommentActor(t, store, nil)
	defer system.Shutdown()

	result := ask(t, system, pid, &CreateCommentMsg{ThreadID: thread.ID, AuthorID: author, Body: "vote on me"})
	comment := result.(*models.Comment)

	result = ask(t, system, pid, &VoteCommentMsg{CommentID: comment.ID, UserID: voter, Value: models.VoteDown})
	vote, ok := result.(*models.VoteResult)
	require.True(t, ok)
	assert.Equal(t, -1, vote.VoteCount)
	assert.Equal(t, models.VoteDown, vote.UserVote)

	result = ask(t, system, pid, &VoteCommentMsg{CommentID: comment.ID, UserID: voter, Value: 2})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrInvalidInput, appErr.Code)
}
