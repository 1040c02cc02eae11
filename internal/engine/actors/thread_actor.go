package actors

import (
	"log"
	"strings"
	"time"

	stdctx "context"

	"sloboda/internal/forum"
	"sloboda/internal/metrics"
	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for thread operations
type (
	CreateThreadMsg struct {
		Title      string
		Body       string
		Type       models.ThreadType
		AuthorID   uuid.UUID
		CategoryID *uuid.UUID
		Tags       []string
	}

	EditThreadMsg struct {
		ThreadID uuid.UUID
		EditorID uuid.UUID
		Title    string
		Body     string
	}

	DeleteThreadMsg struct {
		ThreadID    uuid.UUID
		RequesterID uuid.UUID
	}

	PinThreadMsg struct {
		ThreadID    uuid.UUID
		RequesterID uuid.UUID
		Pinned      bool
	}

	LockThreadMsg struct {
		ThreadID    uuid.UUID
		RequesterID uuid.UUID
		Locked      bool
	}

	TagThreadMsg struct {
		ThreadID    uuid.UUID
		RequesterID uuid.UUID
		Tags        []string
	}

	VoteThreadMsg struct {
		ThreadID uuid.UUID
		UserID   uuid.UUID
		Value    int
	}
)

// ThreadActor serializes all thread writes. Reads go straight to the
// database from the handlers; routing mutations through one actor keeps
// permission checks and derived counters free of interleaving.
type ThreadActor struct {
	store ThreadStore
}

func NewThreadActor(store ThreadStore) actor.Actor {
	return &ThreadActor{store: store}
}

func (a *ThreadActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("ThreadActor started")
	case *actor.Stopping:
		log.Printf("ThreadActor stopping")
	case *CreateThreadMsg:
		a.handleCreate(context, msg)
	case *EditThreadMsg:
		a.handleEdit(context, msg)
	case *DeleteThreadMsg:
		a.handleDelete(context, msg)
	case *PinThreadMsg:
		a.handlePin(context, msg)
	case *LockThreadMsg:
		a.handleLock(context, msg)
	case *TagThreadMsg:
		a.handleTags(context, msg)
	case *VoteThreadMsg:
		a.handleVote(context, msg)
	}
}

func (a *ThreadActor) handleCreate(context actor.Context, msg *CreateThreadMsg) {
	ctx := stdctx.Background()

	if strings.TrimSpace(msg.Title) == "" {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "thread title is required", nil))
		return
	}
	if !models.ValidThreadType(msg.Type) {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "unknown thread type", nil))
		return
	}

	role, err := a.store.GetUserRole(ctx, msg.AuthorID)
	if err != nil {
		context.Respond(err)
		return
	}
	if !forum.CapabilitiesFor(role.Level()).CanCreateThreads {
		context.Respond(utils.NewAppError(utils.ErrForbidden, "role does not allow creating threads", nil))
		return
	}
	// Announcements are a moderator-only thread type.
	if msg.Type == models.ThreadAnnouncement && role.Level() < models.ModeratorLevel {
		context.Respond(utils.NewAppError(utils.ErrForbidden, "only moderators may post announcements", nil))
		return
	}

	now := time.Now()
	thread := &models.Thread{
		ID:             uuid.New(),
		Title:          msg.Title,
		Body:           msg.Body,
		Type:           msg.Type,
		AuthorID:       msg.AuthorID,
		CategoryID:     msg.CategoryID,
		CreatedAt:      now,
		UpdatedAt:      now,
		LastActivityAt: now,
	}
	if err := a.store.SaveThread(ctx, thread); err != nil {
		context.Respond(err)
		return
	}
	if len(msg.Tags) > 0 {
		if err := a.store.SetThreadTags(ctx, thread.ID, msg.Tags); err != nil {
			context.Respond(err)
			return
		}
		thread.Tags = msg.Tags
	}

	log.Printf("ThreadActor: created thread %s by user %s", thread.ID, msg.AuthorID)
	context.Respond(thread)
}

func (a *ThreadActor) handleEdit(context actor.Context, msg *EditThreadMsg) {
	ctx := stdctx.Background()

	if strings.TrimSpace(msg.Title) == "" {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "thread title is required", nil))
		return
	}

	thread, err := a.store.GetThread(ctx, msg.ThreadID, msg.EditorID)
	if err != nil {
		context.Respond(err)
		return
	}
	if thread.IsDeleted {
		context.Respond(utils.NewAppError(utils.ErrThreadNotFound, "thread has been deleted", nil))
		return
	}

	role, err := a.store.GetUserRole(ctx, msg.EditorID)
	if err != nil {
		context.Respond(err)
		return
	}
	isModerator := role.Level() >= models.ModeratorLevel
	if !isModerator {
		if thread.AuthorID != msg.EditorID {
			context.Respond(utils.NewAppError(utils.ErrForbidden, "only the author may edit this thread", nil))
			return
		}
		if thread.IsLocked {
			context.Respond(utils.NewAppError(utils.ErrThreadLocked, "thread is locked", nil))
			return
		}
	}

	if err := a.store.UpdateThreadContent(ctx, msg.ThreadID, msg.Title, msg.Body); err != nil {
		context.Respond(err)
		return
	}
	thread.Title = msg.Title
	thread.Body = msg.Body
	thread.UpdatedAt = time.Now()
	context.Respond(thread)
}

func (a *ThreadActor) handleDelete(context actor.Context, msg *DeleteThreadMsg) {
	ctx := stdctx.Background()

	thread, err := a.store.GetThread(ctx, msg.ThreadID, msg.RequesterID)
	if err != nil {
		context.Respond(err)
		return
	}
	if thread.IsDeleted {
		context.Respond(utils.NewAppError(utils.ErrThreadNotFound, "thread has been deleted", nil))
		return
	}

	role, err := a.store.GetUserRole(ctx, msg.RequesterID)
	if err != nil {
		context.Respond(err)
		return
	}
	if thread.AuthorID != msg.RequesterID && role.Level() < models.ModeratorLevel {
		context.Respond(utils.NewAppError(utils.ErrForbidden, "not allowed to delete this thread", nil))
		return
	}

	if err := a.store.SoftDeleteThread(ctx, msg.ThreadID); err != nil {
		context.Respond(err)
		return
	}
	log.Printf("ThreadActor: thread %s deleted by user %s", msg.ThreadID, msg.RequesterID)
	context.Respond(&models.StatusResponse{Success: true, Message: "thread deleted"})
}

func (a *ThreadActor) handlePin(context actor.Context, msg *PinThreadMsg) {
	ctx := stdctx.Background()

	if err := a.requireModerator(ctx, msg.RequesterID); err != nil {
		context.Respond(err)
		return
	}
	if err := a.store.SetThreadPinned(ctx, msg.ThreadID, msg.Pinned); err != nil {
		context.Respond(err)
		return
	}
	context.Respond(&models.StatusResponse{Success: true})
}

func (a *ThreadActor) handleLock(context actor.Context, msg *LockThreadMsg) {
	ctx := stdctx.Background()

	if err := a.requireModerator(ctx, msg.RequesterID); err != nil {
		context.Respond(err)
		return
	}
	if err := a.store.SetThreadLocked(ctx, msg.ThreadID, msg.Locked); err != nil {
		context.Respond(err)
		return
	}
	context.Respond(&models.StatusResponse{Success: true})
}

func (a *ThreadActor) handleTags(context actor.Context, msg *TagThreadMsg) {
	ctx := stdctx.Background()

	thread, err := a.store.GetThread(ctx, msg.ThreadID, msg.RequesterID)
	if err != nil {
		context.Respond(err)
		return
	}
	role, err := a.store.GetUserRole(ctx, msg.RequesterID)
	if err != nil {
		context.Respond(err)
		return
	}
	if thread.AuthorID != msg.RequesterID && role.Level() < models.ModeratorLevel {
		context.Respond(utils.NewAppError(utils.ErrForbidden, "not allowed to tag this thread", nil))
		return
	}

	tags := normalizeTags(msg.Tags)
	if err := a.store.SetThreadTags(ctx, msg.ThreadID, tags); err != nil {
		context.Respond(err)
		return
	}
	thread.Tags = tags
	context.Respond(thread)
}

func (a *ThreadActor) handleVote(context actor.Context, msg *VoteThreadMsg) {
	ctx := stdctx.Background()

	if !models.ValidVoteValue(msg.Value) {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "vote value must be 1 or -1", nil))
		return
	}
	thread, err := a.store.GetThread(ctx, msg.ThreadID, msg.UserID)
	if err != nil {
		context.Respond(err)
		return
	}
	// Locked threads still accept votes; deleted ones do not.
	if thread.IsDeleted {
		context.Respond(utils.NewAppError(utils.ErrThreadNotFound, "thread has been deleted", nil))
		return
	}

	result, err := a.store.RecordVote(ctx, msg.UserID, msg.ThreadID, models.ThreadVote, msg.Value)
	if err != nil {
		context.Respond(err)
		return
	}
	metrics.CountVote(string(models.ThreadVote))
	context.Respond(result)
}

func (a *ThreadActor) requireModerator(ctx stdctx.Context, userID uuid.UUID) error {
	role, err := a.store.GetUserRole(ctx, userID)
	if err != nil {
		return err
	}
	if role.Level() < models.ModeratorLevel {
		return utils.NewAppError(utils.ErrForbidden, "moderator role required", nil)
	}
	return nil
}

// normalizeTags lowercases, slugifies, and dedupes while keeping order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		slug := forum.Slugify(tag)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, slug)
	}
	return out
}
