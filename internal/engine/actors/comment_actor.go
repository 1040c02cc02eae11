package actors

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	stdctx "context"

	"sloboda/internal/metrics"
	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for comment operations
type (
	CreateCommentMsg struct {
		ThreadID        uuid.UUID
		ParentCommentID *uuid.UUID
		AuthorID        uuid.UUID
		Body            string
	}

	EditCommentMsg struct {
		CommentID uuid.UUID
		EditorID  uuid.UUID
		Body      string
	}

	DeleteCommentMsg struct {
		CommentID   uuid.UUID
		RequesterID uuid.UUID
	}

	VoteCommentMsg struct {
		CommentID uuid.UUID
		UserID    uuid.UUID
		Value     int
	}
)

// CommentActor serializes comment writes. It owns the nesting-depth and
// locked-thread rules and emits reply notifications.
type CommentActor struct {
	store    CommentStore
	notifier Notifier
}

func NewCommentActor(store CommentStore, notifier Notifier) actor.Actor {
	return &CommentActor{store: store, notifier: notifier}
}

func (a *CommentActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("CommentActor started")
	case *actor.Stopping:
		log.Printf("CommentActor stopping")
	case *CreateCommentMsg:
		a.handleCreate(context, msg)
	case *EditCommentMsg:
		a.handleEdit(context, msg)
	case *DeleteCommentMsg:
		a.handleDelete(context, msg)
	case *VoteCommentMsg:
		a.handleVote(context, msg)
	}
}

func (a *CommentActor) handleCreate(context actor.Context, msg *CreateCommentMsg) {
	ctx := stdctx.Background()

	if strings.TrimSpace(msg.Body) == "" {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "comment body is required", nil))
		return
	}

	thread, err := a.store.GetThread(ctx, msg.ThreadID, msg.AuthorID)
	if err != nil {
		context.Respond(err)
		return
	}
	if thread.IsDeleted {
		context.Respond(utils.NewAppError(utils.ErrThreadNotFound, "thread has been deleted", nil))
		return
	}
	if thread.IsLocked {
		role, err := a.store.GetUserRole(ctx, msg.AuthorID)
		if err != nil {
			context.Respond(err)
			return
		}
		if role.Level() < models.ModeratorLevel {
			context.Respond(utils.NewAppError(utils.ErrThreadLocked, "thread is locked", nil))
			return
		}
	}

	depth := 0
	var parent *models.Comment
	if msg.ParentCommentID != nil {
		parent, err = a.store.GetComment(ctx, *msg.ParentCommentID)
		if err != nil {
			context.Respond(err)
			return
		}
		if parent.ThreadID != msg.ThreadID {
			context.Respond(utils.NewAppError(utils.ErrInvalidInput, "parent comment belongs to a different thread", nil))
			return
		}
		depth = parent.Depth + 1
		if depth > models.MaxCommentDepth {
			context.Respond(utils.NewAppError(utils.ErrMaxDepth, "maximum reply depth reached", nil))
			return
		}
	}

	now := time.Now()
	comment := &models.Comment{
		ID:              uuid.New(),
		Body:            msg.Body,
		ThreadID:        msg.ThreadID,
		ParentCommentID: msg.ParentCommentID,
		AuthorID:        msg.AuthorID,
		Depth:           depth,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := a.store.SaveComment(ctx, comment); err != nil {
		context.Respond(err)
		return
	}
	metrics.CountComment()

	a.notifyReply(ctx, thread, parent, comment)
	context.Respond(comment)
}

// notifyReply tells the parent comment's author, or the thread author for
// top-level comments, that they got a reply. Self-replies are silent.
// Notification failures are logged, never surfaced to the commenter.
func (a *CommentActor) notifyReply(ctx stdctx.Context, thread *models.Thread, parent *models.Comment, comment *models.Comment) {
	recipient := thread.AuthorID
	if parent != nil {
		recipient = parent.AuthorID
	}
	if recipient == comment.AuthorID {
		return
	}

	payload, _ := json.Marshal(map[string]string{
		"threadId":  thread.ID.String(),
		"commentId": comment.ID.String(),
		"title":     thread.Title,
	})
	n := &models.Notification{
		ID:        uuid.New(),
		UserID:    recipient,
		Kind:      models.NotifyReply,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	if err := a.store.SaveNotification(ctx, n); err != nil {
		log.Printf("CommentActor: failed to save reply notification: %v", err)
		return
	}
	if a.notifier != nil {
		a.notifier.Push(recipient, n)
	}
}

func (a *CommentActor) handleEdit(context actor.Context, msg *EditCommentMsg) {
	ctx := stdctx.Background()

	if strings.TrimSpace(msg.Body) == "" {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "comment body is required", nil))
		return
	}

	comment, err := a.store.GetComment(ctx, msg.CommentID)
	if err != nil {
		context.Respond(err)
		return
	}
	if comment.IsDeleted {
		context.Respond(utils.NewAppError(utils.ErrCommentNotFound, "comment has been deleted", nil))
		return
	}

	role, err := a.store.GetUserRole(ctx, msg.EditorID)
	if err != nil {
		context.Respond(err)
		return
	}
	isModerator := role.Level() >= models.ModeratorLevel
	if !isModerator {
		if comment.AuthorID != msg.EditorID {
			context.Respond(utils.NewAppError(utils.ErrForbidden, "only the author may edit this comment", nil))
			return
		}
		thread, err := a.store.GetThread(ctx, comment.ThreadID, msg.EditorID)
		if err != nil {
			context.Respond(err)
			return
		}
		if thread.IsLocked {
			context.Respond(utils.NewAppError(utils.ErrThreadLocked, "thread is locked", nil))
			return
		}
	}

	if err := a.store.UpdateCommentBody(ctx, msg.CommentID, msg.Body); err != nil {
		context.Respond(err)
		return
	}
	comment.Body = msg.Body
	comment.UpdatedAt = time.Now()
	context.Respond(comment)
}

func (a *CommentActor) handleDelete(context actor.Context, msg *DeleteCommentMsg) {
	ctx := stdctx.Background()

	comment, err := a.store.GetComment(ctx, msg.CommentID)
	if err != nil {
		context.Respond(err)
		return
	}
	if comment.IsDeleted {
		context.Respond(utils.NewAppError(utils.ErrCommentNotFound, "comment has been deleted", nil))
		return
	}

	role, err := a.store.GetUserRole(ctx, msg.RequesterID)
	if err != nil {
		context.Respond(err)
		return
	}
	if comment.AuthorID != msg.RequesterID && role.Level() < models.ModeratorLevel {
		context.Respond(utils.NewAppError(utils.ErrForbidden, "not allowed to delete this comment", nil))
		return
	}

	if err := a.store.SoftDeleteComment(ctx, msg.CommentID); err != nil {
		context.Respond(err)
		return
	}
	context.Respond(&models.StatusResponse{Success: true, Message: "comment deleted"})
}

func (a *CommentActor) handleVote(context actor.Context, msg *VoteCommentMsg) {
	ctx := stdctx.Background()

	if !models.ValidVoteValue(msg.Value) {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "vote value must be 1 or -1", nil))
		return
	}
	comment, err := a.store.GetComment(ctx, msg.CommentID)
	if err != nil {
		context.Respond(err)
		return
	}
	if comment.IsDeleted {
		context.Respond(utils.NewAppError(utils.ErrCommentNotFound, "comment has been deleted", nil))
		return
	}

	result, err := a.store.RecordVote(ctx, msg.UserID, msg.CommentID, models.CommentVote, msg.Value)
	if err != nil {
		context.Respond(err)
		return
	}
	metrics.CountVote(string(models.CommentVote))
	context.Respond(result)
}
