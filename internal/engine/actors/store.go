package actors

import (
	"context"

	"sloboda/internal/models"

	"github.com/google/uuid"
)

// ThreadStore is the slice of persistence the ThreadActor needs.
// *database.PostgresDB satisfies it; tests use in-memory fakes.
type ThreadStore interface {
	SaveThread(ctx context.Context, thread *models.Thread) error
	GetThread(ctx context.Context, id uuid.UUID, requestingUserID uuid.UUID) (*models.Thread, error)
	UpdateThreadContent(ctx context.Context, id uuid.UUID, title, body string) error
	SetThreadPinned(ctx context.Context, id uuid.UUID, pinned bool) error
	SetThreadLocked(ctx context.Context, id uuid.UUID, locked bool) error
	SoftDeleteThread(ctx context.Context, id uuid.UUID) error
	SetThreadTags(ctx context.Context, id uuid.UUID, tags []string) error
	GetUserRole(ctx context.Context, userID uuid.UUID) (*models.UserRole, error)
	RecordVote(ctx context.Context, userID, targetID uuid.UUID, targetType models.VoteTargetType, value int) (*models.VoteResult, error)
}

// CommentStore is the slice of persistence the CommentActor needs.
type CommentStore interface {
	GetThread(ctx context.Context, id uuid.UUID, requestingUserID uuid.UUID) (*models.Thread, error)
	SaveComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	UpdateCommentBody(ctx context.Context, id uuid.UUID, body string) error
	SoftDeleteComment(ctx context.Context, id uuid.UUID) error
	GetUserRole(ctx context.Context, userID uuid.UUID) (*models.UserRole, error)
	RecordVote(ctx context.Context, userID, targetID uuid.UUID, targetType models.VoteTargetType, value int) (*models.VoteResult, error)
	SaveNotification(ctx context.Context, n *models.Notification) error
}

// RoleStore is the slice of persistence the RoleActor needs.
type RoleStore interface {
	GetUserRole(ctx context.Context, userID uuid.UUID) (*models.UserRole, error)
	SetUserRole(ctx context.Context, userID uuid.UUID, role models.Role) error
	SaveNotification(ctx context.Context, n *models.Notification) error
}

// Notifier pushes an already-persisted notification to the user's live
// connection, if one exists. Implementations must not block.
type Notifier interface {
	Push(userID uuid.UUID, n *models.Notification)
}
