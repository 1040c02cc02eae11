package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxCommentDepth bounds reply nesting. A reply to a comment at this depth
// is rejected rather than silently flattened.
const MaxCommentDepth = 8

type Comment struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Body            string     `json:"body" db:"body"`
	ThreadID        uuid.UUID  `json:"threadId" db:"thread_id"`
	ParentCommentID *uuid.UUID `json:"parentCommentId,omitempty" db:"parent_comment_id"`
	AuthorID        uuid.UUID  `json:"authorId" db:"author_id"`
	AuthorUsername  string     `json:"authorUsername,omitempty" db:"author_username"`
	VoteCount       int        `json:"voteCount" db:"vote_count"`
	Depth           int        `json:"depth" db:"depth"`
	IsDeleted       bool       `json:"isDeleted" db:"is_deleted"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
	CurrentUserVote int        `json:"currentUserVote" db:"current_user_vote"`
}
