package models

import (
	"time"

	"github.com/google/uuid"
)

// ThreadType classifies a thread for display and filtering.
type ThreadType string

const (
	ThreadDiscussion   ThreadType = "discussion"
	ThreadQuestion     ThreadType = "question"
	ThreadAnnouncement ThreadType = "announcement"
)

// DeletedPlaceholder replaces the title and body of soft-deleted content.
// The row itself is never removed so comment trees stay intact.
const DeletedPlaceholder = "[deleted]"

type Thread struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Title           string     `json:"title" db:"title"`
	Body            string     `json:"body,omitempty" db:"body"`
	Type            ThreadType `json:"type" db:"thread_type"`
	AuthorID        uuid.UUID  `json:"authorId" db:"author_id"`
	AuthorUsername  string     `json:"authorUsername,omitempty" db:"author_username"`
	CategoryID      *uuid.UUID `json:"categoryId,omitempty" db:"category_id"`
	CategorySlug    string     `json:"categorySlug,omitempty" db:"category_slug"`
	VoteCount       int        `json:"voteCount" db:"vote_count"`
	CommentCount    int        `json:"commentCount" db:"comment_count"`
	ViewCount       int        `json:"viewCount" db:"view_count"`
	IsPinned        bool       `json:"isPinned" db:"is_pinned"`
	IsLocked        bool       `json:"isLocked" db:"is_locked"`
	IsDeleted       bool       `json:"isDeleted" db:"is_deleted"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
	LastActivityAt  time.Time  `json:"lastActivityAt" db:"last_activity_at"`
	CurrentUserVote int        `json:"currentUserVote" db:"current_user_vote"`
	Tags            []string   `json:"tags,omitempty"` // Not in threads table
}

// ValidThreadType reports whether t is one of the known thread types.
func ValidThreadType(t ThreadType) bool {
	switch t {
	case ThreadDiscussion, ThreadQuestion, ThreadAnnouncement:
		return true
	}
	return false
}
