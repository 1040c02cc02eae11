package models

// VoteTargetType represents the kind of content being voted on.
type VoteTargetType string

const (
	ThreadVote  VoteTargetType = "thread"
	CommentVote VoteTargetType = "comment"
)

// Vote values. Absence of a row means "no vote"; casting the same value
// twice retracts the vote, a different value overwrites it.
const (
	VoteUp   = 1
	VoteDown = -1
	VoteNone = 0
)

// ValidVoteValue reports whether v is a castable vote value.
func ValidVoteValue(v int) bool {
	return v == VoteUp || v == VoteDown
}

// VoteResult is returned after applying a vote: the recomputed aggregate
// and the caller's resulting vote state.
type VoteResult struct {
	TargetID  string `json:"targetId"`
	VoteCount int    `json:"voteCount"`
	UserVote  int    `json:"userVote"`
}
