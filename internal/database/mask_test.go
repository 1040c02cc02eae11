package database

import (
	"testing"

	"sloboda/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMaskDeletedThread(t *testing.T) {
	id := uuid.New()
	thread := &models.Thread{
		ID:           id,
		Title:        "compost bins by the north gate",
		Body:         "who keeps leaving plastic in them?",
		CommentCount: 7,
		VoteCount:    3,
		IsDeleted:    true,
	}

	maskDeletedThread(thread)

	assert.Equal(t, models.DeletedPlaceholder, thread.Title)
	assert.Equal(t, models.DeletedPlaceholder, thread.Body)
	// The row keeps its identity and tree size.
	assert.Equal(t, id, thread.ID)
	assert.Equal(t, 7, thread.CommentCount)
	assert.Equal(t, 3, thread.VoteCount)
}

func TestMaskDeletedThreadLeavesLiveThreadsAlone(t *testing.T) {
	thread := &models.Thread{
		ID:    uuid.New(),
		Title: "spring planting schedule",
		Body:  "sign-up sheet is on the board",
	}

	maskDeletedThread(thread)

	assert.Equal(t, "spring planting schedule", thread.Title)
	assert.Equal(t, "sign-up sheet is on the board", thread.Body)
}

func TestMaskDeletedComment(t *testing.T) {
	id := uuid.New()
	comment := &models.Comment{
		ID:        id,
		Body:      "this aged poorly",
		Depth:     3,
		VoteCount: -2,
		IsDeleted: true,
	}

	maskDeletedComment(comment)

	assert.Equal(t, models.DeletedPlaceholder, comment.Body)
	assert.Equal(t, id, comment.ID)
	assert.Equal(t, 3, comment.Depth)
	assert.Equal(t, -2, comment.VoteCount)
}

func TestMaskDeletedCommentLeavesLiveCommentsAlone(t *testing.T) {
	comment := &models.Comment{ID: uuid.New(), Body: "seconded"}

	maskDeletedComment(comment)

	assert.Equal(t, "seconded", comment.Body)
}
