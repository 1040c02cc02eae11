package forum

import (
	"testing"

	"sloboda/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comment(id uuid.UUID, parent *uuid.UUID) *models.Comment {
	return &models.Comment{ID: id, ParentCommentID: parent}
}

func TestBuildTreeNestsReplies(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	forest := BuildTree([]*models.Comment{
		comment(a, nil),
		comment(b, &a),
		comment(c, nil),
	})

	require.Len(t, forest, 2)
	assert.Equal(t, a, forest[0].ID)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, b, forest[0].Children[0].ID)
	assert.Equal(t, c, forest[1].ID)
	assert.Empty(t, forest[1].Children)
}

func TestBuildTreeIsOrderIndependent(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	// B arrives before its parent A; the two-pass build must not care.
	forest := BuildTree([]*models.Comment{
		comment(b, &a),
		comment(a, nil),
		comment(c, nil),
	})

	require.Len(t, forest, 2)
	assert.Equal(t, a, forest[0].ID)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, b, forest[0].Children[0].ID)
}

func TestBuildTreeDropsOrphans(t *testing.T) {
	a := uuid.New()
	missing := uuid.New()
	orphan := uuid.New()

	input := []*models.Comment{
		comment(a, nil),
		comment(orphan, &missing),
	}
	forest := BuildTree(input)

	ids := Flatten(forest)
	assert.Equal(t, []uuid.UUID{a}, ids)
}

func TestFlattenRoundTrip(t *testing.T) {
	root := uuid.New()
	reply := uuid.New()
	nested := uuid.New()
	sibling := uuid.New()

	input := []*models.Comment{
		comment(root, nil),
		comment(reply, &root),
		comment(nested, &reply),
		comment(sibling, nil),
	}
	ids := Flatten(BuildTree(input))

	// Pre-order: every input id survives, none duplicated.
	require.Len(t, ids, len(input))
	assert.Equal(t, []uuid.UUID{root, reply, nested, sibling}, ids)
}

func TestBuildTreeEmptyInput(t *testing.T) {
	assert.Empty(t, BuildTree(nil))
	assert.Empty(t, Flatten(nil))
}

func TestBuildTreeDoesNotMutateInput(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	input := []*models.Comment{comment(a, nil), comment(b, &a)}

	_ = BuildTree(input)

	assert.Nil(t, input[0].ParentCommentID)
	assert.Equal(t, a, *input[1].ParentCommentID)
}
