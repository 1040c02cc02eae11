package forum

import (
	"sloboda/internal/models"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// CommentNode is a comment with its direct replies attached in submission
// order.
type CommentNode struct {
	models.Comment
	Children []*CommentNode `json:"children"`
}

// BuildTree turns the flat comment list of one thread into a forest rooted
// at comments with no parent. Each input comment is cloned into a node, so
// the caller's slice is untouched. A comment whose parent is not in the
// input (for example a parent on another page) is dropped silently instead
// of erroring. The result does not depend on input order beyond the
// relative order of siblings.
func BuildTree(comments []*models.Comment) []*CommentNode {
	nodes := lo.Map(comments, func(c *models.Comment, _ int) *CommentNode {
		return &CommentNode{Comment: *c, Children: make([]*CommentNode, 0)}
	})
	byID := lo.KeyBy(nodes, func(n *CommentNode) uuid.UUID {
		return n.ID
	})

	forest := make([]*CommentNode, 0)
	for _, node := range nodes {
		if node.ParentCommentID == nil {
			forest = append(forest, node)
			continue
		}
		parent, ok := byID[*node.ParentCommentID]
		if !ok {
			continue // orphan: parent not in this batch
		}
		parent.Children = append(parent.Children, node)
	}
	return forest
}

// Flatten returns the pre-order ids of a forest. Traversal is capped by a
// visited set so a malformed graph cannot loop forever; the store enforces
// tree shape on writes, this is only a read-side guard.
func Flatten(forest []*CommentNode) []uuid.UUID {
	ids := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]bool)

	var walk func(n *CommentNode)
	walk = func(n *CommentNode) {
		if seen[n.ID] {
			return
		}
		seen[n.ID] = true
		ids = append(ids, n.ID)
		for _, child := range n.Children {
			walk(child)
		}
	}
	for _, root := range forest {
		walk(root)
	}
	return ids
}
