package handlers

import (
	"testing"

	"sloboda/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorySlug(t *testing.T) {
	slug, err := categorySlug("Spring Planting")
	require.NoError(t, err)
	assert.Equal(t, "spring-planting", slug)
}

func TestCategorySlugRejectsUnsluggableName(t *testing.T) {
	for _, name := range []string{"!!!", "---", "   ", "💐💐"} {
		_, err := categorySlug(name)
		require.Error(t, err, "name %q", name)
		assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))
	}
}
