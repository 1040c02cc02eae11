package storage

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("avatars", "image/png")
	assert.True(t, strings.HasPrefix(key, "avatars/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	// The middle part is a UUID, so keys never collide.
	id := strings.TrimSuffix(strings.TrimPrefix(key, "avatars/"), ".png")
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	// Unknown content types get no extension.
	key = ObjectKey("files", "application/octet-stream")
	assert.NotContains(t, strings.TrimPrefix(key, "files/"), ".")
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".jpg", ExtensionFor("image/jpeg"))
	assert.Equal(t, ".pdf", ExtensionFor("application/pdf"))
	assert.Equal(t, "", ExtensionFor("video/mp4"))
}

func TestPublicURL(t *testing.T) {
	s := &S3Store{bucket: "sloboda", publicBaseURL: "http://localhost:9000"}
	assert.Equal(t, "http://localhost:9000/sloboda/avatars/x.png", s.PublicURL("avatars/x.png"))

	// Trailing slash on the base URL is normalized in the constructor;
	// simulate that here.
	s = &S3Store{bucket: "sloboda", publicBaseURL: strings.TrimRight("https://cdn.example.org/", "/")}
	assert.Equal(t, "https://cdn.example.org/sloboda/files/doc.pdf", s.PublicURL("files/doc.pdf"))
}
