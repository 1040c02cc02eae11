package middleware

import (
	"testing"

	"sloboda/internal/config"
	"sloboda/internal/utils"

	"github.com/stretchr/testify/assert"
)

func testGuard() *UploadGuard {
	return NewUploadGuard(config.DefaultUploadConfig())
}

func TestUploadGuardSizeLimits(t *testing.T) {
	g := testGuard()

	assert.NoError(t, g.Check(UploadFile, "application/pdf", 20<<20, 0))
	err := g.Check(UploadFile, "application/pdf", 20<<20+1, 0)
	assert.True(t, utils.IsErrorCode(err, utils.ErrFileTooLarge))

	// Avatars have the tighter 5 MB ceiling.
	assert.NoError(t, g.Check(UploadAvatar, "image/png", 5<<20, 0))
	err = g.Check(UploadAvatar, "image/png", 6<<20, 0)
	assert.True(t, utils.IsErrorCode(err, utils.ErrFileTooLarge))
}

func TestUploadGuardContentTypes(t *testing.T) {
	g := testGuard()

	err := g.Check(UploadAvatar, "application/pdf", 1024, 0)
	assert.True(t, utils.IsErrorCode(err, utils.ErrUnsupportedType))

	err = g.Check(UploadFile, "application/x-msdownload", 1024, 0)
	assert.True(t, utils.IsErrorCode(err, utils.ErrUnsupportedType))

	assert.NoError(t, g.Check(UploadFile, "image/webp", 1024, 0))
}

func TestUploadGuardQuota(t *testing.T) {
	g := testGuard()

	used := int64(200<<20) - 1024
	err := g.Check(UploadFile, "text/plain", 2048, used)
	assert.True(t, utils.IsErrorCode(err, utils.ErrQuotaExceeded))

	assert.NoError(t, g.Check(UploadFile, "text/plain", 1024, used))
}

func TestUploadGuardRejectsEmptyUpload(t *testing.T) {
	g := testGuard()
	err := g.Check(UploadFile, "text/plain", 0, 0)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))
}
