// internal/middleware/upload.go
package middleware

import (
	"sloboda/internal/config"
	"sloboda/internal/utils"

	"github.com/samber/lo"
)

// MIME types accepted for each upload kind. Avatars must be images;
// general attachments also allow a few document formats.
var (
	avatarTypes = []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
	}

	fileTypes = append([]string{
		"application/pdf",
		"text/plain",
		"application/zip",
	}, avatarTypes...)
)

// UploadKind selects which limit and MIME allow-list applies.
type UploadKind string

const (
	UploadAvatar UploadKind = "avatar"
	UploadFile   UploadKind = "file"
)

// UploadGuard validates upload requests against size ceilings, MIME
// allow-lists, and the caller's storage quota before anything is written
// to object storage.
type UploadGuard struct {
	cfg *config.UploadConfig
}

func NewUploadGuard(cfg *config.UploadConfig) *UploadGuard {
	return &UploadGuard{cfg: cfg}
}

// MaxSize returns the size ceiling for the upload kind.
func (g *UploadGuard) MaxSize(kind UploadKind) int64 {
	if kind == UploadAvatar {
		return g.cfg.MaxAvatarSize
	}
	return g.cfg.MaxFileSize
}

// Check validates a single upload. used is the caller's current storage
// consumption in bytes.
func (g *UploadGuard) Check(kind UploadKind, contentType string, size, used int64) error {
	if size <= 0 {
		return utils.NewAppError(utils.ErrInvalidInput, "empty upload", nil)
	}
	if size > g.MaxSize(kind) {
		return utils.NewAppError(utils.ErrFileTooLarge, "file exceeds the size limit", nil)
	}

	allowed := fileTypes
	if kind == UploadAvatar {
		allowed = avatarTypes
	}
	if !lo.Contains(allowed, contentType) {
		return utils.NewAppError(utils.ErrUnsupportedType, "unsupported content type", nil)
	}

	if used+size > g.cfg.UserQuota {
		return utils.NewAppError(utils.ErrQuotaExceeded, "storage quota exceeded", nil)
	}
	return nil
}
