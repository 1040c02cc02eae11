package handlers

import (
	"net/http"
	"time"

	"sloboda/internal/middleware"
	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/google/uuid"
)

// HandleUpload accepts a multipart file upload (field "file") and stores
// it in the object store.
func (s *Server) HandleUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.GetUserIDFromContext(r.Context())

		upload, err := s.storeUpload(r, "file", middleware.UploadFile, userID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, upload)
	}
}

// HandleAvatarUpload accepts an avatar image (field "avatar"), stores
// it, and updates the caller's profile.
func (s *Server) HandleAvatarUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.GetUserIDFromContext(r.Context())

		upload, err := s.storeUpload(r, "avatar", middleware.UploadAvatar, userID)
		if err != nil {
			respondError(w, err)
			return
		}
		if err := s.DB.UpdateUserAvatar(r.Context(), userID, upload.PublicURL); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, upload)
	}
}

// storeUpload runs the shared pipeline: parse the multipart form, check
// limits and quota, write to object storage, record the upload row.
func (s *Server) storeUpload(r *http.Request, field string, kind middleware.UploadKind, userID uuid.UUID) (*models.Upload, error) {
	// One megabyte headroom for the multipart framing.
	limit := s.UploadGuard.MaxSize(kind)
	r.Body = http.MaxBytesReader(nil, r.Body, limit+1<<20)

	if err := r.ParseMultipartForm(limit); err != nil {
		return nil, utils.NewAppError(utils.ErrFileTooLarge, "upload too large or malformed", err)
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrInvalidInput, "missing form field "+field, err)
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	used, err := s.DB.UserStorageUsed(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	if err := s.UploadGuard.Check(kind, contentType, header.Size, used); err != nil {
		return nil, err
	}

	var key string
	if kind == middleware.UploadAvatar {
		key, err = s.Storage.PutAvatar(r.Context(), file, header.Size, contentType)
	} else {
		key, err = s.Storage.PutFile(r.Context(), file, header.Size, contentType)
	}
	if err != nil {
		return nil, err
	}

	upload := &models.Upload{
		ID:          uuid.New(),
		OwnerID:     userID,
		ObjectKey:   key,
		ContentType: contentType,
		Size:        header.Size,
		PublicURL:   s.Storage.PublicURL(key),
		CreatedAt:   time.Now(),
	}
	if err := s.DB.SaveUpload(r.Context(), upload); err != nil {
		return nil, err
	}
	return upload, nil
}
