package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"quizify/internal/services"
	httputil "quizify/internal/utility/http"
)

// AvatarStorage is the blob-store surface the user handler needs (S3 in production).
type AvatarStorage interface {
	UploadObject(fileName string, contentType string, file multipart.File) (string, error)
	DeleteObject(fileName string) error
}

type UserHandler struct {
	users   services.UserStore
	avatars AvatarStorage
}

func NewUserHandler(users services.UserStore, avatars AvatarStorage) *UserHandler {
	return &UserHandler{users: users, avatars: avatars}
}

func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if err != nil || pageSize <= 0 {
		pageSize = 10 // default page size
	}

	pageIndex, err := strconv.Atoi(r.URL.Query().Get("pageIndex"))
	if err != nil || pageIndex < 0 {
		pageIndex = 0 // default page index
	}

	skip := int64(pageIndex * pageSize)
	users, total, err := h.users.Find(r.Context(), skip, int64(pageSize))
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}

	httputil.RespondSuccess(w, map[string]interface{}{
		"users":      users,
		"totalUsers": total,
	})
}

// Me returns the authenticated caller's own record.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}
	httputil.RespondSuccess(w, user)
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}
	if h.avatars == nil {
		httputil.RespondError(w, http.StatusServiceUnavailable, "Avatar storage is not configured", nil)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Unable to parse form", err)
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Failed to retrieve the file", err)
		return
	}
	defer file.Close()

	// Replacing an avatar deletes the previous object; a failed delete only
	// leaks a blob, so it is logged and not fatal.
	if user.AvatarID != "" {
		if err := h.avatars.DeleteObject(user.AvatarID); err != nil {
			log.Printf("Failed to delete old avatar %q: %v", user.AvatarID, err)
		}
	}

	avatarID := fmt.Sprintf("avatars/%s%s", user.ID.Hex(), filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")
	avatarURL, err := h.avatars.UploadObject(avatarID, contentType, file)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to upload avatar", err)
		return
	}

	if err := h.users.UpdateAvatar(r.Context(), user.ID, avatarURL, avatarID); err != nil {
		httputil.RespondServiceError(w, err)
		return
	}
	httputil.RespondSuccess(w, map[string]interface{}{"avatarUrl": avatarURL})
}
