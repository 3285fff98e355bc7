// internal/app/features/uploads/uploads.go
package uploads

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/homeclass/portal/internal/app/features/shared/respond"
	"github.com/homeclass/portal/internal/app/system/limits"
	"go.uber.org/zap"
)

// allowedExtensions for uploaded files. The portal only ever stores
// images (journal photos, avatars, school logos).
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Upload handles POST /api/uploads (multipart field "file"). The
// response carries the public URL the client stores on its documents.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxUploadBytes)
	if err := r.ParseMultipartForm(limits.MaxUploadBytes); err != nil {
		respond.Error(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		respond.Error(w, http.StatusUnsupportedMediaType, "only image uploads are accepted")
		return
	}

	// Random name: never trust or reuse the client's filename.
	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(h.Dir, name))
	if err != nil {
		h.Log.Error("failed to create upload file", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not store file")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		h.Log.Error("failed to write upload", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not store file")
		return
	}

	h.Log.Info("file uploaded",
		zap.String("name", name),
		zap.Int64("size", header.Size))
	respond.JSON(w, http.StatusCreated, map[string]string{
		"url": "/uploads/" + name,
	})
}
