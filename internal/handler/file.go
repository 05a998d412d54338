package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"assistor/internal/auth"
	"assistor/internal/form"
	"assistor/internal/service"
)

// FileHandler exposes the uploaded files nested under a course. Uploads
// arrive as multipart form data (metadata fields plus the file part);
// everything else on this surface is JSON.
type FileHandler struct {
	files  *service.FileService
	logger *slog.Logger
}

func NewFileHandler(files *service.FileService, logger *slog.Logger) *FileHandler {
	return &FileHandler{files: files, logger: logger}
}

// HTTP: GET /api/courses/{courseID}/files
func (h *FileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	files, err := h.files.List(r.Context(), userID, r.PathValue("courseID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, files)
}

// HandleUpload stores a new file.
//
// HTTP: POST /api/courses/{courseID}/files
// BODY: multipart/form-data with fields "name", "category" and a
// "file" part carrying the content.
func (h *FileHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	// MaxBytesReader caps the whole request; a client streaming more
	// than the limit gets cut off instead of filling the disk.
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxUploadSize)

	if err := r.ParseMultipartForm(4 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid or oversized multipart body",
		})
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "validation failed",
			Fields:  map[string][]string{"file": {"a file part is required"}},
		})
		return
	}
	defer part.Close()

	f := form.File{
		Name:     r.FormValue("name"),
		Category: r.FormValue("category"),
	}

	file, err := h.files.Upload(r.Context(), userID, r.PathValue("courseID"),
		&f, part, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, file)
}

// HandleGet returns a file's metadata, not its contents.
//
// HTTP: GET /api/courses/{courseID}/files/{fileID}
func (h *FileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	file, err := h.files.Get(r.Context(), userID, r.PathValue("courseID"), r.PathValue("fileID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, file)
}

// HandleDownload streams a file's contents.
//
// HTTP: GET /api/courses/{courseID}/files/{fileID}/download
func (h *FileHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	file, content, err := h.files.Download(r.Context(), userID, r.PathValue("courseID"), r.PathValue("fileID"))
	if err != nil {
		writeError(w, err)
		return
	}
	defer content.Close()

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", file.Size))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))

	if _, err := io.Copy(w, content); err != nil {
		// Headers are gone; all that's left is the log line.
		h.logger.Warn("interrupted file download",
			slog.String("file_id", file.ID),
			slog.String("error", err.Error()),
		)
	}
}

// HandleUpdate renames or recategorizes a file. The content itself is
// immutable.
//
// HTTP: PUT /api/courses/{courseID}/files/{fileID}
func (h *FileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	var f form.File
	if !decodeJSON(w, r, &f) {
		return
	}

	file, err := h.files.Update(r.Context(), userID, r.PathValue("courseID"), r.PathValue("fileID"), &f)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, file)
}

// HTTP: DELETE /api/courses/{courseID}/files/{fileID}
func (h *FileHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	if err := h.files.Delete(r.Context(), userID, r.PathValue("courseID"), r.PathValue("fileID")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
