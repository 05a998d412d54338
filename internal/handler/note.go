package handler

import (
	"log/slog"
	"net/http"

	"assistor/internal/auth"
	"assistor/internal/form"
	"assistor/internal/service"
)

// NoteHandler exposes the notes nested under a course.
type NoteHandler struct {
	notes  *service.NoteService
	logger *slog.Logger
}

func NewNoteHandler(notes *service.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{notes: notes, logger: logger}
}

// HTTP: GET /api/courses/{courseID}/notes
func (h *NoteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	notes, err := h.notes.List(r.Context(), userID, r.PathValue("courseID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

// HTTP: POST /api/courses/{courseID}/notes
func (h *NoteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	var f form.Note
	if !decodeJSON(w, r, &f) {
		return
	}

	note, err := h.notes.Create(r.Context(), userID, r.PathValue("courseID"), &f)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

// HTTP: GET /api/courses/{courseID}/notes/{noteID}
func (h *NoteHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	note, err := h.notes.Get(r.Context(), userID, r.PathValue("courseID"), r.PathValue("noteID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// HTTP: PUT /api/courses/{courseID}/notes/{noteID}
func (h *NoteHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	var f form.Note
	if !decodeJSON(w, r, &f) {
		return
	}

	note, err := h.notes.Update(r.Context(), userID, r.PathValue("courseID"), r.PathValue("noteID"), &f)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// HTTP: DELETE /api/courses/{courseID}/notes/{noteID}
func (h *NoteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	if err := h.notes.Delete(r.Context(), userID, r.PathValue("courseID"), r.PathValue("noteID")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
