package handler

import (
	"log/slog"
	"net/http"

	"assistor/internal/auth"
	"assistor/internal/form"
	"assistor/internal/service"
)

// InstructorHandler exposes the instructors nested under a course.
// Same create-only surface as links.
type InstructorHandler struct {
	instructors *service.InstructorService
	logger      *slog.Logger
}

func NewInstructorHandler(instructors *service.InstructorService, logger *slog.Logger) *InstructorHandler {
	return &InstructorHandler{instructors: instructors, logger: logger}
}

// HTTP: GET /api/courses/{courseID}/instructors
func (h *InstructorHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	instructors, err := h.instructors.List(r.Context(), userID, r.PathValue("courseID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, instructors)
}

// HTTP: POST /api/courses/{courseID}/instructors
func (h *InstructorHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	var f form.Instructor
	if !decodeJSON(w, r, &f) {
		return
	}

	instructor, err := h.instructors.Create(r.Context(), userID, r.PathValue("courseID"), &f)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, instructor)
}

// HTTP: GET /api/courses/{courseID}/instructors/{instructorID}
func (h *InstructorHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	instructor, err := h.instructors.Get(r.Context(), userID, r.PathValue("courseID"), r.PathValue("instructorID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, instructor)
}

// HTTP: DELETE /api/courses/{courseID}/instructors/{instructorID}
func (h *InstructorHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	if err := h.instructors.Delete(r.Context(), userID, r.PathValue("courseID"), r.PathValue("instructorID")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
