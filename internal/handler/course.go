package handler

import (
	"log/slog"
	"net/http"

	"assistor/internal/auth"
	"assistor/internal/form"
	"assistor/internal/service"
)

// CourseHandler exposes the course CRUD surface plus the two composite
// views (dashboard and course detail).
type CourseHandler struct {
	courses *service.CourseService
	logger  *slog.Logger
}

func NewCourseHandler(courses *service.CourseService, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{courses: courses, logger: logger}
}

// HandleDashboard returns the landing-page preview: the user's newest
// courses and soonest reminders, a few of each.
//
// HTTP: GET /api/dashboard
func (h *CourseHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	dash, err := h.courses.DashboardFor(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dash)
}

// HandleList returns all of the user's courses.
//
// HTTP: GET /api/courses
func (h *CourseHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	courses, err := h.courses.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, courses)
}

// HandleCreate adds a course.
//
// HTTP: POST /api/courses
func (h *CourseHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	var f form.Course
	if !decodeJSON(w, r, &f) {
		return
	}

	course, err := h.courses.Create(r.Context(), userID, &f)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, course)
}

// HandleGet returns the course detail view: the course, a preview of
// its notes and files, and all instructors and links.
//
// HTTP: GET /api/courses/{courseID}
func (h *CourseHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	detail, err := h.courses.Detail(r.Context(), userID, r.PathValue("courseID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// HandleUpdate replaces a course's editable fields.
//
// HTTP: PUT /api/courses/{courseID}
func (h *CourseHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	var f form.Course
	if !decodeJSON(w, r, &f) {
		return
	}

	course, err := h.courses.Update(r.Context(), userID, r.PathValue("courseID"), &f)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, course)
}

// HandleDelete removes a course and everything under it.
//
// HTTP: DELETE /api/courses/{courseID}
func (h *CourseHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	if err := h.courses.Delete(r.Context(), userID, r.PathValue("courseID")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
