package handler

import (
	"log/slog"
	"net/http"

	"assistor/internal/auth"
	"assistor/internal/form"
	"assistor/internal/service"
)

// LinkHandler exposes the links nested under a course. Create, read,
// delete — no update route.
type LinkHandler struct {
	links  *service.LinkService
	logger *slog.Logger
}

func NewLinkHandler(links *service.LinkService, logger *slog.Logger) *LinkHandler {
	return &LinkHandler{links: links, logger: logger}
}

// HTTP: GET /api/courses/{courseID}/links
func (h *LinkHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	links, err := h.links.List(r.Context(), userID, r.PathValue("courseID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, links)
}

// HTTP: POST /api/courses/{courseID}/links
func (h *LinkHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	var f form.Link
	if !decodeJSON(w, r, &f) {
		return
	}

	link, err := h.links.Create(r.Context(), userID, r.PathValue("courseID"), &f)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, link)
}

// HTTP: GET /api/courses/{courseID}/links/{linkID}
func (h *LinkHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	link, err := h.links.Get(r.Context(), userID, r.PathValue("courseID"), r.PathValue("linkID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, link)
}

// HTTP: DELETE /api/courses/{courseID}/links/{linkID}
func (h *LinkHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	if err := h.links.Delete(r.Context(), userID, r.PathValue("courseID"), r.PathValue("linkID")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
