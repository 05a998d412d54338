package handler

import (
	"log/slog"
	"net/http"

	"assistor/internal/auth"
	"assistor/internal/form"
	"assistor/internal/service"
)

// ReminderHandler exposes the user's personal reminders.
type ReminderHandler struct {
	reminders *service.ReminderService
	logger    *slog.Logger
}

func NewReminderHandler(reminders *service.ReminderService, logger *slog.Logger) *ReminderHandler {
	return &ReminderHandler{reminders: reminders, logger: logger}
}

// HTTP: GET /api/reminders
func (h *ReminderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	reminders, err := h.reminders.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reminders)
}

// HTTP: POST /api/reminders
func (h *ReminderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	var f form.Reminder
	if !decodeJSON(w, r, &f) {
		return
	}

	reminder, err := h.reminders.Create(r.Context(), userID, &f)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, reminder)
}

// HTTP: GET /api/reminders/{reminderID}
func (h *ReminderHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	reminder, err := h.reminders.Get(r.Context(), userID, r.PathValue("reminderID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reminder)
}

// HTTP: PUT /api/reminders/{reminderID}
func (h *ReminderHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	var f form.Reminder
	if !decodeJSON(w, r, &f) {
		return
	}

	reminder, err := h.reminders.Update(r.Context(), userID, r.PathValue("reminderID"), &f)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reminder)
}

// HTTP: DELETE /api/reminders/{reminderID}
func (h *ReminderHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	if err := h.reminders.Delete(r.Context(), userID, r.PathValue("reminderID")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
