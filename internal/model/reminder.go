package model

import "time"

// Reminder is a personal, dated to-do owned directly by a user — it is
// the one resource that does not belong to a course.
//
// Time is when the reminder is due; CreatedAt is when the row was
// created. CreatedAt is stamped server-side and never changes, even
// when the reminder is edited.
type Reminder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Time      time.Time `json:"time"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
