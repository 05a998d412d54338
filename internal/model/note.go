package model

import "time"

// Note is a piece of study text attached to a course.
// Ownership is transitive: Note → Course → User.
type Note struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"courseId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
