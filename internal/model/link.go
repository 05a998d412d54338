package model

import "time"

// Link is a named URL attached to a course (lecture recordings, course
// homepages, reading lists). Links are create-and-delete only — there is
// no edit operation on the API surface.
type Link struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"courseId"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}
