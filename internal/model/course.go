package model

import "time"

// Course is the root resource of a user's academic records. Everything
// else (notes, files, links, instructors) hangs off a course, and the
// course's UserID is the single source of truth for ownership — child
// resources are owned by whoever owns their course.
//
// WHY *time.Time FOR THE DATES?
// StartDate and CompletionDate are optional. A nil pointer means "not
// set", which serializes to JSON null and stores as SQL NULL. Using a
// zero time.Time instead would store a bogus year-1 date and make
// "unset" indistinguishable from a genuinely ancient value.
type Course struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	Title          string     `json:"title"`
	StartDate      *time.Time `json:"startDate"`
	CompletionDate *time.Time `json:"completionDate"`
	Grade          string     `json:"grade"`
	Provider       string     `json:"provider"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
