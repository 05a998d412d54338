package model

import "time"

// InstructorTitle is the honorific prefix for an instructor record.
type InstructorTitle string

const (
	TitleDr   InstructorTitle = "Dr."
	TitleHon  InstructorTitle = "Hon."
	TitleJr   InstructorTitle = "Jr."
	TitleMr   InstructorTitle = "Mr."
	TitleMrs  InstructorTitle = "Mrs."
	TitleMs   InstructorTitle = "Ms."
	TitleProf InstructorTitle = "Prof."
	TitleSr   InstructorTitle = "Sr."
)

// InstructorTitles lists every valid title, in display order.
var InstructorTitles = []InstructorTitle{
	TitleDr, TitleHon, TitleJr, TitleMr, TitleMrs, TitleMs, TitleProf, TitleSr,
}

// Instructor is a person who teaches a course. LastName and Email are
// optional; Email, when present, is globally unique across all courses
// of all users (the same person can't be recorded twice with the same
// address).
type Instructor struct {
	ID        string          `json:"id"`
	CourseID  string          `json:"courseId"`
	Title     InstructorTitle `json:"title"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
	CreatedAt time.Time       `json:"createdAt"`
}
