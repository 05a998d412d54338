package model

import "time"

// FileCategory classifies an uploaded course file.
// Stored as its string value; validated against the fixed set below.
type FileCategory string

const (
	CategoryAssignment FileCategory = "Assignment"
	CategoryDocument   FileCategory = "Document"
	CategoryJournal    FileCategory = "Journal"
	CategoryQuiz       FileCategory = "Quiz"
	CategorySlides     FileCategory = "Slides"
	CategoryOther      FileCategory = "Other"
)

// FileCategories lists every valid category, in display order.
var FileCategories = []FileCategory{
	CategoryAssignment,
	CategoryDocument,
	CategoryJournal,
	CategoryQuiz,
	CategorySlides,
	CategoryOther,
}

// CourseFile is the metadata row for an uploaded file.
//
// The raw bytes are NOT stored in this struct or in the database — they
// live in the blob store on disk, and BlobRef is the opaque key that
// finds them. Deleting a CourseFile must also delete its blob.
//
// WHY "CourseFile" AND NOT "File"?
// `File` collides with os.File in readers' heads (and in imports of this
// package next to the blob store). The prefix costs little and removes
// the ambiguity.
type CourseFile struct {
	ID          string       `json:"id"`
	CourseID    string       `json:"courseId"`
	Name        string       `json:"name"`
	Category    FileCategory `json:"category"`
	BlobRef     string       `json:"-"` // opaque blob store key, never exposed
	ContentType string       `json:"contentType"`
	Size        int64        `json:"size"`
	CreatedAt   time.Time    `json:"createdAt"`
}
