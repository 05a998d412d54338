// Package form declares the request forms and validates them.
//
// ONE RULE TABLE PER RESOURCE KIND:
// Each resource has a form struct whose `validate` tags ARE its rule
// table — required-ness, length bounds, enum membership, email/URL/date
// format. A single generic Validate() runs any form through
// go-playground/validator and converts the result into a field-error
// map (field name → messages) that handlers return verbatim as the 400
// response body. No form is ever partially applied: services call
// Validate() before touching the repository.
//
// WHY validator TAGS INSTEAD OF HAND-WRITTEN CHECKS?
// The rules are declarative and sit next to the fields they constrain.
// Adding a bound is a tag edit, not a new if-block, and the library
// covers the fiddly formats (email, url, datetime) that are easy to get
// subtly wrong by hand.
package form

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Date and time layouts accepted by the API. Dates are plain calendar
// days (course start/completion); times are full RFC 3339 timestamps
// (reminder due times).
const (
	DateLayout = "2006-01-02"
	TimeLayout = time.RFC3339
)

// validate is the shared validator instance. validator.New is expensive
// (it builds its tag cache lazily), so one instance serves the whole
// process — it is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Report field names by their json tag, not the Go field name, so
	// the field-error map speaks the same language as the request body:
	// "firstName", not "FirstName".
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Form is implemented by every form in this package. clean() normalizes
// the input (trims whitespace, lowercases usernames/emails) before the
// rules run, the way a browser form layer would.
type Form interface {
	clean()
}

// Validate cleans a form and runs its rule table. The returned map is
// nil when the form is valid; otherwise it maps field names to one or
// more human-readable messages.
func Validate(f Form) map[string][]string {
	f.clean()

	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// validator only returns a non-ValidationErrors error for
		// invalid usage (nil pointer, non-struct) — a programming bug.
		panic(fmt.Sprintf("form: invalid validation call: %v", err))
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		// The password/confirmation equality check is a cross-field
		// rule; its failure is reported on the password field.
		if fe.Tag() == "eqfield" && name == "passwordConfirm" {
			name = "password"
		}
		fields[name] = append(fields[name], message(fe))
	}
	return fields
}

// message renders one rule failure as a human-readable string.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	case "datetime":
		return fmt.Sprintf("must be a valid date/time in %s format", fe.Param())
	case "eqfield":
		return "passwords must match"
	case "alphanum":
		return "must contain only letters and digits"
	default:
		return "is not valid"
	}
}

// ParseDate converts a validated date string into a *time.Time.
// Empty input returns nil (the field was optional and unset). Call only
// after Validate() — the datetime rule has already guaranteed the layout.
func ParseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// ParseTime converts a validated RFC 3339 string into a time.Time.
func ParseTime(s string) time.Time {
	t, _ := time.Parse(TimeLayout, s)
	return t
}

// Registration creates a new account. The password confirmation is a
// cross-field rule (eqfield) — its failure rejects the whole submission
// and is attached to the password field, see Validate().
type Registration struct {
	FirstName       string `json:"firstName" validate:"required,max=64"`
	LastName        string `json:"lastName" validate:"omitempty,max=64"`
	Username        string `json:"username" validate:"required,min=3,max=150,alphanum"`
	Email           string `json:"email" validate:"required,email,max=254"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

func (f *Registration) clean() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Username = strings.ToLower(strings.TrimSpace(f.Username))
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	// Passwords are deliberately NOT trimmed — whitespace is significant.
}

// Login authenticates an existing account.
type Login struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,max=128"`
}

func (f *Login) clean() {
	f.Username = strings.ToLower(strings.TrimSpace(f.Username))
}

// Course creates or edits a course. Dates arrive as "2006-01-02"
// strings and are converted with ParseDate after validation.
type Course struct {
	Title          string `json:"title" validate:"required,max=64"`
	StartDate      string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	CompletionDate string `json:"completionDate" validate:"omitempty,datetime=2006-01-02"`
	Grade          string `json:"grade" validate:"omitempty,max=8"`
	Provider       string `json:"provider" validate:"omitempty,max=64"`
}

func (f *Course) clean() {
	f.Title = strings.TrimSpace(f.Title)
	f.StartDate = strings.TrimSpace(f.StartDate)
	f.CompletionDate = strings.TrimSpace(f.CompletionDate)
	f.Grade = strings.TrimSpace(f.Grade)
	f.Provider = strings.TrimSpace(f.Provider)
}

// Note creates or edits a note.
type Note struct {
	Title   string `json:"title" validate:"required,max=64"`
	Content string `json:"content" validate:"required,max=8192"`
}

func (f *Note) clean() {
	f.Title = strings.TrimSpace(f.Title)
	f.Content = strings.TrimSpace(f.Content)
}

// File carries the metadata fields of a multipart upload. The file part
// itself is handled by the blob store; only name and category are
// validated here.
type File struct {
	Name     string `json:"name" validate:"required,max=64"`
	Category string `json:"category" validate:"required,oneof=Assignment Document Journal Quiz Slides Other"`
}

func (f *File) clean() {
	f.Name = strings.TrimSpace(f.Name)
	f.Category = strings.TrimSpace(f.Category)
}

// Link attaches a named URL to a course.
type Link struct {
	Name string `json:"name" validate:"required,max=64"`
	URL  string `json:"url" validate:"required,url,max=2048"`
}

func (f *Link) clean() {
	f.Name = strings.TrimSpace(f.Name)
	f.URL = strings.TrimSpace(f.URL)
}

// Instructor records who teaches a course. Email is optional but must
// be globally unique when present (enforced by the repository).
type Instructor struct {
	Title     string `json:"title" validate:"required,oneof=Dr. Hon. Jr. Mr. Mrs. Ms. Prof. Sr."`
	FirstName string `json:"firstName" validate:"required,max=64"`
	LastName  string `json:"lastName" validate:"omitempty,max=64"`
	Email     string `json:"email" validate:"omitempty,email,max=254"`
}

func (f *Instructor) clean() {
	f.Title = strings.TrimSpace(f.Title)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
}

// Reminder creates or edits a personal reminder. Time arrives as an
// RFC 3339 string and is converted with ParseTime after validation.
type Reminder struct {
	Name string `json:"name" validate:"required,max=256"`
	Time string `json:"time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

func (f *Reminder) clean() {
	f.Name = strings.TrimSpace(f.Name)
	f.Time = strings.TrimSpace(f.Time)
}
