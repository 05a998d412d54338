// Package service contains the business logic layer.
//
// Handlers parse HTTP and write responses; services validate forms,
// enforce ownership, and orchestrate repositories; repositories talk to
// the database. Services accept repository interfaces, never concrete
// types, so tests inject hand-written mocks.
//
// OWNERSHIP MODEL:
// Courses belong to users; notes, files, links and instructors belong
// to courses, and their owner is whoever owns the course. Every
// operation on an owned resource therefore starts by resolving the
// course and comparing its UserID against the caller — one function,
// resolveCourse, used by every service in this package rather than a
// per-resource copy of the check.
package service

import (
	"context"

	"assistor/internal/apperror"
	"assistor/internal/model"
	"assistor/internal/repository"
)

// resolveCourse loads a course and verifies the caller owns it.
//
// A course that exists but belongs to someone else comes back as the
// same NotFound the caller would get for a random ID. Returning 403
// instead would confirm the resource exists, which is exactly the
// information an ID-guessing probe is after.
func resolveCourse(ctx context.Context, courses repository.CourseRepository, courseID, userID string) (*model.Course, error) {
	course, err := courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.UserID != userID {
		return nil, apperror.NotFound("course", courseID)
	}
	return course, nil
}
