package service

import (
	"context"
	"fmt"
	"log/slog"

	"assistor/internal/apperror"
	"assistor/internal/form"
	"assistor/internal/model"
	"assistor/internal/repository"
)

// LinkService handles the URLs attached to a course. Links are
// create-and-delete only; there is no update path.
type LinkService struct {
	courses repository.CourseRepository
	links   repository.LinkRepository
	logger  *slog.Logger
}

func NewLinkService(courses repository.CourseRepository, links repository.LinkRepository, logger *slog.Logger) *LinkService {
	return &LinkService{courses: courses, links: links, logger: logger}
}

func (s *LinkService) Create(ctx context.Context, userID, courseID string, f *form.Link) (*model.Link, error) {
	if _, err := resolveCourse(ctx, s.courses, courseID, userID); err != nil {
		return nil, err
	}

	if fields := form.Validate(f); fields != nil {
		return nil, apperror.Invalid(fields)
	}

	link := &model.Link{
		CourseID: courseID,
		Name:     f.Name,
		URL:      f.URL,
	}

	if err := s.links.CreateLink(ctx, link); err != nil {
		s.logger.Error("failed to create link",
			slog.String("course_id", courseID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating link: %w", err)
	}

	s.logger.Info("link created",
		slog.String("id", link.ID),
		slog.String("course_id", courseID),
	)

	return link, nil
}

func (s *LinkService) List(ctx context.Context, userID, courseID string) ([]model.Link, error) {
	if _, err := resolveCourse(ctx, s.courses, courseID, userID); err != nil {
		return nil, err
	}

	links, err := s.links.ListLinksByCourse(ctx, courseID, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}
	return links, nil
}

func (s *LinkService) Get(ctx context.Context, userID, courseID, linkID string) (*model.Link, error) {
	if _, err := resolveCourse(ctx, s.courses, courseID, userID); err != nil {
		return nil, err
	}

	link, err := s.links.GetLinkByID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if link.CourseID != courseID {
		return nil, apperror.NotFound("link", linkID)
	}
	return link, nil
}

func (s *LinkService) Delete(ctx context.Context, userID, courseID, linkID string) error {
	if _, err := s.Get(ctx, userID, courseID, linkID); err != nil {
		return err
	}

	if err := s.links.DeleteLink(ctx, linkID); err != nil {
		return fmt.Errorf("deleting link: %w", err)
	}

	s.logger.Info("link deleted", slog.String("id", linkID))
	return nil
}
