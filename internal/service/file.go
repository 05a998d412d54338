package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"assistor/internal/apperror"
	"assistor/internal/blob"
	"assistor/internal/form"
	"assistor/internal/model"
	"assistor/internal/repository"
)

// MaxUploadSize caps a single file upload at 32 MiB. Course materials
// are slide decks and PDFs; anything bigger belongs in a link.
const MaxUploadSize = 32 << 20

// FileService handles uploaded course files. Metadata lives in the
// files table, bytes live in the blob store; this service is the only
// place that coordinates the two.
type FileService struct {
	courses repository.CourseRepository
	files   repository.FileRepository
	blobs   *blob.Store
	logger  *slog.Logger
}

func NewFileService(courses repository.CourseRepository, files repository.FileRepository, blobs *blob.Store, logger *slog.Logger) *FileService {
	return &FileService{courses: courses, files: files, blobs: blobs, logger: logger}
}

// Upload validates the metadata, streams the content into the blob
// store, and inserts the row. Order matters: the blob goes first so the
// row never references bytes that don't exist, and if the insert fails
// the fresh blob is removed again — blob writes and row inserts can't
// share a transaction, so the compensation is explicit.
func (s *FileService) Upload(ctx context.Context, userID, courseID string, f *form.File, content io.Reader, contentType string) (*model.CourseFile, error) {
	if _, err := resolveCourse(ctx, s.courses, courseID, userID); err != nil {
		return nil, err
	}

	if fields := form.Validate(f); fields != nil {
		return nil, apperror.Invalid(fields)
	}

	ref, size, err := s.blobs.Save(content)
	if err != nil {
		s.logger.Error("failed to store upload",
			slog.String("course_id", courseID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("uploading file: %w", err)
	}

	file := &model.CourseFile{
		CourseID:    courseID,
		Name:        f.Name,
		Category:    model.FileCategory(f.Category),
		BlobRef:     ref,
		ContentType: contentType,
		Size:        size,
	}

	if err := s.files.CreateFile(ctx, file); err != nil {
		if rmErr := s.blobs.Remove(ref); rmErr != nil {
			s.logger.Warn("failed to remove blob after insert failure",
				slog.String("ref", ref),
				slog.String("error", rmErr.Error()),
			)
		}
		s.logger.Error("failed to create file record",
			slog.String("course_id", courseID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("uploading file: %w", err)
	}

	s.logger.Info("file uploaded",
		slog.String("id", file.ID),
		slog.String("course_id", courseID),
		slog.Int64("size", size),
	)

	return file, nil
}

func (s *FileService) List(ctx context.Context, userID, courseID string) ([]model.CourseFile, error) {
	if _, err := resolveCourse(ctx, s.courses, courseID, userID); err != nil {
		return nil, err
	}

	files, err := s.files.ListFilesByCourse(ctx, courseID, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	return files, nil
}

func (s *FileService) Get(ctx context.Context, userID, courseID, fileID string) (*model.CourseFile, error) {
	if _, err := resolveCourse(ctx, s.courses, courseID, userID); err != nil {
		return nil, err
	}

	file, err := s.files.GetFileByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file.CourseID != courseID {
		return nil, apperror.NotFound("file", fileID)
	}
	return file, nil
}

// Download returns the file's metadata and an open reader over its
// contents. The caller must close the reader.
func (s *FileService) Download(ctx context.Context, userID, courseID, fileID string) (*model.CourseFile, io.ReadCloser, error) {
	file, err := s.Get(ctx, userID, courseID, fileID)
	if err != nil {
		return nil, nil, err
	}

	content, err := s.blobs.Open(file.BlobRef)
	if err != nil {
		s.logger.Error("blob missing for file record",
			slog.String("id", fileID),
			slog.String("ref", file.BlobRef),
			slog.String("error", err.Error()),
		)
		return nil, nil, fmt.Errorf("downloading file: %w", err)
	}

	return file, content, nil
}

// Update renames or recategorizes a file. The content is immutable —
// replacing the bytes means deleting and re-uploading.
func (s *FileService) Update(ctx context.Context, userID, courseID, fileID string, f *form.File) (*model.CourseFile, error) {
	file, err := s.Get(ctx, userID, courseID, fileID)
	if err != nil {
		return nil, err
	}

	if fields := form.Validate(f); fields != nil {
		return nil, apperror.Invalid(fields)
	}

	file.Name = f.Name
	file.Category = model.FileCategory(f.Category)

	if err := s.files.UpdateFile(ctx, file); err != nil {
		s.logger.Error("failed to update file",
			slog.String("id", fileID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating file: %w", err)
	}

	s.logger.Info("file updated", slog.String("id", fileID))

	return file, nil
}

// Delete removes the row and then the blob. The row goes first: if the
// blob removal fails the worst case is an orphan file on disk, which is
// harmless, whereas a row pointing at deleted bytes would 500 on every
// download.
func (s *FileService) Delete(ctx context.Context, userID, courseID, fileID string) error {
	file, err := s.Get(ctx, userID, courseID, fileID)
	if err != nil {
		return err
	}

	if err := s.files.DeleteFile(ctx, fileID); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}

	if err := s.blobs.Remove(file.BlobRef); err != nil {
		s.logger.Warn("failed to remove blob for deleted file",
			slog.String("id", fileID),
			slog.String("ref", file.BlobRef),
			slog.String("error", err.Error()),
		)
	}

	s.logger.Info("file deleted", slog.String("id", fileID))
	return nil
}
