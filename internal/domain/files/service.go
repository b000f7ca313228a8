package files

import (
	"context"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"studyshare/internal/domain/auth"
	"studyshare/internal/storage"
)

// Service owns the FileAsset lifecycle. A file is a blob plus a row;
// the two writes are not transactional, so each failure path removes
// the half that did land (see Upload and Delete).
type Service struct {
	repo    Repository
	blobs   storage.Store
	maxSize int64
	logger  *zap.Logger
}

type UploadInput struct {
	Title       string
	Description string
	Category    string
}

func NewService(repo Repository, blobs storage.Store, maxSize int64, logger *zap.Logger) *Service {
	return &Service{repo: repo, blobs: blobs, maxSize: maxSize, logger: logger}
}

// List returns all files, newest first, with owner usernames. The
// result is never nil so an empty library serializes as a JSON array.
func (s *Service) List(ctx context.Context) ([]*FileAssetWithOwner, error) {
	out, err := s.repo.ListWithOwners(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*FileAssetWithOwner{}
	}
	return out, nil
}

// Upload stores the blob, validates the metadata and inserts the row.
// The blob lands first, mirroring how the transport hands us a stream;
// if validation or the insert fails afterwards, the blob is removed so
// nothing is orphaned on the failure paths we control.
func (s *Service) Upload(ctx context.Context, actor auth.Identity, filename string, size int64, r io.Reader, in UploadInput) (*FileAsset, error) {
	if size == 0 {
		return nil, ErrEmptyFile
	}
	if size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	path, err := s.blobs.Save(filename, r)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	category := strings.TrimSpace(in.Category)
	if title == "" || category == "" {
		s.discardBlob(path)
		return nil, ErrTitleCategoryMissing
	}

	asset := &FileAsset{
		UserID:      actor.ID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Category:    category,
		FileName:    filename,
		FilePath:    path,
		FileType:    Classify(filename),
		FileSize:    size,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, asset); err != nil {
		s.discardBlob(path)
		return nil, err
	}

	return asset, nil
}

// Download returns the asset row and a reader over its blob.
func (s *Service) Download(ctx context.Context, id int64) (*FileAsset, io.ReadCloser, error) {
	asset, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	blob, err := s.blobs.Open(asset.FilePath)
	if err != nil {
		return nil, nil, err
	}
	return asset, blob, nil
}

// Delete removes the row if the actor may mutate the asset, then
// best-effort removes the blob. A blob that survives its row is only
// logged; the delete still succeeds.
func (s *Service) Delete(ctx context.Context, actor auth.Identity, id int64) error {
	asset, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.CanMutate(asset.UserID) {
		return ErrNotFileOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.blobs.Remove(asset.FilePath); err != nil {
		s.logger.Warn("orphaned blob after row delete",
			zap.Int64("file_id", id),
			zap.String("path", asset.FilePath),
			zap.Error(err),
		)
	}

	return nil
}

func (s *Service) discardBlob(path string) {
	if err := s.blobs.Remove(path); err != nil {
		s.logger.Warn("failed to discard blob", zap.String("path", path), zap.Error(err))
	}
}
