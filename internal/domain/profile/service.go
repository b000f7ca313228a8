package profile

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"studyshare/internal/domain/auth"
	"studyshare/internal/domain/files"
	"studyshare/internal/storage"
)

// allowed profile image extensions and declared content types; both
// checks must pass.
var (
	imageExtensions = map[string]bool{
		".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
	}
	imageContentTypes = map[string]bool{
		"image/jpeg": true, "image/jpg": true, "image/png": true,
		"image/gif": true, "image/webp": true,
	}
)

// Overview is the profile aggregate returned by GET /users/profile.
type Overview struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Username     string             `json:"username"`
	IsAdmin      bool               `json:"is_admin"`
	ProfileImage string             `json:"profile_image,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UploadCount  int64              `json:"upload_count"`
	MessageCount int64              `json:"message_count"`
	Files        []*files.FileAsset `json:"user_files"`
	Badges       []Badge            `json:"badges"`
}

// MessageCounter is the slice of the chat repository the profile needs.
type MessageCounter interface {
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

// FileLister is the slice of the files repository the profile needs.
type FileLister interface {
	ListByUser(ctx context.Context, userID int64) ([]*files.FileAsset, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

type Service struct {
	users    auth.Repository
	files    FileLister
	messages MessageCounter
	images   storage.Store
	logger   *zap.Logger
}

func NewService(users auth.Repository, fl FileLister, mc MessageCounter, images storage.Store, logger *zap.Logger) *Service {
	return &Service{users: users, files: fl, messages: mc, images: images, logger: logger}
}

// Get aggregates the profile view: account projection, upload and
// message counts, owned files and the derived badge set.
func (s *Service) Get(ctx context.Context, actor auth.Identity) (*Overview, error) {
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	uploadCount, err := s.files.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	messageCount, err := s.messages.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	owned, err := s.files.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if owned == nil {
		owned = []*files.FileAsset{}
	}

	return &Overview{
		ID:           user.ID,
		Name:         user.Name,
		Username:     user.Username,
		IsAdmin:      user.IsAdmin,
		ProfileImage: user.ProfileImage,
		CreatedAt:    user.CreatedAt,
		UploadCount:  uploadCount,
		MessageCount: messageCount,
		Files:        owned,
		Badges:       BadgesFor(uploadCount, user.IsAdmin),
	}, nil
}

// SetImage validates and stores a new profile image and records its
// storage path on the user row. Returns the stored filename.
func (s *Service) SetImage(ctx context.Context, actor auth.Identity, filename, contentType string, size, maxSize int64, r io.Reader) (string, error) {
	if size == 0 {
		return "", ErrNoImage
	}
	if size > maxSize {
		return "", ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	declared := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if !imageExtensions[ext] || !imageContentTypes[declared] {
		return "", ErrNotAnImage
	}

	path, err := s.images.Save(filename, r)
	if err != nil {
		return "", err
	}

	if err := s.users.UpdateProfileImage(ctx, actor.ID, path); err != nil {
		if rmErr := s.images.Remove(path); rmErr != nil {
			s.logger.Warn("failed to discard profile image", zap.String("path", path), zap.Error(rmErr))
		}
		return "", err
	}

	return path, nil
}
