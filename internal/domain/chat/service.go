package chat

import (
	"context"
	"strings"
	"time"

	"studyshare/internal/domain/auth"
)

// Service handles the shared-room message lifecycle.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every message in chronological order with the author
// projection joined in. An empty room yields an empty slice, never nil,
// so the response body stays a JSON array.
func (s *Service) List(ctx context.Context) ([]*MessageWithAuthor, error) {
	msgs, err := s.repo.ListWithAuthors(ctx)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []*MessageWithAuthor{}
	}
	return msgs, nil
}

// Send stores a new message for the acting user. Bodies that are empty
// after trimming are rejected.
func (s *Service) Send(ctx context.Context, actor auth.Identity, body string) (*Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}

	msg := &Message{
		UserID:    actor.ID,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Delete removes a message if the actor owns it or is an admin.
func (s *Service) Delete(ctx context.Context, actor auth.Identity, id int64) error {
	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.CanMutate(msg.UserID) {
		return ErrNotMessageOwner
	}

	return s.repo.Delete(ctx, id)
}
