package chat

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id int64) (*Message, error)
	Delete(ctx context.Context, id int64) error
	ListWithAuthors(ctx context.Context) ([]*MessageWithAuthor, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Message, error) {
	var m Message
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMessageNotFound
	}
	return &m, err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Message{})
	if res.Error != nil {
		return res.Error
	}
	// concurrent delete of the same id must surface as not-found
	if res.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *repository) ListWithAuthors(ctx context.Context) ([]*MessageWithAuthor, error) {
	out := make([]*MessageWithAuthor, 0)
	err := r.db.WithContext(ctx).
		Model(&Message{}).
		Select("messages.*, users.username, users.is_admin").
		Joins("JOIN users ON users.id = messages.user_id").
		Order("messages.created_at ASC").
		Scan(&out).Error
	return out, err
}

func (r *repository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Message{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
