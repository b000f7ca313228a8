package files

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, f *FileAsset) error
	GetByID(ctx context.Context, id int64) (*FileAsset, error)
	Delete(ctx context.Context, id int64) error
	ListWithOwners(ctx context.Context) ([]*FileAssetWithOwner, error)
	ListByUser(ctx context.Context, userID int64) ([]*FileAsset, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *FileAsset) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*FileAsset, error) {
	var f FileAsset
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFileNotFound
	}
	return &f, err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&FileAsset{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFileNotFound
	}
	return nil
}

func (r *repository) ListWithOwners(ctx context.Context) ([]*FileAssetWithOwner, error) {
	out := make([]*FileAssetWithOwner, 0)
	err := r.db.WithContext(ctx).
		Model(&FileAsset{}).
		Select("files.*, users.username").
		Joins("JOIN users ON users.id = files.user_id").
		Order("files.created_at DESC").
		Scan(&out).Error
	return out, err
}

func (r *repository) ListByUser(ctx context.Context, userID int64) ([]*FileAsset, error) {
	out := make([]*FileAsset, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *repository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&FileAsset{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
