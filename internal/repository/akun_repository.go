package repository

import (
	"context"

	"si-prima/internal/model"

	"gorm.io/gorm"
)

type AkunRepository interface {
	Create(ctx context.Context, akun *model.Akun) error
	FindByEmail(ctx context.Context, email string) (*model.Akun, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type akunRepository struct {
	db *gorm.DB
}

func NewAkunRepository(db *gorm.DB) AkunRepository {
	return &akunRepository{db}
}

func (r *akunRepository) Create(ctx context.Context, akun *model.Akun) error {
	return r.db.WithContext(ctx).Create(akun).Error
}

func (r *akunRepository) FindByEmail(ctx context.Context, email string) (*model.Akun, error) {
	var akun model.Akun
	err := r.db.WithContext(ctx).Where("LOWER(email) = ?", emailKey(email)).First(&akun).Error
	return &akun, err
}

func (r *akunRepository) DeleteByEmail(ctx context.Context, email string) error {
	res := r.db.WithContext(ctx).Where("LOWER(email) = ?", emailKey(email)).Delete(&model.Akun{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
