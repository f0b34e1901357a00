package database

import (
	"context"

	"Mala_Admin/internal/model"

	"gorm.io/gorm"
)

type AdminRepository struct {
	DB *gorm.DB
}

func (r *AdminRepository) Create(ctx context.Context, admin *model.Admin) error {
	return r.DB.WithContext(ctx).Create(admin).Error
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id uint64) (*model.Admin, error) {
	return findByID[model.Admin](ctx, r.DB, id)
}

func (r *AdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Admin{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
