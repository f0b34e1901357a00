package database

import (
	"context"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/pkg"

	"gorm.io/gorm"
)

type GalleryRepository struct {
	Records[model.GalleryItem]
}

func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{Records[model.GalleryItem]{DB: db, Family: GalleryFamily}}
}

func (r *GalleryRepository) Create(ctx context.Context, item *model.GalleryItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

// Save writes the editable columns of item.
func (r *GalleryRepository) Save(ctx context.Context, item *model.GalleryItem) error {
	res := r.DB.WithContext(ctx).Model(item).
		Select("title", "description", "media_url", "media_type", "updated_at").
		Updates(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id uint64) error {
	res := r.DB.WithContext(ctx).Delete(&model.GalleryItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}
