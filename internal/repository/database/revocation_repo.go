package database

import (
	"context"
	"time"

	"Mala_Admin/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevocationRepository keeps revoked session tokens in revoked_tokens.
type RevocationRepository struct {
	DB  *gorm.DB
	Now func() time.Time
}

func (r *RevocationRepository) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Revoke records token; revoking twice is a no-op. Rows of tokens that have
// expired on their own are pruned in the same transaction.
func (r *RevocationRepository) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expires_at < ?", r.now()).Delete(&model.RevokedToken{}).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoNothing: true,
		}).Create(&model.RevokedToken{Token: token, ExpiresAt: expiresAt}).Error
	})
}

func (r *RevocationRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.RevokedToken{}).Where("token = ?", token).Count(&count).Error
	return count > 0, err
}
