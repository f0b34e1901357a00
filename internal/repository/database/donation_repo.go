package database

import (
	"context"
	"time"

	"Mala_Admin/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DonationRepository struct {
	Records[model.Donation]
}

func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{Records[model.Donation]{DB: db, Family: DonationFamily}}
}

func (r *DonationRepository) Create(ctx context.Context, d *model.Donation) error {
	return r.DB.WithContext(ctx).Create(d).Error
}

func (r *DonationRepository) Transition(ctx context.Context, id uint64, fn func(*model.Donation) error) (*model.Donation, error) {
	return mutate(ctx, r.DB, id, []string{"status", "updated_at"}, fn)
}

// SumAmount total amount of donations in any of statuses.
func (r *DonationRepository) SumAmount(ctx context.Context, statuses ...model.DonationStatus) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.DB.WithContext(ctx).Model(&model.Donation{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status IN ?", statuses).
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total.Decimal.Round(2), nil
}

// DonationPoint the fields monthly trends need.
type DonationPoint struct {
	Amount    decimal.Decimal
	Status    model.DonationStatus
	CreatedAt time.Time
}

func (r *DonationRepository) CreatedSince(ctx context.Context, since time.Time) ([]DonationPoint, error) {
	var rows []DonationPoint
	err := r.DB.WithContext(ctx).Model(&model.Donation{}).
		Select("amount", "status", "created_at").
		Where("created_at >= ?", since).
		Scan(&rows).Error
	return rows, err
}
