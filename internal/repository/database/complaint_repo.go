package database

import (
	"context"
	"time"

	"Mala_Admin/internal/model"

	"gorm.io/gorm"
)

type ComplaintRepository struct {
	Records[model.Complaint]
}

func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{Records[model.Complaint]{DB: db, Family: ComplaintFamily}}
}

// Create inserts c with a reference id from gen that no complaint holds yet.
func (r *ComplaintRepository) Create(ctx context.Context, c *model.Complaint, gen func() (string, error)) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ref, err := uniqueValue[model.Complaint](tx, "reference_id", gen)
		if err != nil {
			return err
		}
		c.ReferenceID = ref
		return tx.Create(c).Error
	})
}

func (r *ComplaintRepository) Transition(ctx context.Context, id uint64, fn func(*model.Complaint) error) (*model.Complaint, error) {
	return mutate(ctx, r.DB, id, []string{"status", "admin_notes", "updated_at"}, fn)
}

func (r *ComplaintRepository) CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.DB.WithContext(ctx).Model(&model.Complaint{}).
		Where("created_at >= ?", since).
		Pluck("created_at", &times).Error
	return times, err
}
