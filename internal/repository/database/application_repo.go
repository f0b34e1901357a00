package database

import (
	"context"

	"Mala_Admin/internal/model"

	"gorm.io/gorm"
)

type ApplicationRepository struct {
	Records[model.MemberApplication]
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{Records[model.MemberApplication]{DB: db, Family: ApplicationFamily}}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *model.MemberApplication) error {
	return r.DB.WithContext(ctx).Create(app).Error
}

// Transition locks the application, applies fn and persists its status.
func (r *ApplicationRepository) Transition(ctx context.Context, id uint64, fn func(*model.MemberApplication) error) (*model.MemberApplication, error) {
	return mutate(ctx, r.DB, id, []string{"status"}, fn)
}

// Approve locks the application, lets check veto the change, inserts the
// member built from it and links both, all in one transaction.
func (r *ApplicationRepository) Approve(
	ctx context.Context,
	id uint64,
	check func(*model.MemberApplication) error,
	build func(*model.MemberApplication) *model.Member,
	gen func() (string, error),
) (*model.MemberApplication, *model.Member, error) {
	var (
		app    model.MemberApplication
		member *model.Member
	)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockByID(tx, id, &app); err != nil {
			return err
		}
		if err := check(&app); err != nil {
			return err
		}
		member = build(&app)
		mid, err := uniqueValue[model.Member](tx, "membership_id", gen)
		if err != nil {
			return err
		}
		member.MembershipID = mid
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		app.Status = model.MemberApproved
		app.MemberID = &member.ID
		return tx.Model(&app).Select("status", "member_id").Updates(&app).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &app, member, nil
}
