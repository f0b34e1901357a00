package database

import (
	"context"
	"time"

	"Mala_Admin/internal/model"

	"gorm.io/gorm"
)

type MemberRepository struct {
	Records[model.Member]
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{Records[model.Member]{DB: db, Family: MemberFamily}}
}

// Create inserts m with a membership id from gen that no member holds yet.
func (r *MemberRepository) Create(ctx context.Context, m *model.Member, gen func() (string, error)) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := uniqueValue[model.Member](tx, "membership_id", gen)
		if err != nil {
			return err
		}
		m.MembershipID = id
		return tx.Create(m).Error
	})
}

// Transition locks the member, applies fn and persists its status.
func (r *MemberRepository) Transition(ctx context.Context, id uint64, fn func(*model.Member) error) (*model.Member, error) {
	return mutate(ctx, r.DB, id, []string{"status"}, fn)
}

// FilterOptions distinct non-empty location values, sorted.
type FilterOptions struct {
	States    []string `json:"states"`
	Districts []string `json:"districts"`
	Mandals   []string `json:"mandals"`
}

func (r *MemberRepository) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	opts := &FilterOptions{States: []string{}, Districts: []string{}, Mandals: []string{}}
	for col, dest := range map[string]*[]string{
		"state":    &opts.States,
		"district": &opts.Districts,
		"mandal":   &opts.Mandals,
	} {
		err := r.DB.WithContext(ctx).Model(&model.Member{}).
			Distinct(col).
			Where(col+" <> ''").
			Order(col).
			Pluck(col, dest).Error
		if err != nil {
			return nil, err
		}
	}
	return opts, nil
}

// CreatedSince creation times of members created at or after since.
func (r *MemberRepository) CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.DB.WithContext(ctx).Model(&model.Member{}).
		Where("created_at >= ?", since).
		Pluck("created_at", &times).Error
	return times, err
}
