package service

import (
	"context"
	"sort"
	"time"

	"Mala_Admin/internal/model"

	"github.com/shopspring/decimal"
)

const (
	DefaultTrendMonths = 6
	MaxTrendMonths     = 12
	recentWindow       = 7 * 24 * time.Hour
)

type DashboardService struct {
	members      *MemberService
	applications *ApplicationService
	donations    *DonationService
	complaints   *ComplaintService
	gallery      *GalleryService
	now          func() time.Time
}

type RecentActivity struct {
	NewMembers    int `json:"new_members"`
	NewDonations  int `json:"new_donations"`
	NewComplaints int `json:"new_complaints"`
}

type DashboardSummary struct {
	Members      *MemberSummary      `json:"members"`
	Applications *ApplicationSummary `json:"member_applications"`
	Donations    *DonationSummary    `json:"donations"`
	Complaints   *ComplaintSummary   `json:"complaints"`
	Gallery      *GallerySummary     `json:"gallery"`
	Recent       RecentActivity      `json:"recent_activity"`
}

func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	var (
		out DashboardSummary
		err error
	)
	if out.Members, err = s.members.Summary(ctx); err != nil {
		return nil, err
	}
	if out.Applications, err = s.applications.Summary(ctx); err != nil {
		return nil, err
	}
	if out.Donations, err = s.donations.Summary(ctx); err != nil {
		return nil, err
	}
	if out.Complaints, err = s.complaints.Summary(ctx); err != nil {
		return nil, err
	}
	if out.Gallery, err = s.gallery.Summary(ctx); err != nil {
		return nil, err
	}

	since := s.now().Add(-recentWindow)
	members, err := s.members.repo.CreatedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	donations, err := s.donations.repo.CreatedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	complaints, err := s.complaints.repo.CreatedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	out.Recent = RecentActivity{
		NewMembers:    len(members),
		NewDonations:  len(donations),
		NewComplaints: len(complaints),
	}
	return &out, nil
}

type MonthlyTrend struct {
	Month        string          `json:"month"`
	NewMembers   int             `json:"new_members"`
	Donations    int             `json:"donations"`
	RaisedAmount decimal.Decimal `json:"raised_amount"`
	Complaints   int             `json:"complaints"`
}

// MonthlyTrends one bucket per UTC calendar month, oldest first, ending with
// the current month. Raised amounts count verified and acknowledged donations.
func (s *DashboardService) MonthlyTrends(ctx context.Context, months int) ([]MonthlyTrend, error) {
	if months < 1 || months > MaxTrendMonths {
		months = DefaultTrendMonths
	}
	now := s.now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	trends := make([]MonthlyTrend, months)
	index := make(map[string]int, months)
	for i := range trends {
		key := start.AddDate(0, i, 0).Format("2006-01")
		trends[i] = MonthlyTrend{Month: key, RaisedAmount: decimal.Zero}
		index[key] = i
	}
	bucket := func(t time.Time) (int, bool) {
		i, ok := index[t.UTC().Format("2006-01")]
		return i, ok
	}

	members, err := s.members.repo.CreatedSince(ctx, start)
	if err != nil {
		return nil, err
	}
	for _, t := range members {
		if i, ok := bucket(t); ok {
			trends[i].NewMembers++
		}
	}

	donations, err := s.donations.repo.CreatedSince(ctx, start)
	if err != nil {
		return nil, err
	}
	for _, d := range donations {
		i, ok := bucket(d.CreatedAt)
		if !ok {
			continue
		}
		trends[i].Donations++
		if d.Status == model.DonationVerified || d.Status == model.DonationAcknowledged {
			trends[i].RaisedAmount = trends[i].RaisedAmount.Add(d.Amount)
		}
	}

	complaints, err := s.complaints.repo.CreatedSince(ctx, start)
	if err != nil {
		return nil, err
	}
	for _, t := range complaints {
		if i, ok := bucket(t); ok {
			trends[i].Complaints++
		}
	}
	return trends, nil
}

type DistrictCount struct {
	District string `json:"district"`
	Members  int64  `json:"members"`
}

// DistrictDistribution member counts per district, largest first.
func (s *DashboardService) DistrictDistribution(ctx context.Context) ([]DistrictCount, error) {
	counts, err := s.members.repo.CountBy(ctx, "district")
	if err != nil {
		return nil, err
	}
	out := make([]DistrictCount, 0, len(counts))
	for district, n := range counts {
		if district == "" {
			continue
		}
		out = append(out, DistrictCount{District: district, Members: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Members != out[j].Members {
			return out[i].Members > out[j].Members
		}
		return out[i].District < out[j].District
	})
	return out, nil
}
