package service

import (
	"context"
	"io"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/pkg"
	"Mala_Admin/internal/query"
	"Mala_Admin/internal/repository/database"

	"github.com/shopspring/decimal"
)

type DonationService struct {
	repo *database.DonationRepository
	*workflow
}

type DonationSummary struct {
	TotalDonations        int64           `json:"total_donations"`
	PendingDonations      int64           `json:"pending_donations"`
	VerifiedDonations     int64           `json:"verified_donations"`
	AcknowledgedDonations int64           `json:"acknowledged_donations"`
	FailedDonations       int64           `json:"failed_donations"`
	TotalRaisedAmount     decimal.Decimal `json:"total_raised_amount"`
}

// raisedStatuses count towards the raised total.
var raisedStatuses = []model.DonationStatus{model.DonationVerified, model.DonationAcknowledged}

func (s *DonationService) Get(ctx context.Context, id uint64) (*model.Donation, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DonationService) List(ctx context.Context, p query.Params) (*query.Result[model.Donation], error) {
	return s.repo.List(ctx, p)
}

func (s *DonationService) Export(ctx context.Context, p query.Params, w io.Writer) (int, error) {
	return s.repo.Export(ctx, p, w)
}

func (s *DonationService) Summary(ctx context.Context) (*DonationSummary, error) {
	counts, err := s.repo.CountBy(ctx, "status")
	if err != nil {
		return nil, err
	}
	raised, err := s.repo.SumAmount(ctx, raisedStatuses...)
	if err != nil {
		return nil, err
	}
	return &DonationSummary{
		TotalDonations:        query.Sum(counts),
		PendingDonations:      counts[string(model.DonationPending)],
		VerifiedDonations:     counts[string(model.DonationVerified)],
		AcknowledgedDonations: counts[string(model.DonationAcknowledged)],
		FailedDonations:       counts[string(model.DonationFailed)],
		TotalRaisedAmount:     raised,
	}, nil
}

// Verify marks a donation verified whatever its current status.
func (s *DonationService) Verify(ctx context.Context, id uint64) (*model.Donation, error) {
	return s.transition(ctx, id, "verify", model.DonationVerified, nil)
}

// Acknowledge is only legal from verified.
func (s *DonationService) Acknowledge(ctx context.Context, id uint64) (*model.Donation, error) {
	d, err := s.transition(ctx, id, "acknowledge", model.DonationAcknowledged, func(from model.DonationStatus) bool {
		return from == model.DonationVerified
	})
	if err == nil {
		s.notify("donation_acknowledged", func() error { return s.notifier.DonationAcknowledged(ctx, d) })
	}
	return d, err
}

// MarkFailed is only legal from pending.
func (s *DonationService) MarkFailed(ctx context.Context, id uint64) (*model.Donation, error) {
	return s.transition(ctx, id, "fail", model.DonationFailed, func(from model.DonationStatus) bool {
		return from == model.DonationPending
	})
}

func (s *DonationService) transition(ctx context.Context, id uint64, name string, to model.DonationStatus, allowed func(model.DonationStatus) bool) (*model.Donation, error) {
	var from model.DonationStatus
	d, err := s.repo.Transition(ctx, id, func(d *model.Donation) error {
		from = d.Status
		if allowed != nil && !allowed(from) {
			return pkg.ErrInvalidTransition
		}
		d.Status = to
		return nil
	})
	s.done(ctx, "donation", name, id, string(from), string(to), err)
	return d, err
}
