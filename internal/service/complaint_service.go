package service

import (
	"context"
	"io"
	"strings"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/pkg"
	"Mala_Admin/internal/query"
	"Mala_Admin/internal/repository/database"
)

type ComplaintService struct {
	repo *database.ComplaintRepository
	*workflow
}

type ComplaintSummary struct {
	TotalComplaints      int64 `json:"total_complaints"`
	PendingComplaints    int64 `json:"pending_complaints"`
	InProgressComplaints int64 `json:"in_progress_complaints"`
	ResolvedComplaints   int64 `json:"resolved_complaints"`
	ClosedComplaints     int64 `json:"closed_complaints"`
}

func (s *ComplaintService) Get(ctx context.Context, id uint64) (*model.Complaint, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ComplaintService) List(ctx context.Context, p query.Params) (*query.Result[model.Complaint], error) {
	return s.repo.List(ctx, p)
}

func (s *ComplaintService) Export(ctx context.Context, p query.Params, w io.Writer) (int, error) {
	return s.repo.Export(ctx, p, w)
}

func (s *ComplaintService) Summary(ctx context.Context) (*ComplaintSummary, error) {
	counts, err := s.repo.CountBy(ctx, "status")
	if err != nil {
		return nil, err
	}
	return &ComplaintSummary{
		TotalComplaints:      query.Sum(counts),
		PendingComplaints:    counts[string(model.ComplaintPending)],
		InProgressComplaints: counts[string(model.ComplaintInProgress)],
		ResolvedComplaints:   counts[string(model.ComplaintResolved)],
		ClosedComplaints:     counts[string(model.ComplaintClosed)],
	}, nil
}

// UpdateStatus sets any status of the enumeration. Non-empty notes replace
// admin_notes; updated_at is refreshed on every call that finds the record.
func (s *ComplaintService) UpdateStatus(ctx context.Context, id uint64, status, notes string) (*model.Complaint, error) {
	to := model.ComplaintStatus(status)
	if !to.Valid() {
		return nil, pkg.NewValidationError("status", "must be one of %s", strings.Join(model.ComplaintStatuses, ", "))
	}
	var from model.ComplaintStatus
	c, err := s.repo.Transition(ctx, id, func(c *model.Complaint) error {
		from = c.Status
		c.Status = to
		if n := strings.TrimSpace(notes); n != "" {
			c.AdminNotes = n
		}
		return nil
	})
	s.done(ctx, "complaint", "update_status", id, string(from), string(to), err)
	return c, err
}
