package service

import (
	"context"
	"io"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/pkg"
	"Mala_Admin/internal/query"
	"Mala_Admin/internal/repository/database"
)

type ApplicationService struct {
	repo *database.ApplicationRepository
	*workflow
}

type ApplicationSummary struct {
	TotalApplications    int64 `json:"total_applications"`
	PendingApplications  int64 `json:"pending_applications"`
	ApprovedApplications int64 `json:"approved_applications"`
	RejectedApplications int64 `json:"rejected_applications"`
}

func (s *ApplicationService) Get(ctx context.Context, id uint64) (*model.MemberApplication, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ApplicationService) List(ctx context.Context, p query.Params) (*query.Result[model.MemberApplication], error) {
	return s.repo.List(ctx, p)
}

func (s *ApplicationService) Export(ctx context.Context, p query.Params, w io.Writer) (int, error) {
	return s.repo.Export(ctx, p, w)
}

func (s *ApplicationService) Summary(ctx context.Context) (*ApplicationSummary, error) {
	counts, err := s.repo.CountBy(ctx, "status")
	if err != nil {
		return nil, err
	}
	return &ApplicationSummary{
		TotalApplications:    query.Sum(counts),
		PendingApplications:  counts[string(model.MemberPending)],
		ApprovedApplications: counts[string(model.MemberApproved)],
		RejectedApplications: counts[string(model.MemberRejected)],
	}, nil
}

func memberFromApplication(app *model.MemberApplication) *model.Member {
	appID := app.ID
	return &model.Member{
		Name:          app.FullName,
		Phone:         app.PhoneNumber,
		Email:         app.EmailAddress,
		Aadhaar:       app.AadhaarNumber,
		State:         app.State,
		District:      app.District,
		Mandal:        app.Mandal,
		Status:        model.MemberApproved,
		IsActive:      true,
		ApplicationID: &appID,
	}
}

// Approve turns the application into a member with a fresh MEM<8 hex> id.
// An application is approved at most once.
func (s *ApplicationService) Approve(ctx context.Context, id uint64) (*model.MemberApplication, *model.Member, error) {
	var from model.MemberStatus
	app, member, err := s.repo.Approve(ctx, id,
		func(a *model.MemberApplication) error {
			if a.Status == model.MemberApproved {
				return pkg.ErrInvalidTransition
			}
			from = a.Status
			return nil
		},
		memberFromApplication,
		pkg.ApplicationMembershipID,
	)
	s.done(ctx, "member_application", "approve", id, string(from), string(model.MemberApproved), err)
	if err != nil {
		return nil, nil, err
	}
	return app, member, nil
}

// Reject closes a pending or rejected application; an approved one already
// has a member and cannot be rejected.
func (s *ApplicationService) Reject(ctx context.Context, id uint64) (*model.MemberApplication, error) {
	var from model.MemberStatus
	app, err := s.repo.Transition(ctx, id, func(a *model.MemberApplication) error {
		if a.Status == model.MemberApproved {
			return pkg.ErrInvalidTransition
		}
		from = a.Status
		a.Status = model.MemberRejected
		return nil
	})
	s.done(ctx, "member_application", "reject", id, string(from), string(model.MemberRejected), err)
	return app, err
}
