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

type MemberService struct {
	repo *database.MemberRepository
	*workflow
}

type MemberSummary struct {
	TotalMembers    int64 `json:"total_members"`
	ApprovedMembers int64 `json:"approved_members"`
	PendingMembers  int64 `json:"pending_members"`
	RejectedMembers int64 `json:"rejected_members"`
}

func (s *MemberService) Get(ctx context.Context, id uint64) (*model.Member, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MemberService) List(ctx context.Context, p query.Params) (*query.Result[model.Member], error) {
	return s.repo.List(ctx, p)
}

func (s *MemberService) Export(ctx context.Context, p query.Params, w io.Writer) (int, error) {
	return s.repo.Export(ctx, p, w)
}

func (s *MemberService) Summary(ctx context.Context) (*MemberSummary, error) {
	counts, err := s.repo.CountBy(ctx, "status")
	if err != nil {
		return nil, err
	}
	return &MemberSummary{
		TotalMembers:    query.Sum(counts),
		ApprovedMembers: counts[string(model.MemberApproved)],
		PendingMembers:  counts[string(model.MemberPending)],
		RejectedMembers: counts[string(model.MemberRejected)],
	}, nil
}

func (s *MemberService) FilterOptions(ctx context.Context) (*database.FilterOptions, error) {
	return s.repo.FilterOptions(ctx)
}

// Approve moves any member to approved.
func (s *MemberService) Approve(ctx context.Context, id uint64) (*model.Member, error) {
	return s.setStatus(ctx, id, "approve", model.MemberApproved)
}

// Reject moves any member to rejected.
func (s *MemberService) Reject(ctx context.Context, id uint64) (*model.Member, error) {
	return s.setStatus(ctx, id, "reject", model.MemberRejected)
}

func (s *MemberService) setStatus(ctx context.Context, id uint64, transition string, to model.MemberStatus) (*model.Member, error) {
	var from model.MemberStatus
	m, err := s.repo.Transition(ctx, id, func(m *model.Member) error {
		from = m.Status
		m.Status = to
		return nil
	})
	s.done(ctx, "member", transition, id, string(from), string(to), err)
	return m, err
}

type MemberInput struct {
	Name     string
	Phone    string
	Email    string
	Aadhaar  string
	State    string
	District string
	Mandal   string
	Status   string
}

// Create registers a member directly, with a MEM#### membership id.
func (s *MemberService) Create(ctx context.Context, in MemberInput) (*model.Member, error) {
	status := model.MemberPending
	if in.Status != "" {
		status = model.MemberStatus(in.Status)
		if !status.Valid() {
			return nil, pkg.NewValidationError("status", "must be one of %s", strings.Join(model.MemberStatuses, ", "))
		}
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, pkg.NewValidationError("name", "is required")
	}
	if in.Phone != "" && !pkg.IsPhone(in.Phone) {
		return nil, pkg.NewValidationError("phone", "must be 10 digits")
	}
	if in.Aadhaar != "" && !pkg.IsAadhaar(in.Aadhaar) {
		return nil, pkg.NewValidationError("aadhaar", "must be 12 digits")
	}
	m := &model.Member{
		Name:     strings.TrimSpace(in.Name),
		Phone:    in.Phone,
		Email:    in.Email,
		Aadhaar:  in.Aadhaar,
		State:    in.State,
		District: in.District,
		Mandal:   in.Mandal,
		Status:   status,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, m, pkg.AdminMembershipID); err != nil {
		return nil, err
	}
	return m, nil
}
