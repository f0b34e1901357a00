// Package service holds the workflow controller and the session authority:
// every state change of a record goes through here.
package service

import (
	"log/slog"
	"time"

	"Mala_Admin/internal/pkg"
	"Mala_Admin/internal/repository/database"
	"Mala_Admin/internal/storage"

	"gorm.io/gorm"
)

// Deps the collaborators New wires together. Revoked, Events, Notifier,
// Metrics, Logger and Now are optional.
type Deps struct {
	DB       *gorm.DB
	Tokens   *pkg.TokenAuthority
	Media    *storage.Gateway
	Revoked  RevocationStore
	Events   EventPublisher
	Notifier Notifier
	Metrics  *pkg.Metrics
	Logger   *slog.Logger
	Now      func() time.Time
}

type Services struct {
	Auth         *AuthService
	Members      *MemberService
	Applications *ApplicationService
	Donations    *DonationService
	Complaints   *ComplaintService
	Gallery      *GalleryService
	Intake       *IntakeService
	Dashboard    *DashboardService
}

func New(d Deps) *Services {
	if d.Logger == nil {
		d.Logger = pkg.DiscardLogger()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Revoked == nil {
		d.Revoked = &database.RevocationRepository{DB: d.DB, Now: d.Now}
	}
	if d.Events == nil {
		d.Events = LogPublisher{Logger: d.Logger.With("component", "events")}
	}
	if d.Notifier == nil {
		d.Notifier = NopNotifier{}
	}

	wf := &workflow{
		events:   d.Events,
		notifier: d.Notifier,
		metrics:  d.Metrics,
		logger:   d.Logger.With("component", "workflow"),
		now:      d.Now,
	}
	members := database.NewMemberRepository(d.DB)
	applications := database.NewApplicationRepository(d.DB)
	donations := database.NewDonationRepository(d.DB)
	complaints := database.NewComplaintRepository(d.DB)

	s := &Services{
		Auth:         NewAuthService(&database.AdminRepository{DB: d.DB}, d.Revoked, d.Tokens, d.Logger.With("component", "auth")),
		Members:      &MemberService{repo: members, workflow: wf},
		Applications: &ApplicationService{repo: applications, workflow: wf},
		Donations:    &DonationService{repo: donations, workflow: wf},
		Complaints:   &ComplaintService{repo: complaints, workflow: wf},
		Gallery:      &GalleryService{repo: database.NewGalleryRepository(d.DB), media: d.Media, workflow: wf},
		Intake: &IntakeService{
			donations:    donations,
			applications: applications,
			complaints:   complaints,
			media:        d.Media,
			workflow:     wf,
		},
	}
	s.Dashboard = &DashboardService{
		members:      s.Members,
		applications: s.Applications,
		donations:    s.Donations,
		complaints:   s.Complaints,
		gallery:      s.Gallery,
		now:          d.Now,
	}
	return s
}
