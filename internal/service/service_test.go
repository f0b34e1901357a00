package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/pkg"
	"Mala_Admin/internal/storage"
	"Mala_Admin/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []TransitionEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev TransitionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) all() []TransitionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]TransitionEvent(nil), p.events...)
}

type recordingNotifier struct {
	acknowledged []uint64
	complaints   []string
}

func (n *recordingNotifier) DonationAcknowledged(_ context.Context, d *model.Donation) error {
	n.acknowledged = append(n.acknowledged, d.ID)
	return nil
}

func (n *recordingNotifier) ComplaintReceived(_ context.Context, c *model.Complaint) error {
	n.complaints = append(n.complaints, c.ReferenceID)
	return nil
}

type fixture struct {
	db       *gorm.DB
	svc      *Services
	store    *storage.LocalStore
	events   *recordingPublisher
	notifier *recordingNotifier
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		db:       testutil.NewDB(t, model.All()...),
		events:   &recordingPublisher{},
		notifier: &recordingNotifier{},
		now:      time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC),
	}
	store, err := storage.NewLocalStore(t.TempDir(), "http://localhost:8000/uploads")
	require.NoError(t, err)
	f.store = store
	tokens, err := pkg.NewTokenAuthority([]byte("test-secret"), time.Minute)
	require.NoError(t, err)

	f.svc = New(Deps{
		DB:       f.db,
		Tokens:   tokens,
		Media:    storage.NewGateway(store, nil, pkg.NewMetrics(nil)),
		Events:   f.events,
		Notifier: f.notifier,
		Now:      func() time.Time { return f.now },
	})
	f.svc.Auth.WithHashCost(bcrypt.MinCost)
	return f
}

func memFile(name, body string) *storage.File {
	return &storage.File{
		Name: name,
		Size: int64(len(body)),
		Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(body)), nil },
	}
}

func (f *fixture) seedDonation(t *testing.T, status model.DonationStatus) *model.Donation {
	t.Helper()
	d := &model.Donation{
		DonorName:     "Ravi",
		DonorEmail:    "ravi@example.com",
		Amount:        decimal.RequireFromString("250.00"),
		PaymentMethod: "upi",
		Status:        status,
	}
	require.NoError(t, f.db.Create(d).Error)
	return d
}
