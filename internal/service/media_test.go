package service

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/pkg"
	"Mala_Admin/internal/query"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) blobExists(t *testing.T, url string) bool {
	t.Helper()
	key, ok := f.store.KeyFromURL(url)
	require.True(t, ok, url)
	_, err := os.Stat(filepath.Join(f.store.Dir(), filepath.FromSlash(key)))
	return err == nil
}

func (f *fixture) blobCount(t *testing.T) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(f.store.Dir(), func(_ string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			n++
		}
		return err
	})
	require.NoError(t, err)
	return n
}

func ptr(s string) *string { return &s }

func TestGalleryLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	item, err := f.svc.Gallery.Create(ctx, GalleryInput{Title: "Rally", Description: ptr("city rally"), File: memFile("rally.PNG", "png-bytes")})
	require.NoError(t, err)
	assert.Equal(t, model.MediaImage, item.MediaType)
	assert.Contains(t, item.MediaURL, "/gallery/images/")
	require.True(t, f.blobExists(t, item.MediaURL))

	// metadata only
	same, err := f.svc.Gallery.Update(ctx, item.ID, GalleryInput{Title: "Rally 2025", Description: ptr("updated")})
	require.NoError(t, err)
	assert.Equal(t, item.MediaURL, same.MediaURL)
	assert.Equal(t, "Rally 2025", same.Title)
	assert.Equal(t, "updated", same.Description)

	oldURL := item.MediaURL
	updated, err := f.svc.Gallery.Update(ctx, item.ID, GalleryInput{Title: "Rally 2025", File: memFile("rally.mp4", "mp4-bytes")})
	require.NoError(t, err)
	assert.NotEqual(t, oldURL, updated.MediaURL)
	assert.Equal(t, model.MediaVideo, updated.MediaType)
	assert.Contains(t, updated.MediaURL, "/gallery/videos/")
	assert.Equal(t, "updated", updated.Description, "nil description is kept")
	assert.False(t, f.blobExists(t, oldURL), "old blob deleted")
	assert.True(t, f.blobExists(t, updated.MediaURL))

	stored, err := f.svc.Gallery.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.MediaURL, stored.MediaURL)

	deleted, err := f.svc.Gallery.Delete(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Zero(t, f.blobCount(t))
	_, err = f.svc.Gallery.Get(ctx, item.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	_, err = f.svc.Gallery.Delete(ctx, item.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestGalleryRejectsUnsupportedFile(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	_, err := f.svc.Gallery.Create(ctx, GalleryInput{Title: "Doc", File: memFile("minutes.pdf", "pdf")})
	assert.ErrorIs(t, err, pkg.ErrUnsupportedMediaType)

	item, err := f.svc.Gallery.Create(ctx, GalleryInput{Title: "Photo", File: memFile("a.jpg", "jpg")})
	require.NoError(t, err)
	_, err = f.svc.Gallery.Update(ctx, item.ID, GalleryInput{File: memFile("a.exe", "exe")})
	assert.ErrorIs(t, err, pkg.ErrUnsupportedMediaType)
	assert.True(t, f.blobExists(t, item.MediaURL), "failed replace keeps the old blob")
	assert.Equal(t, 1, f.blobCount(t))
}

func TestGallerySummaryAndPublic(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	for _, name := range []string{"a.jpg", "b.png", "c.webm"} {
		_, err := f.svc.Gallery.Create(ctx, GalleryInput{Title: name, File: memFile(name, name)})
		require.NoError(t, err)
	}

	sum, err := f.svc.Gallery.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, GallerySummary{TotalItems: 3, TotalImages: 2, TotalVideos: 1}, *sum)

	items, err := f.svc.Gallery.Public(ctx, query.Params{Filters: map[string]string{"media_type": model.MediaVideo}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c.webm", items[0].Title)
}

func TestDonationEndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	d, err := f.svc.Intake.SubmitDonation(ctx, DonationInput{
		DonorName:     "Priya",
		DonorEmail:    "priya@example.com",
		CustomAmount:  decimal.NewFromInt(1000),
		PaymentMethod: "upi",
	})
	require.NoError(t, err)
	assert.Equal(t, model.DonationPending, d.Status)

	_, err = f.svc.Donations.Verify(ctx, d.ID)
	require.NoError(t, err)
	_, err = f.svc.Donations.Acknowledge(ctx, d.ID)
	require.NoError(t, err)

	sum, err := f.svc.Donations.Summary(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, sum.AcknowledgedDonations)
	assert.True(t, sum.TotalRaisedAmount.Equal(decimal.NewFromInt(1000)), sum.TotalRaisedAmount.String())
}

func TestSubmitDonationAmounts(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	d, err := f.svc.Intake.SubmitDonation(ctx, DonationInput{
		DonorName:     "Priya",
		PresetAmount:  decimal.NewFromInt(500),
		CustomAmount:  decimal.NewFromInt(75),
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	assert.True(t, d.Amount.Equal(decimal.NewFromInt(500)), "preset wins")

	var verr *pkg.ValidationError
	_, err = f.svc.Intake.SubmitDonation(ctx, DonationInput{DonorName: "Priya", PaymentMethod: "cash"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Field)

	_, err = f.svc.Intake.SubmitDonation(ctx, DonationInput{DonorName: "Priya", CustomAmount: decimal.NewFromInt(10), PaymentMethod: "bitcoin"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "payment_method", verr.Field)
}

func applicationInput() ApplicationInput {
	return ApplicationInput{
		FullName:      "Kiran Kumar",
		Gender:        model.GenderMale,
		DateOfBirth:   "05-08-1990",
		Caste:         "Mala",
		AadhaarNumber: "111122223333",
		PhoneNumber:   "9988776655",
		State:         "Andhra Pradesh",
		District:      "Krishna",
		Photo:         memFile("kiran.jpg", "jpeg"),
	}
}

func TestApplyMembership(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	app, err := f.svc.Intake.ApplyMembership(ctx, applicationInput())
	require.NoError(t, err)
	assert.Equal(t, model.MemberPending, app.Status)
	assert.Equal(t, time.Date(1990, 8, 5, 0, 0, 0, 0, time.UTC), app.DateOfBirth)
	assert.Contains(t, app.PhotoURL, "/membership/photos/")
	assert.True(t, f.blobExists(t, app.PhotoURL))

	in := applicationInput()
	in.DateOfBirth = "1990-08-05"
	var verr *pkg.ValidationError
	_, err = f.svc.Intake.ApplyMembership(ctx, in)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date_of_birth", verr.Field)

	in = applicationInput()
	in.Photo = memFile("kiran.mp4", "video")
	_, err = f.svc.Intake.ApplyMembership(ctx, in)
	assert.ErrorIs(t, err, pkg.ErrUnsupportedMediaType)

	assert.Equal(t, 1, f.blobCount(t))
}

func TestFileComplaint(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	in := ComplaintInput{
		ComplainantName: "Anil",
		Email:           "anil@example.com",
		Phone:           "9000000000",
		Type:            "Education",
		Subject:         "School fees",
		Description:     "Fees raised mid year",
		Document:        memFile("receipt.pdf", "pdf"),
	}
	c, err := f.svc.Intake.FileComplaint(ctx, in)
	require.NoError(t, err)
	assert.Regexp(t, `^MMN-CMP-20250315-[0-9A-F]{4}$`, c.ReferenceID)
	assert.Equal(t, model.ComplaintPending, c.Status)
	assert.True(t, f.blobExists(t, c.SupportingDocumentURL))
	assert.Equal(t, []string{c.ReferenceID}, f.notifier.complaints)

	in.Document = memFile("clip.mp4", "video")
	_, err = f.svc.Intake.FileComplaint(ctx, in)
	assert.ErrorIs(t, err, pkg.ErrUnsupportedMediaType)

	in.Document = nil
	in.Type = "Weather"
	var verr *pkg.ValidationError
	_, err = f.svc.Intake.FileComplaint(ctx, in)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Field)
}
