package database

import (
	"testing"
	"time"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevocationRepository(t *testing.T) {
	db := testutil.NewDB(t, &model.RevokedToken{})
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	repo := &RevocationRepository{DB: db, Now: func() time.Time { return now }}
	ctx := t.Context()

	count := func() int64 {
		t.Helper()
		var n int64
		require.NoError(t, db.Model(&model.RevokedToken{}).Count(&n).Error)
		return n
	}

	require.NoError(t, repo.Revoke(ctx, "short", now.Add(time.Minute)))
	require.NoError(t, repo.Revoke(ctx, "short", now.Add(time.Minute)))
	assert.EqualValues(t, 1, count(), "revoking twice keeps one row")

	require.NoError(t, repo.Revoke(ctx, "long", now.Add(time.Hour)))
	assert.EqualValues(t, 2, count())

	revoked, err := repo.IsRevoked(ctx, "short")
	require.NoError(t, err)
	assert.True(t, revoked)
	revoked, err = repo.IsRevoked(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, revoked)

	// "short" has expired on its own; the next write prunes it
	now = now.Add(10 * time.Minute)
	require.NoError(t, repo.Revoke(ctx, "next", now.Add(time.Minute)))

	var left []string
	require.NoError(t, db.Model(&model.RevokedToken{}).Order("token").Pluck("token", &left).Error)
	assert.Equal(t, []string{"long", "next"}, left)

	revoked, err = repo.IsRevoked(ctx, "short")
	require.NoError(t, err)
	assert.False(t, revoked)
}
