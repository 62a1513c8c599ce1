package services

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/nomato-app/nomato-backend/models"
	"github.com/nomato-app/nomato-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagicLinkIsSingleUse(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewMagicLinkService(db)
	ctx := context.Background()

	token, err := svc.Issue(ctx, "Sari@Example.com")
	require.NoError(t, err)

	var stored models.VerificationToken
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "sari@example.com", stored.Identifier)
	assert.Equal(t, HashToken(token), stored.TokenHash)

	assert.ErrorIs(t, svc.Consume(ctx, "other@example.com", token), ErrInvalidToken)
	require.NoError(t, svc.Consume(ctx, "SARI@example.com", token))
	assert.ErrorIs(t, svc.Consume(ctx, "sari@example.com", token), ErrInvalidToken)
}

func TestMagicLinkExpiry(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewMagicLinkService(db)
	ctx := context.Background()

	issued := time.Date(2025, time.May, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	token, err := svc.Issue(ctx, "sari@example.com")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(MagicLinkTTL + time.Second) }
	assert.ErrorIs(t, svc.Consume(ctx, "sari@example.com", token), ErrTokenExpired)

	// The expired row is gone too.
	var count int64
	require.NoError(t, db.Model(&models.VerificationToken{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMagicLinkRejectsEmptyInput(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewMagicLinkService(db)

	_, err := svc.Issue(context.Background(), "  ")
	assert.Error(t, err)
	assert.ErrorIs(t, svc.Consume(context.Background(), "", "abc"), ErrInvalidToken)
	assert.ErrorIs(t, svc.Consume(context.Background(), "sari@example.com", ""), ErrInvalidToken)
}

func TestBuildMagicLinkURL(t *testing.T) {
	link := BuildMagicLinkURL("https://api.nomato.app/", "tok123", "sari+food@example.com")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "api.nomato.app", u.Host)
	assert.Equal(t, "/api/auth/email/callback", u.Path)
	assert.Equal(t, "tok123", u.Query().Get("token"))
	assert.Equal(t, "sari+food@example.com", u.Query().Get("email"))
}
