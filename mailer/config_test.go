package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codedevify/Urbansolz/models"
)

type stubSettings struct {
	cfg   *models.EmailConfig
	err   error
	calls int
}

func (s *stubSettings) EmailConfig(context.Context) (*models.EmailConfig, error) {
	s.calls++
	return s.cfg, s.err
}

func TestConfigSource_CachesUntilInvalidated(t *testing.T) {
	settings := &stubSettings{cfg: &models.EmailConfig{
		EmailUser:   "shop@example.com",
		EmailPass:   "pass",
		SellerEmail: "owner@example.com",
	}}
	src := NewConfigSource(settings)
	ctx := context.Background()

	first, err := src.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", first.SellerEmail)

	_, err = src.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, settings.calls, "second Get must hit the cache")

	settings.cfg.EmailUser = "new@example.com"
	src.Invalidate()

	updated, err := src.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.EmailUser)
	assert.Equal(t, 2, settings.calls)
}

func TestConfigSource_Defaults(t *testing.T) {
	settings := &stubSettings{cfg: &models.EmailConfig{
		EmailUser: "shop@example.com",
		EmailPass: "pass",
	}}
	src := NewConfigSource(settings)

	cfg, err := src.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "shop@example.com", cfg.SellerEmail)
}

func TestConfigSource_NotConfigured(t *testing.T) {
	t.Setenv("EMAIL_USER", "")
	t.Setenv("EMAIL_PASS", "")

	src := NewConfigSource(&stubSettings{cfg: &models.EmailConfig{}})
	_, err := src.Get(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
