package mailer

import (
	"context"
	"errors"
	"os"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/codedevify/Urbansolz/models"
)

var ErrNotConfigured = errors.New("mail transport is not configured")

// EmailSettings is the slice of the settings store the mailer needs.
type EmailSettings interface {
	EmailConfig(ctx context.Context) (*models.EmailConfig, error)
}

// ConfigSource resolves the mail configuration once and caches it
// process-wide. Invalidate forces the next Get to re-resolve, which is how an
// administrative credential update takes effect.
type ConfigSource struct {
	settings EmailSettings

	mu     sync.RWMutex
	cached *models.EmailConfig
	sfg    singleflight.Group
}

func NewConfigSource(settings EmailSettings) *ConfigSource {
	return &ConfigSource{settings: settings}
}

func (s *ConfigSource) Get(ctx context.Context) (models.EmailConfig, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return *cached, nil
	}

	// collapse concurrent re-resolutions after an invalidation
	v, err, _ := s.sfg.Do("email-config", func() (interface{}, error) {
		cfg, err := s.settings.EmailConfig(ctx)
		if err != nil || incomplete(cfg) {
			cfg = fromEnv()
		}
		applyDefaults(cfg)
		if cfg.EmailUser == "" || cfg.EmailPass == "" {
			return nil, ErrNotConfigured
		}
		s.mu.Lock()
		s.cached = cfg
		s.mu.Unlock()
		return cfg, nil
	})
	if err != nil {
		return models.EmailConfig{}, err
	}
	return *(v.(*models.EmailConfig)), nil
}

// Invalidate drops the cached configuration.
func (s *ConfigSource) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

func incomplete(cfg *models.EmailConfig) bool {
	return cfg == nil || cfg.EmailUser == "" || cfg.EmailPass == ""
}

func fromEnv() *models.EmailConfig {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	return &models.EmailConfig{
		EmailUser:   os.Getenv("EMAIL_USER"),
		EmailPass:   os.Getenv("EMAIL_PASS"),
		SellerEmail: os.Getenv("SELLER_EMAIL"),
		SMTPHost:    os.Getenv("SMTP_HOST"),
		SMTPPort:    port,
	}
}

func applyDefaults(cfg *models.EmailConfig) {
	if cfg.SMTPHost == "" {
		cfg.SMTPHost = "smtp.gmail.com"
	}
	if cfg.SMTPPort == 0 {
		cfg.SMTPPort = 587
	}
	if cfg.SellerEmail == "" {
		cfg.SellerEmail = cfg.EmailUser
	}
}
