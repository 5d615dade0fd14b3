package services

import (
	"context"
	"sync"

	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/core"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/log"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/storage"
)

// SettingsService owns one user's preferences.
type SettingsService struct {
	mu       sync.Mutex
	key      string
	saver    Saver
	logger   *log.Logger
	settings core.Settings
}

func newSettingsService(email string, settings core.Settings, d deps) *SettingsService {
	return &SettingsService{
		key:      storage.SettingsKey(email),
		saver:    d.saver,
		logger:   d.logger.WithComponent(log.ComponentSettings),
		settings: settings,
	}
}

func (s *SettingsService) Get() core.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// ToggleDarkMode flips the theme flag and returns the new settings.
func (s *SettingsService) ToggleDarkMode(ctx context.Context) core.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.DarkMode = !s.settings.DarkMode
	s.persistLocked(ctx)
	return s.settings
}

func (s *SettingsService) persistLocked(ctx context.Context) {
	raw, err := storage.Encode(s.settings)
	if err != nil {
		s.logger.ErrorContext(ctx, "Encoding settings failed", log.FieldError, err)
		return
	}
	s.saver.Save(s.key, raw)
}
