package serviceImp

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"agrimanage/pkg/apperr"
	"agrimanage/pkg/settings/service"
	slot "agrimanage/pkg/slot/repository"
)

type settingsSvc struct {
	mu   sync.Mutex
	slot slot.SlotRepository
	log  *zap.Logger
}

func NewSettingsService(sl slot.SlotRepository, log *zap.Logger) service.SettingsService {
	if log == nil {
		log = zap.NewNop()
	}
	return &settingsSvc{slot: sl, log: log}
}

// darkMode reads the slot. Absent or unreadable values mean off.
func (s *settingsSvc) darkMode(ctx context.Context) bool {
	raw, err := s.slot.Get(ctx, slot.KeyDarkMode)
	if err != nil {
		if !errors.Is(err, apperr.ErrSlotEmpty) {
			s.log.Warn("read darkMode slot", zap.Error(err))
		}
		return false
	}
	var on bool
	if err := json.Unmarshal(raw, &on); err != nil {
		s.log.Warn("darkMode slot is not a boolean", zap.ByteString("value", raw))
		return false
	}
	return on
}

func (s *settingsSvc) Get(ctx context.Context) service.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return service.Settings{DarkMode: s.darkMode(ctx)}
}

func (s *settingsSvc) SetDarkMode(ctx context.Context, on bool) (service.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(ctx, on)
}

func (s *settingsSvc) ToggleDarkMode(ctx context.Context) (service.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(ctx, !s.darkMode(ctx))
}

func (s *settingsSvc) set(ctx context.Context, on bool) (service.Settings, error) {
	raw, _ := json.Marshal(on)
	if err := s.slot.Put(ctx, slot.KeyDarkMode, raw); err != nil {
		return service.Settings{DarkMode: s.darkMode(ctx)}, err
	}
	return service.Settings{DarkMode: on}, nil
}
