package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jwhittle/daybook/internal/domain"
	"github.com/jwhittle/daybook/internal/repository"
)

type settingsService struct {
	settings repository.SettingsRepo
	observer UseCaseObserver
	now      func() time.Time
}

// NewSettingsService creates the schedule-settings use-case implementation.
func NewSettingsService(settings repository.SettingsRepo, observers ...UseCaseObserver) SettingsService {
	return &settingsService{
		settings: settings,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *settingsService) Get(ctx context.Context, userID string) (*domain.ScheduleSettings, error) {
	current, err := s.settings.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		current = domain.DefaultSettings(userID)
		current.UpdatedAt = s.now()
		if upErr := s.settings.Upsert(ctx, current); upErr != nil {
			return nil, fmt.Errorf("persisting default settings: %w", upErr)
		}
		return current, nil
	}
	if err != nil {
		return nil, err
	}
	return current, nil
}

func (s *settingsService) Update(ctx context.Context, userID string, patch SettingsPatch) (updated *domain.ScheduleSettings, err error) {
	start := s.now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name: "settings.update", Duration: time.Since(start), Success: err == nil, Err: err,
			Fields: map[string]any{"user_id": userID}, StartedAt: start,
		})
	}()

	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Days != nil {
		current.Days = *patch.Days
	}
	current.BufferHours = domain.Float64FromPtrWithDefault(current.BufferHours, patch.BufferHours)
	current.BreakAfterTaskMin = domain.IntFromPtrWithDefault(current.BreakAfterTaskMin, patch.BreakAfterTaskMin)
	current.UpdatedAt = s.now()

	if err = current.Validate(); err != nil {
		return nil, err
	}
	if err = s.settings.Upsert(ctx, current); err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}
	return current, nil
}
