// Package account provides the application layer for profile-level use
// cases outside the pantry: daily stats, settings and onboarding.
package account

import (
	"context"

	"github.com/nourishly/v1/internal/domain/profile"
	"github.com/nourishly/v1/internal/ports/inbound"
	"github.com/nourishly/v1/internal/ports/outbound"
	"github.com/nourishly/v1/pkg/errors"
	"go.uber.org/zap"
)

// AccountService implements the profile use cases
type AccountService struct {
	profiles outbound.ProfileRepository
	logger   *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(profiles outbound.ProfileRepository, logger *zap.Logger) inbound.AccountService {
	return &AccountService{
		profiles: profiles,
		logger:   logger.Named("account-service"),
	}
}

// Get returns the current profile, seeding the default on first use.
func (s *AccountService) Get(ctx context.Context) (*profile.Profile, error) {
	prof, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, errors.NewPersistenceError("load profile", err)
	}
	return prof, nil
}

// UpdateDailyStats replaces the day's health metrics.
func (s *AccountService) UpdateDailyStats(ctx context.Context, stats profile.DailyStats) (*profile.Profile, error) {
	return s.mutate(ctx, func(prof *profile.Profile) {
		prof.DailyStats = stats
	})
}

// UpdateSettings replaces the user preferences.
func (s *AccountService) UpdateSettings(ctx context.Context, settings profile.Settings) (*profile.Profile, error) {
	return s.mutate(ctx, func(prof *profile.Profile) {
		prof.Settings = settings
	})
}

// CompleteOnboarding records the onboarding answers and marks the flow
// as done.
func (s *AccountService) CompleteOnboarding(ctx context.Context, goals, dietaryPreferences []string) (*profile.Profile, error) {
	return s.mutate(ctx, func(prof *profile.Profile) {
		if len(goals) > 0 {
			prof.Goals = goals
		}
		if len(dietaryPreferences) > 0 {
			prof.DietaryPreferences = dietaryPreferences
		}
		prof.HasCompletedOnboarding = true
	})
}

func (s *AccountService) mutate(ctx context.Context, apply func(*profile.Profile)) (*profile.Profile, error) {
	prof, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, errors.NewPersistenceError("load profile", err)
	}

	apply(prof)

	if err := s.profiles.Save(ctx, prof); err != nil {
		// Optimistic continue: the returned profile stays authoritative.
		s.logger.Error("Failed to persist profile", zap.Error(err))
	}
	return prof, nil
}
