package account

import (
	"context"
	"testing"
	"time"

	"github.com/nourishly/v1/internal/domain/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProfileRepository struct {
	profile *profile.Profile
	saveErr error
}

func (f *fakeProfileRepository) Load(ctx context.Context) (*profile.Profile, error) {
	return f.profile, nil
}

func (f *fakeProfileRepository) Save(ctx context.Context, p *profile.Profile) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.profile = p
	return nil
}

func TestAccountService(t *testing.T) {
	ctx := context.Background()

	t.Run("Get_ShouldReturnStoredProfile", func(t *testing.T) {
		repo := &fakeProfileRepository{profile: profile.Default(time.Now())}
		service := NewAccountService(repo, zap.NewNop())

		prof, err := service.Get(ctx)

		require.NoError(t, err)
		assert.Equal(t, "Sarah", prof.Name)
	})

	t.Run("UpdateDailyStats_ShouldReplaceWholesale", func(t *testing.T) {
		repo := &fakeProfileRepository{profile: profile.Default(time.Now())}
		service := NewAccountService(repo, zap.NewNop())

		weight := 62.5
		prof, err := service.UpdateDailyStats(ctx, profile.DailyStats{
			WaterMl:      1500,
			WaterGoalMl:  2500,
			Calories:     1600,
			CaloriesGoal: 2000,
			Weight:       &weight,
			Mood:         profile.MoodGood,
		})

		require.NoError(t, err)
		assert.Equal(t, 1500, prof.DailyStats.WaterMl)
		assert.Equal(t, profile.MoodGood, prof.DailyStats.Mood)
		assert.Equal(t, prof.DailyStats, repo.profile.DailyStats)
	})

	t.Run("UpdateSettings_ShouldPersistPreferences", func(t *testing.T) {
		repo := &fakeProfileRepository{profile: profile.Default(time.Now())}
		service := NewAccountService(repo, zap.NewNop())

		prof, err := service.UpdateSettings(ctx, profile.Settings{
			Theme:         profile.ThemeDark,
			Notifications: profile.NotificationSettings{Push: true},
		})

		require.NoError(t, err)
		assert.Equal(t, profile.ThemeDark, prof.Settings.Theme)
	})

	t.Run("CompleteOnboarding_ShouldRecordAnswers", func(t *testing.T) {
		repo := &fakeProfileRepository{profile: profile.Default(time.Now())}
		service := NewAccountService(repo, zap.NewNop())

		prof, err := service.CompleteOnboarding(ctx, []string{"Strength"}, []string{"Vegetarian"})

		require.NoError(t, err)
		assert.True(t, prof.HasCompletedOnboarding)
		assert.Equal(t, []string{"Strength"}, prof.Goals)
		assert.Equal(t, []string{"Vegetarian"}, prof.DietaryPreferences)
	})

	t.Run("CompleteOnboardingWithoutAnswers_ShouldKeepExisting", func(t *testing.T) {
		repo := &fakeProfileRepository{profile: profile.Default(time.Now())}
		service := NewAccountService(repo, zap.NewNop())

		prof, err := service.CompleteOnboarding(ctx, nil, nil)

		require.NoError(t, err)
		assert.True(t, prof.HasCompletedOnboarding)
		assert.NotEmpty(t, prof.Goals)
	})

	t.Run("PersistenceFailure_ShouldStillReturnProfile", func(t *testing.T) {
		repo := &fakeProfileRepository{
			profile: profile.Default(time.Now()),
			saveErr: assert.AnError,
		}
		service := NewAccountService(repo, zap.NewNop())

		prof, err := service.UpdateSettings(ctx, profile.Settings{Theme: profile.ThemeDark})

		require.NoError(t, err)
		assert.Equal(t, profile.ThemeDark, prof.Settings.Theme)
	})
}
