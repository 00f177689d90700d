// Package profile contains the user profile aggregate. The profile is
// the unit of persistence: the whole document is loaded at startup and
// written back on every mutation, last write wins. The pantry collection
// is one field of it and is only ever handed out as a snapshot.
package profile

import (
	"errors"
	"time"

	"github.com/nourishly/v1/internal/domain/pantry"
	"github.com/nourishly/v1/internal/domain/recipe"
)

// Language is a supported UI language.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageRussian Language = "ru"
)

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Mood is the self-reported daily mood.
type Mood string

const (
	MoodGreat    Mood = "great"
	MoodGood     Mood = "good"
	MoodOkay     Mood = "okay"
	MoodTired    Mood = "tired"
	MoodStressed Mood = "stressed"
)

// Subscription describes the user's plan.
type Subscription struct {
	Plan            string `json:"plan"` // free or premium
	Status          string `json:"status"`
	NextBillingDate string `json:"next_billing_date,omitempty"`
	Price           string `json:"price,omitempty"`
}

// NotificationSettings holds the notification toggles.
type NotificationSettings struct {
	Push      bool `json:"push"`
	Email     bool `json:"email"`
	Marketing bool `json:"marketing"`
}

// Settings holds user preferences.
type Settings struct {
	Notifications NotificationSettings `json:"notifications"`
	Theme         Theme                `json:"theme"`
}

// DailyStats tracks the current day's health metrics against goals.
type DailyStats struct {
	WaterMl      int      `json:"water_ml"`
	WaterGoalMl  int      `json:"water_goal_ml"`
	Calories     int      `json:"calories"`
	CaloriesGoal int      `json:"calories_goal"`
	Weight       *float64 `json:"weight,omitempty"`
	WeightGoal   *float64 `json:"weight_goal,omitempty"`
	Mood         Mood     `json:"mood,omitempty"`
}

// PlanHistoryItem is one completed meal-plan period.
type PlanHistoryItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	DateRange   string `json:"date_range"`
	Description string `json:"description"`
	CaloriesAvg int    `json:"calories_avg"`
}

// Profile is the persisted user document.
type Profile struct {
	ID                     string                   `json:"id"`
	Name                   string                   `json:"name"`
	Email                  string                   `json:"email"`
	AvatarURL              string                   `json:"avatar_url,omitempty"`
	Goals                  []string                 `json:"goals"`
	DietaryPreferences     []string                 `json:"dietary_preferences"`
	Subscription           Subscription             `json:"subscription"`
	Settings               Settings                 `json:"settings"`
	History                []PlanHistoryItem        `json:"history"`
	DailyStats             DailyStats               `json:"daily_stats"`
	HasCompletedOnboarding bool                     `json:"has_completed_onboarding"`
	SavedRecipes           []recipe.GeneratedRecipe `json:"saved_recipes"`
	Pantry                 []pantry.Item            `json:"pantry"`
}

// Validate checks the aggregate's invariants, including pantry id
// uniqueness across the stored snapshot.
func (p *Profile) Validate() error {
	if p.ID == "" {
		return errors.New("profile id is required")
	}
	if p.Name == "" {
		return errors.New("profile name is required")
	}
	seen := make(map[string]struct{}, len(p.Pantry))
	for _, item := range p.Pantry {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item.ID]; dup {
			return pantry.ErrDuplicateID
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}

// PantrySnapshot returns a copy of the pantry collection so domain
// operations can never alias the stored slice.
func (p *Profile) PantrySnapshot() []pantry.Item {
	snapshot := make([]pantry.Item, len(p.Pantry))
	copy(snapshot, p.Pantry)
	return snapshot
}

// SetPantry replaces the pantry collection with a new snapshot.
func (p *Profile) SetPantry(items []pantry.Item) {
	p.Pantry = items
}

// SaveRecipe appends a recipe to the saved list, newest first. Saving a
// recipe that is already present replaces it.
func (p *Profile) SaveRecipe(r recipe.GeneratedRecipe) error {
	if err := r.Validate(); err != nil {
		return err
	}
	next := make([]recipe.GeneratedRecipe, 0, len(p.SavedRecipes)+1)
	next = append(next, r)
	for _, saved := range p.SavedRecipes {
		if saved.ID != r.ID {
			next = append(next, saved)
		}
	}
	p.SavedRecipes = next
	return nil
}

// ForgetRecipe removes a saved recipe by id; missing ids are a no-op.
func (p *Profile) ForgetRecipe(id string) {
	next := make([]recipe.GeneratedRecipe, 0, len(p.SavedRecipes))
	for _, saved := range p.SavedRecipes {
		if saved.ID != id {
			next = append(next, saved)
		}
	}
	p.SavedRecipes = next
}

// Default returns the deterministic starter profile used when no prior
// state exists. The seeded pantry expiries are relative to now so the
// first inventory view exercises every urgency bucket.
func Default(now time.Time) *Profile {
	day := 24 * time.Hour
	inThree := now.Add(3 * day)
	inTwo := now.Add(2 * day)
	yesterday := now.Add(-day)
	inSixty := now.Add(60 * day)

	return &Profile{
		ID:                 "user_123",
		Name:               "Sarah",
		Email:              "sarah@example.com",
		Goals:              []string{"Weight Loss", "More Energy"},
		DietaryPreferences: []string{"Low Carb", "High Protein"},
		Subscription: Subscription{
			Plan:            "premium",
			Status:          "active",
			NextBillingDate: "2025-11-24",
			Price:           "$9.99/mo",
		},
		Settings: Settings{
			Notifications: NotificationSettings{Push: true, Email: true},
			Theme:         ThemeLight,
		},
		DailyStats: DailyStats{
			WaterMl:      1250,
			WaterGoalMl:  2500,
			Calories:     1450,
			CaloriesGoal: 2000,
		},
		SavedRecipes: []recipe.GeneratedRecipe{},
		Pantry: []pantry.Item{
			{ID: "p1", Name: "Greek Yogurt", Quantity: "1", Unit: pantry.UnitPack, ExpiryDate: &inThree, Category: pantry.CategoryDairy},
			{ID: "p2", Name: "Chicken Breast", Quantity: "500", Unit: pantry.UnitGram, ExpiryDate: &inTwo, Category: pantry.CategoryProtein},
			{ID: "p3", Name: "Spinach", Quantity: "1", Unit: pantry.UnitPack, ExpiryDate: &yesterday, Category: pantry.CategoryProduce},
			{ID: "p4", Name: "Pasta", Quantity: "1", Unit: pantry.UnitPack, ExpiryDate: &inSixty, Category: pantry.CategoryPantry},
		},
		History: []PlanHistoryItem{
			{ID: "1", Title: "Low Carb Week", DateRange: "Oct 24 - Oct 30", Description: "Focus on keto-friendly meals.", CaloriesAvg: 1800},
			{ID: "2", Title: "Detox Green", DateRange: "Oct 17 - Oct 23", Description: "High fiber and green smoothies.", CaloriesAvg: 1600},
			{ID: "3", Title: "Mediterranean Vibes", DateRange: "Oct 10 - Oct 16", Description: "Olive oil rich diet.", CaloriesAvg: 1950},
		},
	}
}
