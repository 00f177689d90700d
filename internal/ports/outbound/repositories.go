// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/nourishly/v1/internal/domain/pantry"
	"github.com/nourishly/v1/internal/domain/profile"
)

// ProfileRepository persists the whole user profile as one snapshot.
// Load must return a deterministic default profile (with the seeded
// starter pantry) when no prior state exists. Save is last-write-wins;
// there is no optimistic concurrency, consistent with a single-user
// local client.
type ProfileRepository interface {
	Load(ctx context.Context) (*profile.Profile, error)
	Save(ctx context.Context, p *profile.Profile) error
}

// CacheRepository defines the caching operations the application needs.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ChatTurn is one prior exchange in a chat conversation.
type ChatTurn struct {
	Role string // user or model
	Text string
}

// ChatDelta is one incremental piece of a streamed chat reply. A stream
// delivers deltas in arrival order and terminates with exactly one of:
// channel close (successful completion) or a delta carrying Err.
type ChatDelta struct {
	Text string
	Err  error
}

// RecipeConstraints narrows AI recipe generation.
type RecipeConstraints struct {
	Cuisine  string
	MealType string
	Mood     string
	Language profile.Language
}

// RecipeResponse is the structured recipe returned by the AI backend.
type RecipeResponse struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Ingredients     []string `json:"ingredients"`
	Instructions    []string `json:"instructions"`
	Calories        int      `json:"calories"`
	PrepTimeMinutes int      `json:"prep_time_minutes"`
	Cuisine         string   `json:"cuisine,omitempty"`
	MealType        string   `json:"meal_type,omitempty"`
	Difficulty      string   `json:"difficulty,omitempty"`
	Servings        int      `json:"servings,omitempty"`
	Tips            []string `json:"tips,omitempty"`
}

// AIService defines the generative AI operations. IdentifyPantryItem
// returns (nil, nil) when the model could not identify the product; the
// caller must surface that as a recoverable notice, never a crash.
type AIService interface {
	IdentifyPantryItem(ctx context.Context, image []byte, lang profile.Language) (*pantry.ItemAnalysis, error)
	GenerateRecipe(ctx context.Context, ingredients []string, constraints RecipeConstraints) (*RecipeResponse, error)
	StreamChat(ctx context.Context, history []ChatTurn, message string, lang profile.Language) (<-chan ChatDelta, error)
}

// UnitLabeler resolves unit and category codes to display labels. The
// domain stores codes only; localized labels never enter persistence.
type UnitLabeler interface {
	UnitLabel(unit pantry.Unit, lang profile.Language) string
	CategoryLabel(category pantry.Category, lang profile.Language) string
}
