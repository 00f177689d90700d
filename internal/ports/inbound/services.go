// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use cases that HTTP handlers and other driving adapters call
package inbound

import (
	"context"
	"time"

	"github.com/nourishly/v1/internal/domain/pantry"
	"github.com/nourishly/v1/internal/domain/profile"
	"github.com/nourishly/v1/internal/domain/recipe"
	"github.com/nourishly/v1/internal/ports/outbound"
)

// ConfirmFunc supplies the user's answer to a destructive-action prompt.
// It is passed in by the caller so the domain decision stays separate
// from the side-effecting dialog.
type ConfirmFunc func() bool

// PantryService defines the pantry inventory use cases.
type PantryService interface {
	// Commands - operations that modify the stored pantry
	AddItem(ctx context.Context, cmd AddItemCommand) (*ItemDTO, error)
	UpdateItem(ctx context.Context, cmd UpdateItemCommand) (*ItemDTO, error)
	DeleteItem(ctx context.Context, itemID string) error
	DecrementItem(ctx context.Context, itemID string, confirm ConfirmFunc) (*DecrementDTO, error)

	// Queries
	ListItems(ctx context.Context) ([]ItemDTO, error)
	InventoryView(ctx context.Context, query ViewQuery) (*InventoryViewDTO, error)
	SuggestCategory(name string) (pantry.Category, bool)

	// AI scan: one in-flight request at a time; a second call while a
	// scan is outstanding fails fast instead of duplicating work.
	ScanItem(ctx context.Context, image []byte, lang profile.Language) (*ScanResultDTO, error)
}

// KitchenService defines AI recipe generation and the saved-recipe list.
type KitchenService interface {
	CookFromPantry(ctx context.Context, cmd CookCommand) (*recipe.GeneratedRecipe, error)
	SaveRecipe(ctx context.Context, r recipe.GeneratedRecipe) error
	ForgetRecipe(ctx context.Context, recipeID string) error
	SavedRecipes(ctx context.Context) ([]recipe.GeneratedRecipe, error)
}

// ChatService exposes the streaming chef chat.
type ChatService interface {
	Stream(ctx context.Context, cmd ChatCommand) (<-chan outbound.ChatDelta, error)
}

// AccountService defines profile-level use cases outside the pantry.
type AccountService interface {
	Get(ctx context.Context) (*profile.Profile, error)
	UpdateDailyStats(ctx context.Context, stats profile.DailyStats) (*profile.Profile, error)
	UpdateSettings(ctx context.Context, settings profile.Settings) (*profile.Profile, error)
	CompleteOnboarding(ctx context.Context, goals, dietaryPreferences []string) (*profile.Profile, error)
}

// Command objects

// AddItemCommand contains data for creating a pantry item. A fresh id is
// assigned by the service; callers never supply one.
type AddItemCommand struct {
	Name       string
	Quantity   string
	Unit       pantry.Unit
	ExpiryDate *time.Time
	Category   pantry.Category
	// CategoryExplicit marks the category as a deliberate user choice.
	// Only when false may the keyword heuristic fill it in.
	CategoryExplicit bool
}

// UpdateItemCommand supplies the full replacement record for an item.
type UpdateItemCommand struct {
	ID         string
	Name       string
	Quantity   string
	Unit       pantry.Unit
	ExpiryDate *time.Time
	Category   pantry.Category
}

// ViewQuery narrows the inventory projection. Language selects the
// display labels attached to the DTOs; it defaults to English.
type ViewQuery struct {
	Category string
	Search   string
	Language profile.Language
}

// CookCommand requests a recipe from the current pantry contents.
type CookCommand struct {
	Cuisine  string
	MealType string
	Mood     string
	Language profile.Language
}

// ChatCommand carries one user message plus prior conversation turns.
type ChatCommand struct {
	History  []outbound.ChatTurn
	Message  string
	Language profile.Language
}

// Response DTOs

// ItemDTO is the transfer shape of a pantry item, annotated with its
// current expiry classification.
type ItemDTO struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Quantity      string              `json:"quantity"`
	Unit          pantry.Unit         `json:"unit"`
	UnitLabel     string              `json:"unit_label"`
	ExpiryDate    *time.Time          `json:"expiry_date,omitempty"`
	Category      pantry.Category     `json:"category"`
	CategoryLabel string              `json:"category_label"`
	DaysRemaining *int                `json:"days_remaining,omitempty"`
	Bucket        pantry.ExpiryBucket `json:"bucket"`
}

// CategoryGroupDTO is one category section of the grouped list.
type CategoryGroupDTO struct {
	Category pantry.Category `json:"category"`
	Label    string          `json:"label"`
	Items    []ItemDTO       `json:"items"`
}

// InventoryViewDTO is the derived pantry projection.
type InventoryViewDTO struct {
	ExpiringSoon []ItemDTO          `json:"expiring_soon"`
	Groups       []CategoryGroupDTO `json:"groups"`
	Total        int                `json:"total"`
}

// DecrementDTO reports the result of a consume gesture.
type DecrementDTO struct {
	Outcome pantry.DecrementOutcome `json:"outcome"`
	Removed bool                    `json:"removed"`
	Item    *ItemDTO                `json:"item,omitempty"`
}

// ScanResultDTO carries the AI's structured guess for pre-filling the
// add form. Identified is false when the model could not recognize the
// product; the form stays editable for manual entry.
type ScanResultDTO struct {
	Identified bool                 `json:"identified"`
	Analysis   *pantry.ItemAnalysis `json:"analysis,omitempty"`
}
