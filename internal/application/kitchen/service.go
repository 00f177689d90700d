// Package kitchen provides the application layer for AI recipe
// generation from the pantry and for the saved-recipe list.
package kitchen

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nourishly/v1/internal/domain/recipe"
	"github.com/nourishly/v1/internal/ports/inbound"
	"github.com/nourishly/v1/internal/ports/outbound"
	"github.com/nourishly/v1/pkg/errors"
	"go.uber.org/zap"
)

const recipeCacheTTL = 24 * time.Hour

// KitchenService implements the kitchen use cases
type KitchenService struct {
	profiles outbound.ProfileRepository
	ai       outbound.AIService
	cache    outbound.CacheRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewKitchenService creates a new kitchen service
func NewKitchenService(
	profiles outbound.ProfileRepository,
	ai outbound.AIService,
	cache outbound.CacheRepository,
	logger *zap.Logger,
) inbound.KitchenService {
	return &KitchenService{
		profiles: profiles,
		ai:       ai,
		cache:    cache,
		logger:   logger.Named("kitchen-service"),
		now:      time.Now,
	}
}

// CookFromPantry generates a recipe from the current pantry contents.
// Identical ingredient sets with identical constraints are served from
// the cache instead of a second model call.
func (s *KitchenService) CookFromPantry(ctx context.Context, cmd inbound.CookCommand) (*recipe.GeneratedRecipe, error) {
	prof, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, errors.NewPersistenceError("load profile", err)
	}

	ingredients := make([]string, 0, len(prof.Pantry))
	for _, item := range prof.Pantry {
		ingredients = append(ingredients, item.Name)
	}
	if len(ingredients) == 0 {
		return nil, errors.NewValidationError("pantry is empty, nothing to cook with")
	}

	constraints := outbound.RecipeConstraints{
		Cuisine:  cmd.Cuisine,
		MealType: cmd.MealType,
		Mood:     cmd.Mood,
		Language: cmd.Language,
	}

	key := cacheKey(ingredients, constraints)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var response outbound.RecipeResponse
		if err := json.Unmarshal(cached, &response); err == nil {
			s.logger.Debug("Recipe served from cache", zap.String("key", key))
			return s.responseToRecipe(&response), nil
		}
	}

	response, err := s.ai.GenerateRecipe(ctx, ingredients, constraints)
	if err != nil {
		return nil, errors.NewExternalServiceError("recipe generation", err)
	}
	if response == nil {
		return nil, errors.NewExternalServiceError("recipe generation", nil)
	}

	if encoded, err := json.Marshal(response); err == nil {
		if err := s.cache.Set(ctx, key, encoded, recipeCacheTTL); err != nil {
			s.logger.Debug("Recipe cache write failed", zap.Error(err))
		}
	}

	generated := s.responseToRecipe(response)
	s.logger.Info("Recipe generated from pantry",
		zap.String("recipe_id", generated.ID),
		zap.String("title", generated.Title),
		zap.Int("ingredients", len(ingredients)),
	)
	return generated, nil
}

// SaveRecipe stores a generated recipe on the profile, newest first.
func (s *KitchenService) SaveRecipe(ctx context.Context, r recipe.GeneratedRecipe) error {
	if err := r.Validate(); err != nil {
		return errors.NewValidationError(err.Error())
	}

	prof, err := s.profiles.Load(ctx)
	if err != nil {
		return errors.NewPersistenceError("load profile", err)
	}
	if err := prof.SaveRecipe(r); err != nil {
		return errors.NewValidationError(err.Error())
	}
	if err := s.profiles.Save(ctx, prof); err != nil {
		s.logger.Error("Failed to persist saved recipe", zap.Error(err))
	}
	return nil
}

// ForgetRecipe removes a saved recipe by id.
func (s *KitchenService) ForgetRecipe(ctx context.Context, recipeID string) error {
	prof, err := s.profiles.Load(ctx)
	if err != nil {
		return errors.NewPersistenceError("load profile", err)
	}
	prof.ForgetRecipe(recipeID)
	if err := s.profiles.Save(ctx, prof); err != nil {
		s.logger.Error("Failed to persist recipe removal", zap.Error(err))
	}
	return nil
}

// SavedRecipes returns the saved list, newest first.
func (s *KitchenService) SavedRecipes(ctx context.Context) ([]recipe.GeneratedRecipe, error) {
	prof, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, errors.NewPersistenceError("load profile", err)
	}
	return prof.SavedRecipes, nil
}

func (s *KitchenService) responseToRecipe(response *outbound.RecipeResponse) *recipe.GeneratedRecipe {
	return &recipe.GeneratedRecipe{
		ID:              uuid.NewString(),
		Title:           response.Title,
		Description:     response.Description,
		Ingredients:     response.Ingredients,
		Instructions:    response.Instructions,
		Calories:        response.Calories,
		PrepTimeMinutes: response.PrepTimeMinutes,
		Cuisine:         response.Cuisine,
		MealType:        response.MealType,
		Difficulty:      recipe.Difficulty(response.Difficulty),
		Servings:        response.Servings,
		Tips:            response.Tips,
		CreatedAt:       s.now(),
	}
}

// cacheKey hashes the sorted ingredient list plus constraints so the key
// is stable across pantry ordering.
func cacheKey(ingredients []string, constraints outbound.RecipeConstraints) string {
	sorted := make([]string, len(ingredients))
	copy(sorted, ingredients)
	sort.Strings(sorted)

	sum := sha256.Sum256([]byte(strings.Join(sorted, "|") + "|" +
		constraints.Cuisine + "|" + constraints.MealType + "|" +
		constraints.Mood + "|" + string(constraints.Language)))
	return "kitchen:recipe:" + hex.EncodeToString(sum[:16])
}
