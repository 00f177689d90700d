// Package recipe contains the generated-recipe value object saved on a
// user profile and returned by the AI kitchen service.
package recipe

import (
	"errors"
	"time"
)

// Difficulty represents how demanding a recipe is to cook.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// GeneratedRecipe is a recipe produced by the AI backend from available
// ingredients. Once saved it lives on the user profile verbatim.
type GeneratedRecipe struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Ingredients     []string   `json:"ingredients"`
	Instructions    []string   `json:"instructions"`
	Calories        int        `json:"calories"`
	PrepTimeMinutes int        `json:"prep_time_minutes"`
	Cuisine         string     `json:"cuisine,omitempty"`
	MealType        string     `json:"meal_type,omitempty"`
	Difficulty      Difficulty `json:"difficulty,omitempty"`
	Servings        int        `json:"servings,omitempty"`
	Tips            []string   `json:"tips,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Validate checks that a recipe is complete enough to save.
func (r GeneratedRecipe) Validate() error {
	if r.ID == "" {
		return errors.New("recipe id is required")
	}
	if r.Title == "" {
		return errors.New("recipe title is required")
	}
	if len(r.Ingredients) == 0 {
		return errors.New("recipe must have at least one ingredient")
	}
	if len(r.Instructions) == 0 {
		return errors.New("recipe must have at least one instruction")
	}
	return nil
}
