package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nourishly/v1/internal/domain/profile"
	"github.com/nourishly/v1/internal/domain/recipe"
	"github.com/nourishly/v1/internal/ports/inbound"
	"go.uber.org/zap"
)

// KitchenHandlers handles recipe generation and saved recipes
type KitchenHandlers struct {
	kitchenService inbound.KitchenService
	logger         *zap.Logger
}

// NewKitchenHandlers creates a new kitchen handlers instance
func NewKitchenHandlers(kitchenService inbound.KitchenService, logger *zap.Logger) *KitchenHandlers {
	return &KitchenHandlers{
		kitchenService: kitchenService,
		logger:         logger,
	}
}

// Cook handles POST /api/v1/kitchen/cook
func (h *KitchenHandlers) Cook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Cuisine  string `json:"cuisine,omitempty"`
		MealType string `json:"meal_type,omitempty"`
		Mood     string `json:"mood,omitempty"`
		Language string `json:"language,omitempty"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	generated, err := h.kitchenService.CookFromPantry(r.Context(), inbound.CookCommand{
		Cuisine:  req.Cuisine,
		MealType: req.MealType,
		Mood:     req.Mood,
		Language: profile.Language(req.Language),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: generated})
}

// SaveRecipe handles POST /api/v1/kitchen/recipes
func (h *KitchenHandlers) SaveRecipe(w http.ResponseWriter, r *http.Request) {
	var req recipe.GeneratedRecipe
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.kitchenService.SaveRecipe(r.Context(), req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Message: "Recipe saved"})
}

// ForgetRecipe handles DELETE /api/v1/kitchen/recipes/{id}
func (h *KitchenHandlers) ForgetRecipe(w http.ResponseWriter, r *http.Request) {
	if err := h.kitchenService.ForgetRecipe(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Recipe removed"})
}

// SavedRecipes handles GET /api/v1/kitchen/recipes
func (h *KitchenHandlers) SavedRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.kitchenService.SavedRecipes(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: recipes})
}
