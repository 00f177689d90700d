package handlers

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nourishly/v1/internal/domain/pantry"
	"github.com/nourishly/v1/internal/domain/profile"
	"github.com/nourishly/v1/internal/ports/inbound"
	"github.com/nourishly/v1/pkg/errors"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// PantryHandlers handles pantry inventory requests
type PantryHandlers struct {
	pantryService inbound.PantryService
	logger        *zap.Logger
}

// NewPantryHandlers creates a new pantry handlers instance
func NewPantryHandlers(pantryService inbound.PantryService, logger *zap.Logger) *PantryHandlers {
	return &PantryHandlers{
		pantryService: pantryService,
		logger:        logger,
	}
}

type itemRequest struct {
	Name             string `json:"name"`
	Quantity         string `json:"quantity"`
	Unit             string `json:"unit"`
	ExpiryDate       string `json:"expiry_date,omitempty"` // YYYY-MM-DD
	Category         string `json:"category,omitempty"`
	CategoryExplicit bool   `json:"category_explicit,omitempty"`
}

func parseExpiry(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, errors.New(errors.CodeBadRequest, "Invalid expiry date", "expiry_date must be YYYY-MM-DD")
	}
	return &parsed, nil
}

// ListItems handles GET /api/v1/pantry
func (h *PantryHandlers) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.pantryService.ListItems(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: items})
}

// AddItem handles POST /api/v1/pantry
func (h *PantryHandlers) AddItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	expiry, err := parseExpiry(req.ExpiryDate)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	item, err := h.pantryService.AddItem(r.Context(), inbound.AddItemCommand{
		Name:             req.Name,
		Quantity:         req.Quantity,
		Unit:             pantry.Unit(req.Unit),
		ExpiryDate:       expiry,
		Category:         pantry.Category(req.Category),
		CategoryExplicit: req.CategoryExplicit,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: item})
}

// UpdateItem handles PUT /api/v1/pantry/{id}
func (h *PantryHandlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	expiry, err := parseExpiry(req.ExpiryDate)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	item, err := h.pantryService.UpdateItem(r.Context(), inbound.UpdateItemCommand{
		ID:         chi.URLParam(r, "id"),
		Name:       req.Name,
		Quantity:   req.Quantity,
		Unit:       pantry.Unit(req.Unit),
		ExpiryDate: expiry,
		Category:   pantry.Category(req.Category),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: item})
}

// DeleteItem handles DELETE /api/v1/pantry/{id}
func (h *PantryHandlers) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.pantryService.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Item deleted"})
}

// DecrementItem handles POST /api/v1/pantry/{id}/decrement
// The request body carries the user's answer to the removal prompt; the
// service only removes the item when it is true.
func (h *PantryHandlers) DecrementItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Confirm bool `json:"confirm"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.pantryService.DecrementItem(r.Context(), chi.URLParam(r, "id"), func() bool {
		return req.Confirm
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: result})
}

// InventoryView handles GET /api/v1/pantry/view
func (h *PantryHandlers) InventoryView(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	view, err := h.pantryService.InventoryView(r.Context(), inbound.ViewQuery{
		Category: query.Get("category"),
		Search:   query.Get("search"),
		Language: profile.Language(query.Get("lang")),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: view})
}

// SuggestCategory handles GET /api/v1/pantry/suggest-category
func (h *PantryHandlers) SuggestCategory(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	category, matched := h.pantryService.SuggestCategory(name)
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: map[string]interface{}{
		"category": category,
		"matched":  matched,
	}})
}

// ScanItem handles POST /api/v1/pantry/scan
func (h *PantryHandlers) ScanItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageBase64 string `json:"image_base64"`
		Language    string `json:"language,omitempty"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil || len(image) == 0 {
		writeError(w, r, h.logger, errors.New(errors.CodeBadRequest, "Invalid image", "image_base64 must be non-empty base64"))
		return
	}

	result, err := h.pantryService.ScanItem(r.Context(), image, profile.Language(req.Language))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: result})
}
