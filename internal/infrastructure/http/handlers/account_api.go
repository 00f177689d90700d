package handlers

import (
	"net/http"

	"github.com/nourishly/v1/internal/domain/profile"
	"github.com/nourishly/v1/internal/ports/inbound"
	"go.uber.org/zap"
)

// AccountHandlers handles profile-level requests
type AccountHandlers struct {
	accountService inbound.AccountService
	logger         *zap.Logger
}

// NewAccountHandlers creates a new account handlers instance
func NewAccountHandlers(accountService inbound.AccountService, logger *zap.Logger) *AccountHandlers {
	return &AccountHandlers{
		accountService: accountService,
		logger:         logger,
	}
}

// GetProfile handles GET /api/v1/profile
func (h *AccountHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	prof, err := h.accountService.Get(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: prof})
}

// UpdateDailyStats handles PUT /api/v1/profile/stats
func (h *AccountHandlers) UpdateDailyStats(w http.ResponseWriter, r *http.Request) {
	var stats profile.DailyStats
	if err := decodeBody(r, &stats); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	prof, err := h.accountService.UpdateDailyStats(r.Context(), stats)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: prof.DailyStats})
}

// UpdateSettings handles PUT /api/v1/profile/settings
func (h *AccountHandlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings profile.Settings
	if err := decodeBody(r, &settings); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	prof, err := h.accountService.UpdateSettings(r.Context(), settings)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: prof.Settings})
}

// CompleteOnboarding handles POST /api/v1/profile/onboarding
func (h *AccountHandlers) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Goals              []string `json:"goals,omitempty"`
		DietaryPreferences []string `json:"dietary_preferences,omitempty"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	prof, err := h.accountService.CompleteOnboarding(r.Context(), req.Goals, req.DietaryPreferences)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: prof})
}
