// internal/matching/handlers.go

package matching

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/kiekky-matching/internal/auth"
	"github.com/imadgeboyega/kiekky-matching/internal/common/logging"
	"github.com/imadgeboyega/kiekky-matching/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RecordInteraction handles POST /interactions
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	var req RecordInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if !authorizeSubject(w, r, req.UserID) {
		return
	}

	if err := h.service.RecordInteraction(r.Context(), req.ToEvent()); err != nil {
		h.writeError(w, r, err, "Failed to record interaction")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.Response{Success: true})
}

// GetPreferences handles GET /preferences/{userId}
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if !authorizeSubject(w, r, userID) {
		return
	}

	prefs, err := h.service.GetPreferences(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err, "Failed to derive preferences")
		return
	}

	utils.SuccessResponse(w, prefs, http.StatusOK)
}

// GetCompatibility handles GET /compatibility/{userId}/{targetId}
func (h *Handler) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if !authorizeSubject(w, r, vars["userId"]) {
		return
	}

	result, err := h.service.GetCompatibility(r.Context(), vars["userId"], vars["targetId"])
	if err != nil {
		h.writeError(w, r, err, "Failed to calculate compatibility")
		return
	}

	utils.SuccessResponse(w, result, http.StatusOK)
}

// InvalidateProfile handles POST /profiles/{userId}/invalidate
func (h *Handler) InvalidateProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if !authorizeSubject(w, r, userID) {
		return
	}

	if err := h.service.InvalidateProfile(r.Context(), userID); err != nil {
		h.writeError(w, r, err, "Failed to invalidate profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Success: true})
}

// authorizeSubject writes 403 and returns false when an authenticated caller
// acts for someone else. Anonymous requests pass when auth is optional.
func authorizeSubject(w http.ResponseWriter, r *http.Request, userID string) bool {
	callerID, ok := auth.GetUserIDFromContext(r.Context())
	if ok && callerID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Cannot act for another user")
		return false
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		utils.ValidationErrorResponse(w, "Invalid interaction", validationErr.Fields)
		return
	}

	if errors.Is(err, ErrProfileMissing) {
		utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
		return
	}

	logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg(fallback)
	utils.RespondWithError(w, http.StatusInternalServerError, fallback)
}
