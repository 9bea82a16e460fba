package http

import (
	"net/http"

	"hackmate-backend/internal/service"
)

type MatchmakingHandler struct {
	matchmakingService service.MatchmakingService
	defaultMinScore    float64
	defaultLimit       int32
}

func NewMatchmakingHandler(matchmakingService service.MatchmakingService, defaultMinScore float64, defaultLimit int32) *MatchmakingHandler {
	return &MatchmakingHandler{
		matchmakingService: matchmakingService,
		defaultMinScore:    defaultMinScore,
		defaultLimit:       defaultLimit,
	}
}

// FindCandidates handles GET /api/v1/matchmaking/candidates.
func (h *MatchmakingHandler) FindCandidates(w http.ResponseWriter, r *http.Request) {
	eventID, err := queryInt32(r, "event_id", 0)
	if err != nil || eventID <= 0 {
		writeBadRequest(w, "event_id is required")
		return
	}
	minScore, err := queryFloat64(r, "min_score", h.defaultMinScore)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	limit, err := queryInt32(r, "limit", h.defaultLimit)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	candidates, err := h.matchmakingService.FindCandidates(r.Context(), userID(r), eventID, minScore, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"candidates": candidates,
		"count":      len(candidates),
	})
}
