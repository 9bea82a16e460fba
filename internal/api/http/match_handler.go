package http

import (
	"encoding/json"
	"net/http"

	"hackmate-backend/internal/domain"
	"hackmate-backend/internal/service"
)

type MatchHandler struct {
	matchService service.MatchService
}

func NewMatchHandler(matchService service.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

type sendMatchRequestBody struct {
	RecipientID int32  `json:"recipient_id"`
	EventID     int32  `json:"event_id"`
	TeamID      *int32 `json:"team_id,omitempty"`
	Message     string `json:"message"`
}

// Send handles POST /api/v1/matches.
func (h *MatchHandler) Send(w http.ResponseWriter, r *http.Request) {
	var body sendMatchRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if body.RecipientID <= 0 || body.EventID <= 0 {
		writeBadRequest(w, "recipient_id and event_id are required")
		return
	}

	req, err := h.matchService.SendMatchRequest(r.Context(), userID(r), body.RecipientID, body.EventID, body.TeamID, body.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// List handles GET /api/v1/matches.
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	direction := r.URL.Query().Get("direction")
	switch direction {
	case "", "sent", "received":
	default:
		writeBadRequest(w, "direction must be sent or received")
		return
	}
	status := domain.MatchRequestStatus(r.URL.Query().Get("status"))

	requests, err := h.matchService.ListRequests(r.Context(), userID(r), direction, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"requests": requests,
		"count":    len(requests),
	})
}

// Mutual handles GET /api/v1/matches/mutual.
func (h *MatchHandler) Mutual(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchService.MutualMatches(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"matches": matches,
		"count":   len(matches),
	})
}

// Stats handles GET /api/v1/matches/stats.
func (h *MatchHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.matchService.RequestStats(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type respondBody struct {
	Decision domain.MatchDecision `json:"decision"`
}

type respondResponse struct {
	Request *domain.MatchRequest `json:"request"`
	Team    *domain.Team         `json:"team,omitempty"`
}

// Respond handles POST /api/v1/matches/{id}/respond.
func (h *MatchHandler) Respond(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var body respondBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	req, team, err := h.matchService.RespondToRequest(r.Context(), requestID, userID(r), body.Decision)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, respondResponse{Request: req, Team: team})
}

// Cancel handles DELETE /api/v1/matches/{id}.
func (h *MatchHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	req, err := h.matchService.CancelRequest(r.Context(), requestID, userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}
