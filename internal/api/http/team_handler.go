package http

import (
	"encoding/json"
	"net/http"

	"hackmate-backend/internal/domain"
	"hackmate-backend/internal/service"
)

type TeamHandler struct {
	teamService service.TeamService
}

func NewTeamHandler(teamService service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

type createTeamBody struct {
	EventID     int32    `json:"event_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TechStack   []string `json:"tech_stack"`
	MaxMembers  int32    `json:"max_members"`
}

// Create handles POST /api/v1/teams.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createTeamBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if body.EventID <= 0 || body.Name == "" {
		writeBadRequest(w, "event_id and name are required")
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), userID(r), body.EventID, body.Name, body.Description, body.TechStack, body.MaxMembers)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

// List handles GET /api/v1/teams.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	eventID, err := queryInt32(r, "event_id", 0)
	if err != nil || eventID <= 0 {
		writeBadRequest(w, "event_id is required")
		return
	}
	status := domain.TeamStatus(r.URL.Query().Get("status"))
	search := r.URL.Query().Get("search")

	teams, err := h.teamService.ListTeamsByEvent(r.Context(), eventID, status, search)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"teams": teams,
		"count": len(teams),
	})
}

// My handles GET /api/v1/teams/my.
func (h *TeamHandler) My(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.MyTeams(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"teams": teams,
		"count": len(teams),
	})
}

// Get handles GET /api/v1/teams/{id}.
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	team, err := h.teamService.GetTeam(r.Context(), teamID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

type joinBody struct {
	Role string `json:"role"`
}

// Join handles POST /api/v1/teams/{id}/join.
func (h *TeamHandler) Join(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var body joinBody
	if r.Body != nil {
		// Role is optional, so an empty body is fine.
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	team, err := h.teamService.JoinTeam(r.Context(), teamID, userID(r), body.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

type joinByCodeBody struct {
	InviteCode string `json:"invite_code"`
	Role       string `json:"role"`
}

// JoinByCode handles POST /api/v1/teams/join.
func (h *TeamHandler) JoinByCode(w http.ResponseWriter, r *http.Request) {
	var body joinByCodeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if body.InviteCode == "" {
		writeBadRequest(w, "invite_code is required")
		return
	}

	team, err := h.teamService.JoinByInviteCode(r.Context(), body.InviteCode, userID(r), body.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// Leave handles POST /api/v1/teams/{id}/leave.
func (h *TeamHandler) Leave(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	team, err := h.teamService.LeaveTeam(r.Context(), teamID, userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

type updateTeamBody struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	TechStack   []string `json:"tech_stack,omitempty"`
	MaxMembers  *int32   `json:"max_members,omitempty"`
}

// Update handles PATCH /api/v1/teams/{id}.
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var body updateTeamBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	team, err := h.teamService.UpdateTeam(r.Context(), teamID, userID(r), service.TeamPatch{
		Name:        body.Name,
		Description: body.Description,
		TechStack:   body.TechStack,
		MaxMembers:  body.MaxMembers,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// RemoveMember handles DELETE /api/v1/teams/{id}/members/{userId}.
func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	targetID, err := pathID(r, "userId")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	team, err := h.teamService.RemoveMember(r.Context(), teamID, userID(r), targetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}
