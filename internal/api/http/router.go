package http

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"

	"hackmate-backend/internal/security"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Matchmaking  *MatchmakingHandler
	Match        *MatchHandler
	Team         *TeamHandler
	Profile      *ProfileHandler
	Event        *EventHandler
	Notification *NotificationHandler
}

// NewRouter mounts the versioned API behind bearer-token auth. The health
// endpoint stays outside the auth boundary so health checks need no credentials.
func NewRouter(h Handlers, verifier security.TokenVerifier, db *sql.DB) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", healthHandler(db)).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(verifier))

	api.HandleFunc("/matchmaking/candidates", h.Matchmaking.FindCandidates).Methods(http.MethodGet)

	api.HandleFunc("/matches", h.Match.Send).Methods(http.MethodPost)
	api.HandleFunc("/matches", h.Match.List).Methods(http.MethodGet)
	api.HandleFunc("/matches/mutual", h.Match.Mutual).Methods(http.MethodGet)
	api.HandleFunc("/matches/stats", h.Match.Stats).Methods(http.MethodGet)
	api.HandleFunc("/matches/{id:[0-9]+}/respond", h.Match.Respond).Methods(http.MethodPost)
	api.HandleFunc("/matches/{id:[0-9]+}", h.Match.Cancel).Methods(http.MethodDelete)

	api.HandleFunc("/teams", h.Team.Create).Methods(http.MethodPost)
	api.HandleFunc("/teams", h.Team.List).Methods(http.MethodGet)
	api.HandleFunc("/teams/my", h.Team.My).Methods(http.MethodGet)
	api.HandleFunc("/teams/join", h.Team.JoinByCode).Methods(http.MethodPost)
	api.HandleFunc("/teams/{id:[0-9]+}", h.Team.Get).Methods(http.MethodGet)
	api.HandleFunc("/teams/{id:[0-9]+}", h.Team.Update).Methods(http.MethodPatch)
	api.HandleFunc("/teams/{id:[0-9]+}/join", h.Team.Join).Methods(http.MethodPost)
	api.HandleFunc("/teams/{id:[0-9]+}/leave", h.Team.Leave).Methods(http.MethodPost)
	api.HandleFunc("/teams/{id:[0-9]+}/members/{userId:[0-9]+}", h.Team.RemoveMember).Methods(http.MethodDelete)

	api.HandleFunc("/profiles/me", h.Profile.Me).Methods(http.MethodGet)
	api.HandleFunc("/profiles/{id:[0-9]+}", h.Profile.Get).Methods(http.MethodGet)

	api.HandleFunc("/events", h.Event.List).Methods(http.MethodGet)
	api.HandleFunc("/events/{id:[0-9]+}", h.Event.Get).Methods(http.MethodGet)

	api.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id:[0-9]+}/read", h.Notification.MarkAsRead).Methods(http.MethodPost)

	return r
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
