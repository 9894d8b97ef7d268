package handler

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/chessmate/chess-server-go/internal/matchmaking"
	"github.com/chessmate/chess-server-go/internal/middleware"
)

type MatchmakingHandler struct {
	coordinator *matchmaking.Coordinator
}

func NewMatchmakingHandler(coordinator *matchmaking.Coordinator) *MatchmakingHandler {
	return &MatchmakingHandler{coordinator: coordinator}
}

func (h *MatchmakingHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/join", h.Join)
	r.Get("/status", h.Status)
	r.Delete("/leave", h.Leave)

	return r
}

// FriendGameRoutes covers the invitation flow, mounted under /friends/game.
func (h *MatchmakingHandler) FriendGameRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/invite", h.Invite)
	r.Get("/invitations", h.Invitations)
	r.Post("/accept", h.Accept)
	r.Post("/decline", h.Decline)
	r.Get("/status", h.SessionStatus)

	return r
}

// POST /api/matchmaking/join
func (h *MatchmakingHandler) Join(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	var req struct {
		Port int `json:"port"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	addr := matchmaking.NetworkAddress{IP: clientIP(r), Port: req.Port}

	result, err := h.coordinator.JoinQueue(r.Context(), user.ID, addr)
	if err != nil {
		writeError(w, err)
		return
	}

	if result.Status == matchmaking.StatusPaired {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  result.Status,
			"session": result.Session,
		})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{"status": result.Status})
}

// GET /api/matchmaking/status
func (h *MatchmakingHandler) Status(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	result := h.coordinator.PollStatus(user.ID)

	switch result.Status {
	case matchmaking.StatusPaired:
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  result.Status,
			"session": result.Session,
		})
	case matchmaking.StatusSearching:
		writeJSON(w, http.StatusAccepted, map[string]any{"status": result.Status})
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"status": result.Status})
	}
}

// DELETE /api/matchmaking/leave
func (h *MatchmakingHandler) Leave(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	if !h.coordinator.LeaveQueue(user.ID) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not in the matchmaking queue"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /api/friends/game/invite
func (h *MatchmakingHandler) Invite(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	var req struct {
		FriendID string `json:"friendId"`
		Port     int    `json:"port"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	addr := matchmaking.NetworkAddress{IP: clientIP(r), Port: req.Port}

	if err := h.coordinator.Invite(r.Context(), user.ID, req.FriendID, addr); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Invitation sent"})
}

// GET /api/friends/game/invitations
func (h *MatchmakingHandler) Invitations(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	invitations, err := h.coordinator.ListInvitations(r.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Str("userId", user.ID).Msg("failed to list invitations")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"invitations": invitations})
}

// POST /api/friends/game/accept
func (h *MatchmakingHandler) Accept(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	var req struct {
		FriendID string `json:"friendId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	if req.FriendID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "friendId is required"})
		return
	}

	session, err := h.coordinator.AcceptInvitation(r.Context(), user.ID, req.FriendID, clientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// POST /api/friends/game/decline
func (h *MatchmakingHandler) Decline(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	var req struct {
		FriendID string `json:"friendId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if err := h.coordinator.DeclineInvitation(user.ID, req.FriendID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Invitation declined"})
}

// GET /api/friends/game/status
//
// Delivers the caller's session descriptor once a sent invitation has
// been accepted. Delivery is destructive: a second poll returns 404.
func (h *MatchmakingHandler) SessionStatus(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	session, ok := h.coordinator.PollSession(user.ID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "No session ready"})
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// clientIP returns the request's source address without the port. The
// RealIP middleware has already resolved proxy headers upstream.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
