package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chessmate/chess-server-go/internal/middleware"
	"github.com/chessmate/chess-server-go/internal/model"
	"github.com/chessmate/chess-server-go/internal/service"
	"github.com/chessmate/chess-server-go/internal/util"
)

type GameHandler struct {
	gameService *service.GameService
}

func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

func (h *GameHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/{gameID}/end", h.EndGame)

	return r
}

// POST /api/games/{gameID}/end
func (h *GameHandler) EndGame(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	gameID := chi.URLParam(r, "gameID")
	if !util.IsValidUUID(gameID) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid game id"})
		return
	}

	var req struct {
		Result      string `json:"result"`
		WinnerColor string `json:"winnerColor"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	result, err := h.gameService.EndGame(r.Context(), service.EndGameParams{
		GameID:      gameID,
		CallerID:    user.ID,
		WinnerColor: model.Color(req.WinnerColor),
		Result:      req.Result,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
