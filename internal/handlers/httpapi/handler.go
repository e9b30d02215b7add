package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	apperrors "github.com/questline/questline/internal/errors"
	"github.com/questline/questline/internal/notify"
	"github.com/questline/questline/internal/services"
	"github.com/questline/questline/internal/services/shop"
)

const playerHeader = "X-Player-ID"

// Handler exposes the exploration engine over HTTP
type Handler struct {
	services *services.Provider
	hub      *notify.Hub
}

// HandlerConfig holds configuration for the handler
type HandlerConfig struct {
	Services *services.Provider // Required
	Hub      *notify.Hub        // Optional, enables the websocket endpoint
}

// NewHandler creates a new HTTP handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg.Services == nil {
		panic("services provider is required")
	}

	return &Handler{
		services: cfg.Services,
		hub:      cfg.Hub,
	}
}

// Routes registers every endpoint on a fresh mux
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/dungeons", h.listDungeons)
	mux.HandleFunc("POST /api/dungeons/{slug}/enter", h.enter)
	mux.HandleFunc("POST /api/exploration/explore", h.explore)
	mux.HandleFunc("POST /api/exploration/fight", h.fight)
	mux.HandleFunc("POST /api/exploration/continue", h.resume)
	mux.HandleFunc("POST /api/exploration/summary", h.summary)
	mux.HandleFunc("POST /api/exploration/shop", h.shop)

	if h.hub != nil {
		mux.Handle("GET /ws", h.hub)
	}

	return mux
}

func (h *Handler) listDungeons(w http.ResponseWriter, r *http.Request) {
	dungeons, err := h.services.CatalogService.ListActive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	type entry struct {
		Slug     string `json:"slug"`
		Name     string `json:"name"`
		MaxFloor int    `json:"max_floor"`
	}

	out := make([]entry, 0, len(dungeons))
	for _, d := range dungeons {
		out = append(out, entry{Slug: d.Slug, Name: d.Name, MaxFloor: d.MaxFloor()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"dungeons": out})
}

func (h *Handler) enter(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayer(w, r)
	if !ok {
		return
	}

	result, err := h.services.ExplorationService.Enter(r.Context(), playerID, r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) explore(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayer(w, r)
	if !ok {
		return
	}

	outcome, err := h.services.ExplorationService.Explore(r.Context(), playerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *Handler) fight(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayer(w, r)
	if !ok {
		return
	}

	outcome, err := h.services.ExplorationService.Fight(r.Context(), playerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *Handler) resume(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayer(w, r)
	if !ok {
		return
	}

	outcome, err := h.services.ExplorationService.Continue(r.Context(), playerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayer(w, r)
	if !ok {
		return
	}

	result, err := h.services.ExplorationService.Summarize(r.Context(), playerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type shopRequest struct {
	Action string `json:"action"`
	ItemID string `json:"item_id"`
}

func (h *Handler) shop(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayer(w, r)
	if !ok {
		return
	}

	var req shopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidArgument("invalid request body"))
		return
	}

	result, err := h.services.ShopService.Interact(r.Context(), playerID, req.Action, req.ItemID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := map[string]any{
		"action": result.Action,
		"gold":   result.Gold,
		"left":   result.Left,
	}
	if result.Action == shop.ActionBuy {
		out["receipt_id"] = result.ReceiptID
		out["item"] = result.Item
	}
	writeJSON(w, http.StatusOK, out)
}

func requirePlayer(w http.ResponseWriter, r *http.Request) (string, bool) {
	playerID := r.Header.Get(playerHeader)
	if playerID == "" {
		writeError(w, apperrors.InvalidArgument("X-Player-ID header is required"))
		return "", false
	}
	return playerID, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := apperrors.GetCode(err)

	switch code {
	case apperrors.CodeInvalidArgument, apperrors.CodeFailedPrecondition, apperrors.CodeValidation:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeConflict:
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}

	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    string(code),
			"message": err.Error(),
		},
	})
}
