package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/orchestrators/game"
)

// StartRequest is the body of POST /v1/sessions/{id}/start
type StartRequest struct {
	Intention string `json:"intention"`
}

// SourceRequest is the body of POST /v1/sessions/{id}/source
type SourceRequest struct {
	Source string `json:"source"`
}

// ResetRequest is the body of POST /v1/sessions/{id}/reset
type ResetRequest struct {
	Confirmed bool `json:"confirmed"`
}

func sessionID(r *http.Request) string {
	return chi.URLParam(r, "sessionID")
}

// reply writes out, or the error, as JSON
func reply(w http.ResponseWriter, status int, out any, err error) {
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, status, out)
}

// CreateSession handles POST /v1/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	out, err := h.gameService.CreateSession(r.Context(), &game.CreateSessionInput{})
	reply(w, http.StatusCreated, out, err)
}

// StartSession handles POST /v1/sessions/{id}/start
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if err := decode(r, &req); err != nil {
		Error(w, err)
		return
	}

	out, err := h.gameService.StartSession(r.Context(), &game.StartSessionInput{
		SessionID: sessionID(r),
		Intention: req.Intention,
	})
	reply(w, http.StatusOK, out, err)
}

// RollDice handles POST /v1/sessions/{id}/roll
func (h *Handler) RollDice(w http.ResponseWriter, r *http.Request) {
	out, err := h.gameService.RollDice(r.Context(), &game.RollDiceInput{SessionID: sessionID(r)})
	reply(w, http.StatusOK, out, err)
}

// ChooseSource handles POST /v1/sessions/{id}/source
func (h *Handler) ChooseSource(w http.ResponseWriter, r *http.Request) {
	var req SourceRequest
	if err := decode(r, &req); err != nil {
		Error(w, err)
		return
	}

	out, err := h.gameService.ChooseSource(r.Context(), &game.ChooseSourceInput{
		SessionID: sessionID(r),
		Source:    transformation.CardSource(req.Source),
	})
	reply(w, http.StatusOK, out, err)
}

// AcknowledgeCard handles POST /v1/sessions/{id}/acknowledge
func (h *Handler) AcknowledgeCard(w http.ResponseWriter, r *http.Request) {
	out, err := h.gameService.AcknowledgeCard(r.Context(), &game.AcknowledgeCardInput{SessionID: sessionID(r)})
	reply(w, http.StatusOK, out, err)
}

// ClearPain handles POST /v1/sessions/{id}/clear-pain
func (h *Handler) ClearPain(w http.ResponseWriter, r *http.Request) {
	out, err := h.gameService.ClearPain(r.Context(), &game.ClearPainInput{SessionID: sessionID(r)})
	reply(w, http.StatusOK, out, err)
}

// ResetSession handles POST /v1/sessions/{id}/reset
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := decode(r, &req); err != nil {
		Error(w, err)
		return
	}

	out, err := h.gameService.ResetSession(r.Context(), &game.ResetSessionInput{
		SessionID: sessionID(r),
		Confirmed: req.Confirmed,
	})
	reply(w, http.StatusOK, out, err)
}

// GetSession handles GET /v1/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	out, err := h.gameService.GetSession(r.Context(), &game.GetSessionInput{SessionID: sessionID(r)})
	reply(w, http.StatusOK, out, err)
}

// DeleteSession handles DELETE /v1/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if _, err := h.gameService.DeleteSession(r.Context(), &game.DeleteSessionInput{SessionID: sessionID(r)}); err != nil {
		Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
