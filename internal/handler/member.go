package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bwillard/chorewheel/internal/chore"
	"github.com/bwillard/chorewheel/internal/model"
	"github.com/bwillard/chorewheel/internal/websocket"
)

type MemberHandler struct {
	svc    *chore.Service
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewMemberHandler(svc *chore.Service, hub *websocket.Hub, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{svc: svc, hub: hub, logger: logger}
}

func (h *MemberHandler) broadcast(action string, id int64) {
	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage("member", action, id))
	}
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	member, err := h.svc.CreateMember(req.Name)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.broadcast("created", member.ID)
	writeJSON(w, http.StatusCreated, member)
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.ListMembers()
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if members == nil {
		members = []model.Member{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.svc.DeleteMember(id); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.broadcast("deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
