package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bwillard/chorewheel/internal/chore"
	"github.com/bwillard/chorewheel/internal/model"
	"github.com/bwillard/chorewheel/internal/websocket"
)

type ChoreHandler struct {
	svc    *chore.Service
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewChoreHandler(svc *chore.Service, hub *websocket.Hub, logger *slog.Logger) *ChoreHandler {
	return &ChoreHandler{svc: svc, hub: hub, logger: logger}
}

func (h *ChoreHandler) broadcast(action string, id int64) {
	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage("chore", action, id))
	}
}

type createChoreRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Cadence     string `json:"cadence"`
	DueDate     string `json:"due_date"`
	AssignedTo  *int64 `json:"assigned_to"`
}

func (h *ChoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createChoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	created, err := h.svc.Create(chore.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Cadence:     req.Cadence,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.broadcast("created", created.ID)
	writeJSON(w, http.StatusCreated, created)
}

// List returns all chores ordered for display. The optional viewer query
// parameter identifies the acting member so their claims sort first.
func (h *ChoreHandler) List(w http.ResponseWriter, r *http.Request) {
	var viewerID *int64
	if v := r.URL.Query().Get("viewer"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid viewer id"})
			return
		}
		viewerID = &id
	}

	views, err := h.svc.List(viewerID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if views == nil {
		views = []chore.View{}
	}
	writeJSON(w, http.StatusOK, views)
}

type editChoreRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Cadence     *string `json:"cadence"`
	DueDate     *string `json:"due_date"`
}

func (h *ChoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req editChoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	updated, err := h.svc.Edit(id, chore.EditInput{
		Name:        req.Name,
		Description: req.Description,
		Cadence:     req.Cadence,
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.broadcast("updated", id)
	writeJSON(w, http.StatusOK, updated)
}

func (h *ChoreHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req struct {
		MemberID *int64 `json:"member_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	assigned, err := h.svc.Assign(id, req.MemberID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.broadcast("assigned", id)
	writeJSON(w, http.StatusOK, assigned)
}

func (h *ChoreHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req struct {
		CompletedBy *int64 `json:"completed_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	completed, err := h.svc.Complete(id, req.CompletedBy)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.broadcast("completed", id)
	writeJSON(w, http.StatusOK, completed)
}

func (h *ChoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.svc.Delete(id); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.broadcast("deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChoreHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	history, err := h.svc.History(id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if history == nil {
		history = []model.ChoreCompletion{}
	}
	writeJSON(w, http.StatusOK, history)
}
