package server

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/bwillard/chorewheel/internal/chore"
	"github.com/bwillard/chorewheel/internal/handler"
	"github.com/bwillard/chorewheel/internal/middleware"
	"github.com/bwillard/chorewheel/internal/store"
	ws "github.com/bwillard/chorewheel/internal/websocket"
)

type Server struct {
	db      *sql.DB
	hub     *ws.Hub
	choreH  *handler.ChoreHandler
	memberH *handler.MemberHandler
	logger  *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	choreStore := store.NewChoreStore(db)
	memberStore := store.NewMemberStore(db)
	svc := chore.NewService(choreStore, memberStore)

	return &Server{
		db:      db,
		hub:     hub,
		choreH:  handler.NewChoreHandler(svc, hub, logger.With("component", "chore")),
		memberH: handler.NewMemberHandler(svc, hub, logger.With("component", "member")),
		logger:  logger,
	}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Chore API routes
	mux.HandleFunc("POST /api/chores", s.choreH.Create)
	mux.HandleFunc("GET /api/chores", s.choreH.List)
	mux.HandleFunc("PUT /api/chores/{id}", s.choreH.Update)
	mux.HandleFunc("DELETE /api/chores/{id}", s.choreH.Delete)
	mux.HandleFunc("POST /api/chores/{id}/assign", s.choreH.Assign)
	mux.HandleFunc("POST /api/chores/{id}/complete", s.choreH.Complete)
	mux.HandleFunc("GET /api/chores/{id}/history", s.choreH.History)

	// Member API routes
	mux.HandleFunc("POST /api/members", s.memberH.Create)
	mux.HandleFunc("GET /api/members", s.memberH.List)
	mux.HandleFunc("DELETE /api/members/{id}", s.memberH.Delete)

	// Realtime sync
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}
