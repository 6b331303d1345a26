// Package httpapi exposes the PulsePal service over HTTP: public auth
// endpoints, the authenticated user surface, and the shared-secret
// internal tool surface.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/pulsepal/pulsepal/internal/logging"
	"github.com/pulsepal/pulsepal/internal/server/config"
	"github.com/pulsepal/pulsepal/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg      *config.Config
	logger   logging.Logger
	users    *services.UserService
	chat     *services.ChatService
	reports  *services.ReportService
	history  *services.HistoryService
	feedback *services.FeedbackService
	tools    *services.ToolService
}

func NewServer(cfg *config.Config, logger logging.Logger,
	users *services.UserService, chat *services.ChatService, reports *services.ReportService,
	history *services.HistoryService, feedback *services.FeedbackService, tools *services.ToolService) *Server {
	return &Server{
		cfg:      cfg,
		logger:   logger.With("module", "http_server"),
		users:    users,
		chat:     chat,
		reports:  reports,
		history:  history,
		feedback: feedback,
		tools:    tools,
	}
}

// Handler builds the full route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /auth/signup", s.handleSignup)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/demo", s.handleDemoLogin)

	mux.HandleFunc("POST /chat/send", s.withAuth(s.handleChatSend))
	mux.HandleFunc("GET /chat/thread", s.withAuth(s.handleChatThread))
	mux.HandleFunc("POST /daily/run", s.withAuth(s.handleDailyRun))
	mux.HandleFunc("GET /insights/latest", s.withAuth(s.handleLatestInsight))
	mux.HandleFunc("GET /timeline", s.withAuth(s.handleTimeline))
	mux.HandleFunc("POST /feedback", s.withAuth(s.handleFeedback))

	mux.HandleFunc("POST /internal/user/context", s.withInternalKey(s.handleInternalContext))
	mux.HandleFunc("POST /internal/message/save", s.withInternalKey(s.handleInternalMessageSave))
	mux.HandleFunc("POST /internal/events/save", s.withInternalKey(s.handleInternalEventsSave))
	mux.HandleFunc("POST /internal/memory/merge", s.withInternalKey(s.handleInternalMemoryMerge))
	mux.HandleFunc("POST /internal/daily/save", s.withInternalKey(s.handleInternalDailySave))
	mux.HandleFunc("POST /internal/demo/seed", s.withInternalKey(s.handleInternalDemoSeed))

	return s.withRequestLog(s.withRecovery(mux))
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.cfg.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
