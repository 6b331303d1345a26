package httpapi

import (
	"net/http"
	"strconv"

	"github.com/pulsepal/pulsepal/internal/server/models"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"integrations": map[string]bool{
			"gemini_configured":        s.cfg.GeminiAPIKey != "",
			"openai_configured":        s.cfg.OpenAIAPIKey != "",
			"agent_configured":         s.cfg.AgentBaseURL != "" && s.cfg.AgentAPIKey != "",
			"message_agent_configured": s.cfg.AgentMessageID != "",
			"daily_agent_configured":   s.cfg.AgentDailyID != "",
			"internal_api_configured":  s.cfg.InternalAPIKey != "",
		},
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Timezone string `json:"timezone"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.users.SignUp(r.Context(), body.Email, body.Password, body.Timezone)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.users.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDemoLogin(w http.ResponseWriter, r *http.Request) {
	result, err := s.users.DemoLogin(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleChatSend(w http.ResponseWriter, r *http.Request, userID int64) {
	var body struct {
		Content string `json:"content"`
		Source  string `json:"source"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.chat.HandleMessage(r.Context(), userID, body.Content, body.Source)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleChatThread(w http.ResponseWriter, r *http.Request, userID int64) {
	msgs, err := s.history.Thread(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

func (s *Server) handleDailyRun(w http.ResponseWriter, r *http.Request, userID int64) {
	var body struct {
		UserID *int64 `json:"user_id"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	target := userID
	if body.UserID != nil && *body.UserID != 0 {
		target = *body.UserID
	}

	result, err := s.reports.RunDaily(r.Context(), target)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleLatestInsight(w http.ResponseWriter, r *http.Request, userID int64) {
	report, err := s.history.LatestInsight(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if report == nil {
		writeJSON(w, http.StatusOK, map[string]any{"report": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"report": report})
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request, userID int64) {
	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil {
			days = parsed
		}
	}

	events, err := s.history.Timeline(r.Context(), userID, days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request, userID int64) {
	var body struct {
		MessageID     *int64 `json:"message_id"`
		DailyReportID *int64 `json:"daily_report_id"`
		Helpful       *bool  `json:"helpful"`
		Notes         string `json:"notes"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.Helpful == nil {
		s.writeError(w, r, validationError("helpful is required"))
		return
	}

	if err := s.feedback.Add(r.Context(), userID, body.MessageID, body.DailyReportID, *body.Helpful, body.Notes); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
