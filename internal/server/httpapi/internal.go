package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/pulsepal/pulsepal/internal/server/models"
)

// Handlers for the trusted tool surface. All of them take an explicit
// user_id in the body because the caller acts on users' behalf, not as
// one of them.

func (s *Server) handleInternalContext(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID int64 `json:"user_id"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	snapshot, err := s.tools.UserContext(r.Context(), body.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleInternalMessageSave(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID        int64           `json:"user_id"`
		Role          string          `json:"role"`
		Content       string          `json:"content"`
		Source        string          `json:"source"`
		ModulateFlags json.RawMessage `json:"modulate_flags"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	msg, err := s.tools.SaveMessage(r.Context(), body.UserID, body.Role, body.Content, body.Source, body.ModulateFlags)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message_id": msg.ID})
}

func (s *Server) handleInternalEventsSave(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID          int64               `json:"user_id"`
		Events          []models.EventDraft `json:"events"`
		SourceMessageID *int64              `json:"source_message_id"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	n, err := s.tools.SaveEvents(r.Context(), body.UserID, body.Events, body.SourceMessageID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": n})
}

func (s *Server) handleInternalMemoryMerge(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID int64          `json:"user_id"`
		Patch  map[string]any `json:"patch"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	merged, err := s.tools.MergeMemory(r.Context(), body.UserID, body.Patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"memory": merged})
}

func (s *Server) handleInternalDailySave(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID int64           `json:"user_id"`
		Date   string          `json:"date"`
		Report json.RawMessage `json:"report"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	row, err := s.tools.SaveDailyReport(r.Context(), body.UserID, body.Date, body.Report)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"report_id": row.ID, "date": row.Date})
}

func (s *Server) handleInternalDemoSeed(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID int64 `json:"user_id"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	summary, err := s.tools.SeedDemo(r.Context(), body.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
