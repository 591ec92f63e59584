package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fairlens/fairlens/infrastructure/journal"
	"github.com/fairlens/fairlens/internal/domain"
)

// defaultApplicationCount bounds the applications listing when no count
// parameter is given.
const defaultApplicationCount = 5

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleApplications(w http.ResponseWriter, r *http.Request) {
	count := defaultApplicationCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.respondJSON(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf("invalid count %q", raw)})
			return
		}
		count = parsed
	}

	records, err := s.applications.Load(count)
	if err != nil {
		s.respondError(w, err)
		return
	}

	applications := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		applications = append(applications, rec.Map())
	}
	s.respondJSON(w, http.StatusOK, applications)
}

// processRequest is the body of POST /api/process.
type processRequest struct {
	ApplicationID string `json:"application_id"`
	Framework     string `json:"framework"`
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}
	if req.ApplicationID == "" {
		s.respondJSON(w, http.StatusBadRequest, errorBody{Error: "missing application_id"})
		return
	}

	rec, err := s.applications.ByID(req.ApplicationID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	decision, err := s.processor.Process(r.Context(), rec, req.Framework)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, decision)
}

func (s *Server) handleDecisions(w http.ResponseWriter, _ *http.Request) {
	decisions := s.decisions.Decisions()
	if decisions == nil {
		decisions = []domain.Decision{}
	}
	s.respondJSON(w, http.StatusOK, decisions)
}

func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request) {
	decision, err := s.decisions.Decision(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, decision)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	verified, err := s.decisions.Verify(id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"decision_id":         id,
		"verified":            verified,
		"verification_method": "sha256_checksum",
		"timestamp":           time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if s.reporter == nil {
		s.respondJSON(w, http.StatusServiceUnavailable, errorBody{Error: "report generation is not configured"})
		return
	}

	id := chi.URLParam(r, "id")
	decision, err := s.decisions.Decision(id)
	if err != nil {
		s.respondError(w, err)
		return
	}

	data, err := s.reporter.Generate(decision)
	if err != nil {
		s.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "compliance_report_"+id+".pdf"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("writing report response", zap.Error(err))
	}
}

// explainRequest is the body of POST /api/explain.
type explainRequest struct {
	DecisionID string `json:"decision_id"`
	Mode       string `json:"mode"`
	Query      string `json:"query"`
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	if s.explainer == nil {
		s.respondJSON(w, http.StatusServiceUnavailable, errorBody{Error: "explanation service is not configured"})
		return
	}

	var req explainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}
	if req.DecisionID == "" {
		s.respondJSON(w, http.StatusBadRequest, errorBody{Error: "missing decision_id"})
		return
	}

	decision, err := s.decisions.Decision(req.DecisionID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	explanation, err := s.explainer.Explain(r.Context(), decision, req.Mode, req.Query)
	if err != nil {
		s.respondError(w, err)
		return
	}

	if s.journal != nil {
		s.journal.Record(journal.Entry{
			Step:          journal.StepExplanationRequest,
			ApplicationID: decision.ApplicationID,
			Framework:     decision.Framework,
			Message:       fmt.Sprintf("Explanation generated for decision %s", req.DecisionID),
			Details: map[string]any{
				"decision_id": req.DecisionID,
				"mode":        req.Mode,
				"query":       req.Query,
			},
		})
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"decision_id": req.DecisionID,
		"mode":        req.Mode,
		"explanation": explanation,
	})
}

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		s.respondJSON(w, http.StatusServiceUnavailable, errorBody{Error: "analysis journal is not configured"})
		return
	}

	q := journal.Query{
		ApplicationID: r.URL.Query().Get("application_id"),
		Step:          r.URL.Query().Get("step"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			s.respondJSON(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf("invalid limit %q", raw)})
			return
		}
		q.Limit = limit
	}
	s.respondJSON(w, http.StatusOK, s.journal.Entries(q))
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	if s.timeline == nil {
		s.respondJSON(w, http.StatusServiceUnavailable, errorBody{Error: "timeline is not configured"})
		return
	}

	applicationID := chi.URLParam(r, "applicationID")
	s.respondJSON(w, http.StatusOK, map[string]any{
		"application_id":   applicationID,
		"events":           s.timeline.Events(applicationID),
		"compliance_trend": s.timeline.ComplianceTrend(applicationID),
		"factor_trends":    s.timeline.TrustFactorTrends(applicationID),
	})
}
