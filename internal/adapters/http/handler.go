package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/felixstiven/wog-agent/internal/app/chat"
	"github.com/felixstiven/wog-agent/internal/app/leads"
	"github.com/felixstiven/wog-agent/internal/domain"
)

const version = "1.0.0"

// maxRequestBody caps any request body; chat messages are at most 2000
// characters, leads a few hundred.
const maxRequestBody = 64 * 1024

type Server struct {
	chat  *chat.Service
	leads *leads.Service
}

// NewServer wires the REST surface around the chat and leads services.
func NewServer(chatSvc *chat.Service, leadsSvc *leads.Service, logger zerolog.Logger, corsOrigins []string) http.Handler {
	s := &Server{chat: chatSvc, leads: leadsSvc}

	r := chi.NewRouter()

	r.Use(prometheusMetrics)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(logger))
	r.Use(requestContext)
	r.Use(chimw.Recoverer)
	r.Use(maxBodySize(maxRequestBody))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/chat", func(r chi.Router) {
			r.Post("/message", s.handleChatMessage)
			r.Get("/stats/{sessionID}", s.handleSessionStats)
			r.Delete("/clear/{sessionID}", s.handleClearSession)
			r.Get("/sessions", s.handleListSessions)
			r.Delete("/sessions/{sessionID}", s.handleDeleteSession)
		})

		r.Post("/leads", s.handleCreateLead)
		r.Get("/leads", s.handleListLeads)
	})

	return r
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type chatMessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatMessageResponse struct {
	Reply           string    `json:"reply"`
	SessionID       string    `json:"session_id"`
	Timestamp       time.Time `json:"timestamp"`
	TokensUsed      *int      `json:"tokens_used"`
	ShowContactForm bool      `json:"show_contact_form"`
}

type sessionStatsResponse struct {
	SessionID    string    `json:"session_id"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}

type sessionListResponse struct {
	Total    int                    `json:"total"`
	Sessions []sessionStatsResponse `json:"sessions"`
}

type ackResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type leadRequest struct {
	Company string `json:"company"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message,omitempty"`
}

type leadResponse struct {
	ID        string    `json:"id"`
	Company   string    `json:"company"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
}

// ─────────────────────────────────────────────
// Chat handlers
// ─────────────────────────────────────────────

func (s *Server) handleChatMessage(w http.ResponseWriter, r *http.Request) {
	var req chatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := s.chat.Handle(r.Context(), chat.HandleInput{
		Text:      req.Message,
		SessionID: domain.SessionID(req.SessionID),
	})
	if err != nil {
		s.error(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatMessageResponse{
		Reply:           out.Reply,
		SessionID:       string(out.SessionID),
		Timestamp:       out.Timestamp,
		TokensUsed:      out.TokensUsed,
		ShowContactForm: out.ShowContactForm,
	})
}

func (s *Server) handleSessionStats(w http.ResponseWriter, r *http.Request) {
	id := domain.SessionID(chi.URLParam(r, "sessionID"))

	stats, err := s.chat.Stats(id)
	if err != nil {
		s.error(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStatsResponse(*stats))
}

func (s *Server) handleClearSession(w http.ResponseWriter, r *http.Request) {
	id := domain.SessionID(chi.URLParam(r, "sessionID"))

	if err := s.chat.Clear(r.Context(), id); err != nil {
		s.error(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ackResponse{
		Message:   "history cleared",
		SessionID: string(id),
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	stats := s.chat.Sessions()

	resp := sessionListResponse{
		Total:    len(stats),
		Sessions: make([]sessionStatsResponse, 0, len(stats)),
	}
	for _, st := range stats {
		resp.Sessions = append(resp.Sessions, toStatsResponse(st))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := domain.SessionID(chi.URLParam(r, "sessionID"))

	if err := s.chat.Delete(r.Context(), id); err != nil {
		s.error(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ackResponse{
		Message:   "session deleted",
		SessionID: string(id),
	})
}

// ─────────────────────────────────────────────
// Lead handlers
// ─────────────────────────────────────────────

func (s *Server) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	var req leadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	lead, err := s.leads.Create(r.Context(), leads.CreateInput{
		Company: req.Company,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		s.error(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toLeadResponse(lead))
}

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(w, "limit must be an integer")
			return
		}
		limit = n
	}

	list, err := s.leads.List(r.Context(), limit)
	if err != nil {
		s.error(w, err)
		return
	}

	resp := make([]leadResponse, 0, len(list))
	for _, lead := range list {
		resp = append(resp, toLeadResponse(lead))
	}
	writeJSON(w, http.StatusOK, resp)
}

// ─────────────────────────────────────────────
// Utility handlers
// ─────────────────────────────────────────────

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "wog-agent",
		"version": version,
		"endpoints": map[string]string{
			"chat":     "/api/chat/message",
			"stats":    "/api/chat/stats/{session_id}",
			"clear":    "/api/chat/clear/{session_id}",
			"sessions": "/api/chat/sessions",
			"leads":    "/api/leads",
			"health":   "/health",
			"metrics":  "/metrics",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"service":         "wog-agent",
		"version":         version,
		"active_sessions": len(s.chat.Sessions()),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func toStatsResponse(st domain.SessionStats) sessionStatsResponse {
	return sessionStatsResponse{
		SessionID:    string(st.SessionID),
		MessageCount: st.MessageCount,
		CreatedAt:    st.CreatedAt,
		LastActiveAt: st.LastActiveAt,
	}
}

func toLeadResponse(lead *domain.Lead) leadResponse {
	return leadResponse{
		ID:        lead.ID,
		Company:   lead.Company,
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Message:   lead.Message,
		CreatedAt: lead.CreatedAt,
		Status:    string(lead.Status),
	}
}

// error maps domain errors onto HTTP status codes.
func (s *Server) error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, domain.ErrModelUnavailable):
		writeError(w, http.StatusServiceUnavailable, "the agent is temporarily unavailable, please retry")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, msg)
}
