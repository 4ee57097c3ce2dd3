package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/felixstiven/wog-agent/internal/domain"
	"github.com/felixstiven/wog-agent/internal/metrics"
	"github.com/felixstiven/wog-agent/internal/observability"
)

// MaxMessageLen caps inbound message text, matching the frontend contract.
const MaxMessageLen = 2000

const (
	defaultHistoryWindow = 20
	defaultModelTimeout  = 30 * time.Second
)

// Service orchestrates one chat turn: resolve the session, append the user
// message, call the model with the session history, append the reply.
type Service struct {
	model  domain.ModelClient
	store  domain.SessionStore
	logger zerolog.Logger

	historyWindow int
	modelTimeout  time.Duration
	now           func() time.Time
}

// Options tune the orchestrator; zero values pick the defaults.
type Options struct {
	// HistoryWindow bounds how many messages are sent as model context.
	HistoryWindow int
	// ModelTimeout bounds the model call; a timeout surfaces as
	// domain.ErrModelUnavailable.
	ModelTimeout time.Duration
}

func NewService(model domain.ModelClient, store domain.SessionStore, logger zerolog.Logger, opts Options) *Service {
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = defaultHistoryWindow
	}
	if opts.ModelTimeout <= 0 {
		opts.ModelTimeout = defaultModelTimeout
	}

	return &Service{
		model:         model,
		store:         store,
		logger:        logger,
		historyWindow: opts.HistoryWindow,
		modelTimeout:  opts.ModelTimeout,
		now:           time.Now,
	}
}

type HandleInput struct {
	Text string
	// SessionID is empty on the first message of a conversation; an
	// unknown non-empty id is an error, not a new conversation.
	SessionID domain.SessionID
}

type HandleOutput struct {
	Reply           string
	SessionID       domain.SessionID
	Timestamp       time.Time
	TokensUsed      *int
	ShowContactForm bool
}

func (s *Service) Handle(ctx context.Context, in HandleInput) (*HandleOutput, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: message is empty", domain.ErrInvalidInput)
	}
	if len(in.Text) > MaxMessageLen {
		return nil, fmt.Errorf("%w: message exceeds %d characters", domain.ErrInvalidInput, MaxMessageLen)
	}

	session, created, err := s.resolveSession(in.SessionID)
	if err != nil {
		return nil, err
	}

	log := observability.LoggerFromContext(ctx, s.logger).With().
		Str("session_id", string(session.ID)).
		Bool("new_session", created).
		Logger()

	if err := s.store.Append(session.ID, domain.Message{
		Role:      domain.RoleUser,
		Text:      text,
		CreatedAt: s.now(),
	}); err != nil {
		return nil, err
	}

	history, err := s.contextWindow(session.ID)
	if err != nil {
		return nil, err
	}

	reply, err := s.generate(ctx, text, history)
	if err != nil {
		// The user message stays in history so a retry reuses the context.
		log.Error().Err(err).Msg("model call failed")
		return nil, err
	}

	now := s.now()
	if err := s.store.Append(session.ID, domain.Message{
		Role:      domain.RoleAgent,
		Text:      reply.Text,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	metrics.ChatMessagesTotal.Inc()
	log.Info().Bool("show_contact_form", reply.ShowContactForm).Msg("chat turn completed")

	return &HandleOutput{
		Reply:           reply.Text,
		SessionID:       session.ID,
		Timestamp:       now,
		TokensUsed:      reply.TokensUsed,
		ShowContactForm: reply.ShowContactForm,
	}, nil
}

// resolveSession creates a session when no id was supplied. A supplied but
// unknown id is surfaced as ErrSessionNotFound instead of silently starting
// a new conversation the client did not ask for.
func (s *Service) resolveSession(id domain.SessionID) (*domain.Session, bool, error) {
	if id == "" {
		session, err := s.store.Create()
		if err != nil {
			return nil, false, err
		}
		metrics.SessionsActive.Inc()
		return session, true, nil
	}

	session, err := s.store.Get(id)
	if err != nil {
		return nil, false, err
	}
	return session, false, nil
}

// contextWindow returns the most recent messages up to the configured bound,
// excluding the just-appended user message (it is passed separately).
func (s *Service) contextWindow(id domain.SessionID) ([]domain.Message, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	history := session.History
	if len(history) > 0 {
		history = history[:len(history)-1]
	}
	if len(history) > s.historyWindow {
		history = history[len(history)-s.historyWindow:]
	}
	return history, nil
}

func (s *Service) generate(ctx context.Context, text string, history []domain.Message) (*domain.ModelReply, error) {
	mctx, cancel := context.WithTimeout(ctx, s.modelTimeout)
	defer cancel()

	start := time.Now()
	reply, err := s.model.GenerateReply(mctx, text, history)
	metrics.ModelLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		reason := "error"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "timeout"
		}
		metrics.ModelErrors.WithLabelValues(reason).Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	return reply, nil
}

// Stats returns the counters for one session.
func (s *Service) Stats(id domain.SessionID) (*domain.SessionStats, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &domain.SessionStats{
		SessionID:    session.ID,
		MessageCount: session.MessageCount,
		CreatedAt:    session.CreatedAt,
		LastActiveAt: session.LastActiveAt,
	}, nil
}

// Clear empties a session's history; the session keeps its id.
func (s *Service) Clear(ctx context.Context, id domain.SessionID) error {
	if err := s.store.Clear(id); err != nil {
		return err
	}
	logger := observability.LoggerFromContext(ctx, s.logger)
	logger.Info().
		Str("session_id", string(id)).
		Msg("session history cleared")
	return nil
}

// Delete removes a session entirely, freeing its memory.
func (s *Service) Delete(ctx context.Context, id domain.SessionID) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	metrics.SessionsActive.Dec()
	logger := observability.LoggerFromContext(ctx, s.logger)
	logger.Info().
		Str("session_id", string(id)).
		Msg("session deleted")
	return nil
}

// Sessions lists snapshot stats for every active session.
func (s *Service) Sessions() []domain.SessionStats {
	return s.store.List()
}
