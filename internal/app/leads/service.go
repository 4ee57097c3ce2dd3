package leads

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/felixstiven/wog-agent/internal/domain"
	"github.com/felixstiven/wog-agent/internal/metrics"
	"github.com/felixstiven/wog-agent/internal/observability"
	"github.com/felixstiven/wog-agent/internal/sanitize"
)

const (
	maxNameLen    = 100
	maxMessageLen = 500
	defaultLimit  = 100
)

// Service validates, sanitizes and persists contact-form leads.
type Service struct {
	store  domain.LeadStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewService(store domain.LeadStore, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

type CreateInput struct {
	Company string
	Name    string
	Email   string
	Phone   string // optional
	Message string // optional
}

// Create sanitizes the input, validates it and saves the lead.
// Invalid fields surface as domain.ErrInvalidInput.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Lead, error) {
	company := clip(sanitize.Text(in.Company), maxNameLen)
	if len(company) < 2 {
		return nil, fmt.Errorf("%w: company must have at least 2 characters", domain.ErrInvalidInput)
	}

	name := clip(sanitize.Text(in.Name), maxNameLen)
	if len(name) < 2 {
		return nil, fmt.Errorf("%w: name must have at least 2 characters", domain.ErrInvalidInput)
	}

	email := sanitize.Email(in.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is not valid", domain.ErrInvalidInput)
	}

	phone := ""
	if in.Phone != "" {
		phone = sanitize.Phone(in.Phone)
		if phone == "" {
			return nil, fmt.Errorf("%w: phone must be a 10-digit mobile number", domain.ErrInvalidInput)
		}
	}

	message := clip(sanitize.Text(in.Message), maxMessageLen)

	lead := &domain.Lead{
		ID:        uuid.NewString(),
		Company:   company,
		Name:      name,
		Email:     email,
		Phone:     phone,
		Message:   message,
		CreatedAt: s.now(),
		Status:    domain.LeadStatusNew,
	}

	if err := s.store.SaveLead(ctx, lead); err != nil {
		return nil, fmt.Errorf("saving lead: %w", err)
	}

	metrics.LeadsCreated.Inc()

	// Log only the id; the rest is personal data.
	logger := observability.LoggerFromContext(ctx, s.logger)
	logger.Info().
		Str("lead_id", lead.ID).
		Msg("lead created")

	return lead, nil
}

// List returns up to limit stored leads.
func (s *Service) List(ctx context.Context, limit int) ([]*domain.Lead, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	return s.store.ListLeads(ctx, limit)
}

func clip(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
