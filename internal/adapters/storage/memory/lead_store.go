package memory

import (
	"context"
	"sync"

	"github.com/felixstiven/wog-agent/internal/domain"
)

// LeadStore is an in-memory implementation of domain.LeadStore.
// It is NOT persistent and is only suitable for development and tests.
type LeadStore struct {
	mu    sync.RWMutex
	leads []*domain.Lead
}

func NewLeadStore() *LeadStore {
	return &LeadStore{}
}

func (s *LeadStore) SaveLead(ctx context.Context, lead *domain.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *lead
	s.leads = append(s.leads, &cp)
	return nil
}

func (s *LeadStore) ListLeads(ctx context.Context, limit int) ([]*domain.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.leads)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]*domain.Lead, 0, n)
	for _, l := range s.leads[:n] {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}
