package domain

import "context"

// ModelReply is the outcome of one generation call.
type ModelReply struct {
	Text string
	// TokensUsed is the total token count reported by the provider,
	// or nil when the provider does not expose usage.
	TokensUsed *int
	// ShowContactForm is set when the model signalled contact intent.
	// The client owns the signalling convention; callers only see this flag.
	ShowContactForm bool
}

// ModelClient defines how the application talks to a generative model.
type ModelClient interface {
	GenerateReply(ctx context.Context, userMessage string, history []Message) (*ModelReply, error)
}

// SessionStore owns all session lifecycle state. Within one session the
// insertion order of messages is load-bearing (it is the prompt context);
// implementations must never reorder a history.
type SessionStore interface {
	// Create makes a new session with a fresh unique id and empty history.
	Create() (*Session, error)

	// Get returns a snapshot of the session, or ErrSessionNotFound.
	Get(id SessionID) (*Session, error)

	// Append adds a message to the session's history and bumps the
	// counters; ErrSessionNotFound if the id is unknown.
	Append(id SessionID, msg Message) error

	// Clear empties the history and resets the message count while
	// keeping the id and creation time; ErrSessionNotFound if unknown.
	Clear(id SessionID) error

	// Delete removes the session entirely; ErrSessionNotFound if unknown.
	Delete(id SessionID) error

	// List returns snapshot stats for every session, in no particular order.
	List() []SessionStats
}

// LeadStore persists captured leads.
type LeadStore interface {
	SaveLead(ctx context.Context, lead *Lead) error
	ListLeads(ctx context.Context, limit int) ([]*Lead, error)
}
