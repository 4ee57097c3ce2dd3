package domain

// Message is a single turn in a conversation. Immutable once appended.
type Message struct {
	Role      Role
	Text      string
	CreatedAt Timestamp
}

// Session is one conversation between a visitor and the agent.
// History is append-only; Clear truncates it but keeps the ID.
type Session struct {
	ID           SessionID
	History      []Message
	CreatedAt    Timestamp
	LastActiveAt Timestamp
	MessageCount int
}

// SessionStats is a read-only snapshot of a session's counters.
type SessionStats struct {
	SessionID    SessionID
	MessageCount int
	CreatedAt    Timestamp
	LastActiveAt Timestamp
}
