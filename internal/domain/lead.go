package domain

import "time"

// LeadStatus tracks where a lead is in the follow-up pipeline.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusClosed    LeadStatus = "closed"
)

// Lead is a contact request captured from the chat's contact form.
type Lead struct {
	ID        string
	Company   string
	Name      string
	Email     string
	Phone     string
	Message   string
	CreatedAt time.Time
	Status    LeadStatus
}
