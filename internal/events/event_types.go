package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPersonCreated EventType = "person_created"
	EventPersonRenamed EventType = "person_renamed"
	EventDutyAssigned  EventType = "duty_assigned"
)

// Event represents a domain event emitted by services after commit.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	PersonID   int64       `json:"person_id"`
	PersonName string      `json:"person_name"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// PersonRenamedPayload payload.
type PersonRenamedPayload struct {
	OriginalName string `json:"original_name"`
	NewName      string `json:"new_name"`
}

// DutyAssignedPayload payload.
type DutyAssignedPayload struct {
	DutyID        int64      `json:"duty_id"`
	Rank          string     `json:"rank"`
	DutyTitle     string     `json:"duty_title"`
	DutyStartDate time.Time  `json:"duty_start_date"`
	Retirement    bool       `json:"retirement"`
	ClosedDutyID  *int64     `json:"closed_duty_id,omitempty"`
	CareerEndDate *time.Time `json:"career_end_date,omitempty"`
}
