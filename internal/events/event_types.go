package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeCreated   EventType = "employee_created"
	EventEmployeeUpdated   EventType = "employee_updated"
	EventEmployeeDeleted   EventType = "employee_deleted"
	EventEmployeesImported EventType = "employees_imported"
)

// MutationEvents lists every event type that changes the employee set.
var MutationEvents = []EventType{
	EventEmployeeCreated,
	EventEmployeeUpdated,
	EventEmployeeDeleted,
	EventEmployeesImported,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New builds an event with a fresh id and timestamp.
func New(eventType EventType, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// EmployeeMutatedPayload identifies a single changed record.
type EmployeeMutatedPayload struct {
	EmployeeID int64 `json:"employee_id"`
}

// EmployeesImportedPayload summarizes a bulk import.
type EmployeesImportedPayload struct {
	Created     int     `json:"created"`
	EmployeeIDs []int64 `json:"employee_ids"`
}
