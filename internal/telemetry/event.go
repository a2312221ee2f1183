package telemetry

import "time"

type EventType string

const (
	EventSlotParseFailed EventType = "slot_parse_failed"
	EventSlotReadFailed  EventType = "slot_read_failed"
	EventTaskCreated     EventType = "task_created"
	EventTaskCompleted   EventType = "task_completed"
	EventTaskReopened    EventType = "task_reopened"
	EventTaskEdited      EventType = "task_edited"
	EventTaskDeleted     EventType = "task_deleted"
	EventListCleared     EventType = "list_cleared"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
