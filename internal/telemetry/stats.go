package telemetry

import "time"

type Stats struct {
	Period         string            `json:"period"`
	EventCounts    map[EventType]int `json:"event_counts"`
	TasksCreated   int               `json:"tasks_created"`
	TasksCompleted int               `json:"tasks_completed"`
	TasksDeleted   int               `json:"tasks_deleted"`
	ListClears     int               `json:"list_clears"`
	ParseFailures  int               `json:"parse_failures"`
}

// CalculateStats rolls up events recorded since the given time.
func CalculateStats(events []Event, since time.Time) Stats {
	stats := Stats{
		Period:      since.Format("2006-01-02"),
		EventCounts: make(map[EventType]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		switch event.Type {
		case EventTaskCreated:
			stats.TasksCreated++
		case EventTaskCompleted:
			stats.TasksCompleted++
		case EventTaskDeleted:
			stats.TasksDeleted++
		case EventListCleared:
			stats.ListClears++
		case EventSlotParseFailed, EventSlotReadFailed:
			stats.ParseFailures++
		}
	}

	return stats
}
