package task

import (
	"encoding/json"
	"fmt"
	"time"
)

// createdAtLayout is RFC3339 with fixed millisecond precision, matching what
// the slot has always held.
const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

type taskRecord struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

func encodeTasks(tasks []Task) (string, error) {
	records := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, taskRecord{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			CreatedAt: t.CreatedAt.Format(createdAtLayout),
		})
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeTasks(value string) ([]Task, error) {
	var records []taskRecord
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		return nil, err
	}

	tasks := make([]Task, 0, len(records))
	for _, rec := range records {
		createdAt, err := time.Parse(time.RFC3339, rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("task %d: bad createdAt %q: %w", rec.ID, rec.CreatedAt, err)
		}
		tasks = append(tasks, Task{
			ID:        rec.ID,
			Text:      rec.Text,
			Completed: rec.Completed,
			CreatedAt: createdAt,
		})
	}
	return tasks, nil
}
