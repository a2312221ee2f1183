package task

import (
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"ticklist/internal/storage"
	"ticklist/internal/telemetry"
)

// Store owns the task list, the active filter, and the in-progress edit
// session. It is the only mutator of the list; presentation layers call the
// operations below and re-render from the returned views.
//
// Persistence follows the slot contract: every mutation writes the list back
// while it is non-empty. A mutation that leaves the list empty removes the
// slot instead of writing an empty encoding.
type Store struct {
	mu     sync.Mutex
	slot   storage.Slot
	events telemetry.Repository
	logger *log.Logger
	nextID IDSource
	now    func() time.Time

	tasks       []Task
	filter      Filter
	editingID   int64
	editingText string
}

type Options struct {
	Slot   storage.Slot
	Events telemetry.Repository
	Logger *log.Logger
	IDs    IDSource
	Now    func() time.Time
}

func NewStore(opts Options) (*Store, error) {
	if opts.Slot == nil {
		return nil, errors.New("slot is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.IDs == nil {
		opts.IDs = TimeIDSource()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		slot:   opts.Slot,
		events: opts.Events,
		logger: opts.Logger,
		nextID: opts.IDs,
		now:    opts.Now,
		filter: FilterAll,
	}, nil
}

// Counts is the derived tally over the current list.
type Counts struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// EditSession mirrors the store's scratch edit state. Active is false when no
// edit is in progress; Text is meaningless in that case.
type EditSession struct {
	ID     int64  `json:"id"`
	Text   string `json:"text"`
	Active bool   `json:"active"`
}

// Snapshot is everything a presentation layer needs to render the page.
type Snapshot struct {
	Tasks   []Task      `json:"tasks"`
	Filter  Filter      `json:"filter"`
	Editing EditSession `json:"editing"`
	Counts  Counts      `json:"counts"`
}

// Load replaces the list with whatever the slot holds. An absent slot means
// an empty list. A value that cannot be decoded is treated the same way; the
// failure is recorded to the event sink and logged, never surfaced.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok, err := s.slot.Get()
	if err != nil {
		s.logger.Printf("load tasks: read slot: %v", err)
		s.recordLocked(telemetry.EventSlotReadFailed, telemetry.EventMetadata{"error": err.Error()})
		s.tasks = nil
		return
	}
	if !ok {
		s.tasks = nil
		return
	}

	tasks, err := decodeTasks(value)
	if err != nil {
		s.logger.Printf("load tasks: decode slot: %v", err)
		s.recordLocked(telemetry.EventSlotParseFailed, telemetry.EventMetadata{"error": err.Error()})
		s.tasks = nil
		return
	}
	s.tasks = tasks
}

// Add appends a task with trimmed text. Empty or whitespace-only text is a
// silent no-op.
func (s *Store) Add(text string) (Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := Task{
		ID:        s.nextID(),
		Text:      text,
		CreatedAt: s.now(),
	}
	s.tasks = append(s.tasks, t)
	s.persistLocked()
	s.recordLocked(telemetry.EventTaskCreated, telemetry.EventMetadata{"task_id": t.ID})
	return t, true
}

// Toggle flips completion for the task matching id. Unknown ids are ignored.
func (s *Store) Toggle(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.persistLocked()

	event := telemetry.EventTaskReopened
	if s.tasks[i].Completed {
		event = telemetry.EventTaskCompleted
	}
	s.recordLocked(event, telemetry.EventMetadata{"task_id": id})
	return true
}

// Delete removes the task matching id. When the removal empties the list the
// slot is removed rather than rewritten. Unknown ids are ignored.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	if len(s.tasks) == 0 {
		s.removeSlotLocked()
	} else {
		s.persistLocked()
	}
	s.recordLocked(telemetry.EventTaskDeleted, telemetry.EventMetadata{"task_id": id})
	return true
}

// ClearAll empties the list and removes the slot.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = nil
	s.removeSlotLocked()
	s.recordLocked(telemetry.EventListCleared, nil)
}

// StartEdit opens an edit session. The caller supplies the current text; the
// store does not look it up.
func (s *Store) StartEdit(id int64, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.editingID = id
	s.editingText = text
}

// SetEditText replaces the scratch buffer of the open session.
func (s *Store) SetEditText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.editingID == 0 {
		return
	}
	s.editingText = text
}

// SaveEdit commits the trimmed scratch text to the task matching id and
// closes the session. Empty scratch text or an unknown id leaves everything
// untouched, including the open session.
func (s *Store) SaveEdit(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := strings.TrimSpace(s.editingText)
	if text == "" {
		return false
	}
	i := s.indexLocked(id)
	if i < 0 {
		return false
	}

	s.tasks[i].Text = text
	s.editingID = 0
	s.editingText = ""
	s.persistLocked()
	s.recordLocked(telemetry.EventTaskEdited, telemetry.EventMetadata{"task_id": id})
	return true
}

// CancelEdit closes the edit session without touching any task.
func (s *Store) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.editingID = 0
	s.editingText = ""
}

// Derive returns the tasks matching the filter, in insertion order. The
// result is a copy; callers may range over it as often as they like.
func (s *Store) Derive(f Filter) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deriveLocked(f)
}

// Counts tallies the current list.
func (s *Store) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countsLocked()
}

// SetFilter records the active filter for the page.
func (s *Store) SetFilter(f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

func (s *Store) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *Store) Editing() EditSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingLocked()
}

// Snapshot returns the full page state: the derived list for the active
// filter, the filter itself, the edit session, and the counts.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Tasks:   s.deriveLocked(s.filter),
		Filter:  s.filter,
		Editing: s.editingLocked(),
		Counts:  s.countsLocked(),
	}
}

func (s *Store) deriveLocked(f Filter) []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if f.matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) countsLocked() Counts {
	c := Counts{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			c.Completed++
		} else {
			c.Active++
		}
	}
	return c
}

func (s *Store) editingLocked() EditSession {
	if s.editingID == 0 {
		return EditSession{}
	}
	return EditSession{ID: s.editingID, Text: s.editingText, Active: true}
}

func (s *Store) indexLocked(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the list back to the slot. An empty list is skipped;
// the transitions to empty go through removeSlotLocked instead.
func (s *Store) persistLocked() {
	if len(s.tasks) == 0 {
		return
	}
	value, err := encodeTasks(s.tasks)
	if err != nil {
		s.logger.Printf("persist tasks: encode: %v", err)
		return
	}
	if err := s.slot.Set(value); err != nil {
		s.logger.Printf("persist tasks: write slot: %v", err)
	}
}

func (s *Store) removeSlotLocked() {
	if err := s.slot.Remove(); err != nil {
		s.logger.Printf("persist tasks: remove slot: %v", err)
	}
}

func (s *Store) recordLocked(eventType telemetry.EventType, metadata telemetry.EventMetadata) {
	if s.events == nil {
		return
	}
	if err := s.events.RecordEvent(eventType, metadata); err != nil {
		s.logger.Printf("record %s: %v", eventType, err)
	}
}
