package task

import (
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticklist/internal/storage"
	"ticklist/internal/telemetry"
)

func newTestStore(t *testing.T, slot storage.Slot, events telemetry.Repository) *Store {
	t.Helper()

	s, err := NewStore(Options{
		Slot:   slot,
		Events: events,
		Logger: log.New(io.Discard, "", 0),
		IDs:    SequentialIDSource(1),
		Now: func() time.Time {
			return time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC)
		},
	})
	require.NoError(t, err)
	return s
}

func TestNewStore_RequiresSlot(t *testing.T) {
	_, err := NewStore(Options{})
	assert.Error(t, err)
}

func TestStore_AddTrimsText(t *testing.T) {
	s := newTestStore(t, storage.NewMemorySlot(), nil)

	got, ok := s.Add("  water plants  ")
	require.True(t, ok)
	assert.Equal(t, "water plants", got.Text)
	assert.Equal(t, int64(1), got.ID)
	assert.False(t, got.Completed)
}

func TestStore_AddEmptyTextIsNoOp(t *testing.T) {
	slot := storage.NewMemorySlot()
	s := newTestStore(t, slot, nil)

	_, ok := s.Add("   ")
	assert.False(t, ok)
	assert.Equal(t, Counts{}, s.Counts())

	_, present, err := slot.Get()
	require.NoError(t, err)
	assert.False(t, present, "a rejected add must not touch the slot")
}

func TestStore_ToggleTwiceRestores(t *testing.T) {
	s := newTestStore(t, storage.NewMemorySlot(), nil)
	added, _ := s.Add("pick up eggs")

	require.True(t, s.Toggle(added.ID))
	assert.Equal(t, Counts{Total: 1, Completed: 1}, s.Counts())

	require.True(t, s.Toggle(added.ID))
	assert.Equal(t, Counts{Total: 1, Active: 1}, s.Counts())
}

func TestStore_UnknownIDsAreIgnored(t *testing.T) {
	s := newTestStore(t, storage.NewMemorySlot(), nil)
	s.Add("water plants")

	assert.False(t, s.Toggle(99))
	assert.False(t, s.Delete(99))
	assert.Equal(t, Counts{Total: 1, Active: 1}, s.Counts())
}

func TestStore_DeleteToEmptyRemovesSlot(t *testing.T) {
	slot := storage.NewMemorySlot()
	s := newTestStore(t, slot, nil)

	first, _ := s.Add("water plants")
	second, _ := s.Add("pick up eggs")

	require.True(t, s.Delete(first.ID))
	_, present, err := slot.Get()
	require.NoError(t, err)
	assert.True(t, present, "slot stays written while the list is non-empty")

	require.True(t, s.Delete(second.ID))
	_, present, err = slot.Get()
	require.NoError(t, err)
	assert.False(t, present, "deleting the last task removes the slot instead of writing []")
}

func TestStore_ClearAllRemovesSlot(t *testing.T) {
	slot := storage.NewMemorySlot()
	s := newTestStore(t, slot, nil)
	s.Add("water plants")
	s.Add("pick up eggs")

	s.ClearAll()

	assert.Equal(t, Counts{}, s.Counts())
	_, present, err := slot.Get()
	require.NoError(t, err)
	assert.False(t, present)
}

func TestStore_FilterPartition(t *testing.T) {
	s := newTestStore(t, storage.NewMemorySlot(), nil)
	a, _ := s.Add("water plants")
	b, _ := s.Add("pick up eggs")
	c, _ := s.Add("sweep porch")
	s.Toggle(b.ID)

	all := s.Derive(FilterAll)
	active := s.Derive(FilterActive)
	completed := s.Derive(FilterCompleted)

	require.Len(t, all, 3)
	assert.Equal(t, []int64{a.ID, b.ID, c.ID}, idsOf(all), "insertion order")
	assert.Equal(t, []int64{a.ID, c.ID}, idsOf(active))
	assert.Equal(t, []int64{b.ID}, idsOf(completed))
	assert.Equal(t, len(all), len(active)+len(completed))
}

func TestStore_EditRoundTrip(t *testing.T) {
	slot := storage.NewMemorySlot()
	s := newTestStore(t, slot, nil)
	added, _ := s.Add("water plants")

	s.StartEdit(added.ID, added.Text)
	assert.Equal(t, EditSession{ID: added.ID, Text: "water plants", Active: true}, s.Editing())

	s.SetEditText("  water the plants  ")
	require.True(t, s.SaveEdit(added.ID))

	assert.Equal(t, EditSession{}, s.Editing())
	assert.Equal(t, "water the plants", s.Derive(FilterAll)[0].Text)
}

func TestStore_SaveEditRejectsEmptyAndKeepsSession(t *testing.T) {
	s := newTestStore(t, storage.NewMemorySlot(), nil)
	added, _ := s.Add("water plants")

	s.StartEdit(added.ID, added.Text)
	s.SetEditText("   ")

	assert.False(t, s.SaveEdit(added.ID))
	assert.True(t, s.Editing().Active, "a rejected save leaves the session open")
	assert.Equal(t, "water plants", s.Derive(FilterAll)[0].Text)
}

func TestStore_SaveEditUnknownIDKeepsSession(t *testing.T) {
	s := newTestStore(t, storage.NewMemorySlot(), nil)
	added, _ := s.Add("water plants")

	s.StartEdit(added.ID, added.Text)
	s.SetEditText("new text")

	assert.False(t, s.SaveEdit(99))
	assert.True(t, s.Editing().Active)
}

func TestStore_CancelEditLeavesTaskAlone(t *testing.T) {
	s := newTestStore(t, storage.NewMemorySlot(), nil)
	added, _ := s.Add("water plants")

	s.StartEdit(added.ID, added.Text)
	s.SetEditText("scratch that never lands")
	s.CancelEdit()

	assert.Equal(t, EditSession{}, s.Editing())
	assert.Equal(t, "water plants", s.Derive(FilterAll)[0].Text)
}

func TestStore_SetEditTextWithoutSessionIsNoOp(t *testing.T) {
	s := newTestStore(t, storage.NewMemorySlot(), nil)

	s.SetEditText("nowhere to go")
	assert.Equal(t, EditSession{}, s.Editing())
}

func TestStore_LoadRoundTrip(t *testing.T) {
	slot := storage.NewMemorySlot()

	s1 := newTestStore(t, slot, nil)
	a, _ := s1.Add("water plants")
	b, _ := s1.Add("pick up eggs")
	s1.Toggle(b.ID)

	s2 := newTestStore(t, slot, nil)
	s2.Load()

	got := s2.Derive(FilterAll)
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, "water plants", got[0].Text)
	assert.True(t, got[1].Completed)
	assert.True(t, a.CreatedAt.Equal(got[0].CreatedAt), "createdAt must survive the round trip to the millisecond")
}

func TestStore_LoadAbsentSlotMeansEmptyList(t *testing.T) {
	s := newTestStore(t, storage.NewMemorySlot(), nil)
	s.Load()
	assert.Empty(t, s.Derive(FilterAll))
}

func TestStore_LoadMalformedValueMeansEmptyList(t *testing.T) {
	slot := storage.NewMemorySlot()
	slot.Seed("{definitely not a task list")
	events := telemetry.NewMemoryRepository()

	s := newTestStore(t, slot, events)
	s.Load()

	assert.Empty(t, s.Derive(FilterAll))

	recorded, err := events.GetEvents(time.Time{}, []telemetry.EventType{telemetry.EventSlotParseFailed})
	require.NoError(t, err)
	assert.Len(t, recorded, 1)
}

func TestStore_LoadReadErrorMeansEmptyList(t *testing.T) {
	slot := storage.NewMemorySlot()
	slot.Seed(`[{"id":1,"text":"unreachable","completed":false,"createdAt":"2026-03-14T09:26:53.589Z"}]`)
	slot.GetErr = errors.New("disk on fire")
	events := telemetry.NewMemoryRepository()

	s := newTestStore(t, slot, events)
	s.Load()

	assert.Empty(t, s.Derive(FilterAll))

	recorded, err := events.GetEvents(time.Time{}, []telemetry.EventType{telemetry.EventSlotReadFailed})
	require.NoError(t, err)
	assert.Len(t, recorded, 1)
}

func TestStore_SnapshotFollowsFilter(t *testing.T) {
	s := newTestStore(t, storage.NewMemorySlot(), nil)
	a, _ := s.Add("water plants")
	b, _ := s.Add("pick up eggs")
	s.Toggle(b.ID)
	s.SetFilter(FilterActive)

	snap := s.Snapshot()
	assert.Equal(t, FilterActive, snap.Filter)
	assert.Equal(t, []int64{a.ID}, idsOf(snap.Tasks))
	assert.Equal(t, Counts{Total: 2, Active: 1, Completed: 1}, snap.Counts)
	assert.False(t, snap.Editing.Active)
}

func TestStore_EventsRecorded(t *testing.T) {
	events := telemetry.NewMemoryRepository()
	s := newTestStore(t, storage.NewMemorySlot(), events)

	added, _ := s.Add("water plants")
	s.Toggle(added.ID)
	s.Toggle(added.ID)
	s.Delete(added.ID)
	s.ClearAll()

	recorded, err := events.GetEvents(time.Time{}, nil)
	require.NoError(t, err)

	types := make([]telemetry.EventType, 0, len(recorded))
	for _, e := range recorded {
		types = append(types, e.Type)
	}
	assert.Equal(t, []telemetry.EventType{
		telemetry.EventTaskCreated,
		telemetry.EventTaskCompleted,
		telemetry.EventTaskReopened,
		telemetry.EventTaskDeleted,
		telemetry.EventListCleared,
	}, types)
}

func idsOf(tasks []Task) []int64 {
	out := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}
