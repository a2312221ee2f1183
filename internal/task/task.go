package task

import (
	"sync"
	"time"
)

// Task is one to-do item. CreatedAt is immutable after creation and travels
// through the persistence slot as an RFC3339 string (see codec.go).
type Task struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// IDSource allocates task identities. The store assumes nothing about the
// values beyond uniqueness within one list.
type IDSource func() int64

// TimeIDSource allocates ids from the millisecond wall clock. Two allocations
// landing in the same millisecond still get distinct ids.
func TimeIDSource() IDSource {
	var mu sync.Mutex
	var last int64
	return func() int64 {
		mu.Lock()
		defer mu.Unlock()
		id := time.Now().UnixMilli()
		if id <= last {
			id = last + 1
		}
		last = id
		return id
	}
}

// SequentialIDSource counts up from start. Deterministic ids for tests.
func SequentialIDSource(start int64) IDSource {
	var mu sync.Mutex
	next := start
	return func() int64 {
		mu.Lock()
		defer mu.Unlock()
		id := next
		next++
		return id
	}
}
