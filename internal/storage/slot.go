package storage

// Slot is a single persisted key-value cell holding the serialized task list.
// Get reports ok=false when nothing is stored under the slot's key.
type Slot interface {
	Get() (value string, ok bool, err error)
	Set(value string) error
	Remove() error
}
