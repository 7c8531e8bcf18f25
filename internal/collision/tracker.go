// Package collision tracks track names and their hash IDs while a blob is built.
package collision

import (
	"fmt"

	"github.com/tirja/porygon/errs"
)

// Tracker records track names and rejects duplicates and ID collisions.
//
// Track blobs index tracks by the xxHash64 of their name, so two distinct names with
// the same hash cannot live in one blob.
type Tracker struct {
	names     map[uint64]string // hash -> name
	namesList []string          // insertion order
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:     make(map[uint64]string),
		namesList: make([]string, 0),
	}
}

// Check reports whether name can be tracked with hash without recording it.
//
// Returns:
//   - error: ErrInvalidTrackName if name is empty, ErrTrackAlreadyAdded if name was
//     tracked before, ErrHashCollision if a different name has the same hash
func (t *Tracker) Check(name string, hash uint64) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", errs.ErrInvalidTrackName)
	}

	if existing, ok := t.names[hash]; ok {
		if existing == name {
			return fmt.Errorf("%w: %q", errs.ErrTrackAlreadyAdded, name)
		}

		return fmt.Errorf("%w: %q and %q share ID %#016x", errs.ErrHashCollision, existing, name, hash)
	}

	return nil
}

// Track records name with its hash. It fails with the same errors as Check.
func (t *Tracker) Track(name string, hash uint64) error {
	if err := t.Check(name, hash); err != nil {
		return err
	}

	t.names[hash] = name
	t.namesList = append(t.namesList, name)

	return nil
}

// Names returns the tracked names in insertion order.
func (t *Tracker) Names() []string {
	return t.namesList
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.namesList)
}

// Reset clears the tracker for reuse.
func (t *Tracker) Reset() {
	clear(t.names)
	t.namesList = t.namesList[:0]
}
