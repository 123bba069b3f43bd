package basket

import (
	"encoding/json"
	"time"
)

// State is the persisted form of a basket and the immutable snapshot handed
// to subscribers. Timestamps serialize as RFC 3339.
type State struct {
	Items       []Item    `json:"items"`
	MaxItems    int       `json:"max_items"`
	LastUpdated time.Time `json:"last_updated"`
}

// Summary returns the derived summary for the snapshot.
func (s State) Summary() Summary {
	return Summarize(s.Items)
}

// stale reports whether the state's last update is further in the past than
// the given age.
func (s State) stale(staleAfter time.Duration, now time.Time) bool {
	return now.Sub(s.LastUpdated) > staleAfter
}

// encodeState serializes a state for storage.
func encodeState(s State) ([]byte, error) {
	return json.Marshal(s)
}

// decodeState parses persisted state. A blob without an items array is
// rejected as a whole; individual item problems are handled later by
// filterItems.
func decodeState(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, err
	}
	if s.Items == nil {
		s.Items = []Item{}
	}
	if s.MaxItems <= 0 {
		s.MaxItems = MaxItems
	}
	return s, nil
}

// filterItems drops items that violate the basket invariants, returning the
// surviving items in their original order and the number dropped.
func filterItems(items []Item, maxQuantity int) (valid []Item, dropped int) {
	valid = make([]Item, 0, len(items))
	for _, it := range items {
		if it.valid(maxQuantity) {
			valid = append(valid, it)
		} else {
			dropped++
		}
	}
	return valid, dropped
}
