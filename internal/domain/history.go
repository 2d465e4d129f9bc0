package domain

import "time"

// HistoryEntry records the last alert sent for one hackathon. The name is
// carried only to keep persisted state readable when inspected by hand.
type HistoryEntry struct {
	LastNotifiedAt time.Time `json:"last_notified_at"`
	LastTier       Tier      `json:"last_tier"`
	Name           string    `json:"name,omitempty"`
}

// History maps hackathon identifiers to their last-notification entries.
// At most one entry exists per identifier. Entries for hackathons that are
// no longer active are harmless and may linger until pruned.
type History map[string]HistoryEntry

// Clone returns an independent copy. The run pipeline mutates only the
// clone, so callers can compare the history before and after a run.
func (h History) Clone() History {
	out := make(History, len(h))
	for id, entry := range h {
		out[id] = entry
	}
	return out
}

// Get returns a pointer to a copy of the entry for id, or nil when absent.
func (h History) Get(id string) *HistoryEntry {
	if entry, ok := h[id]; ok {
		return &entry
	}
	return nil
}

// Prune removes entries whose last notification is older than the retention
// window and returns how many were dropped. Entries with a zero timestamp
// count as stale.
func (h History) Prune(now time.Time, retention time.Duration) int {
	cutoff := now.Add(-retention)
	dropped := 0
	for id, entry := range h {
		if entry.LastNotifiedAt.Before(cutoff) {
			delete(h, id)
			dropped++
		}
	}
	return dropped
}
