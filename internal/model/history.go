package model

import "time"

// HistoryEntry is an immutable join record: this goober experienced this
// event at this time. Rows are only ever appended by the history engine —
// never mutated or deleted.
type HistoryEntry struct {
	ID        string    `json:"id"`
	GooberID  string    `json:"-"`
	EventID   string    `json:"-"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryEvent is a history entry joined with its catalog event, which is
// what rendering actually needs. Repositories return these ordered by
// timestamp descending so "most recent first" is established in one place.
type HistoryEvent struct {
	Event     Event
	Timestamp time.Time
}
