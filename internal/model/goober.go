package model

import "time"

// Goober is the user-visible profile bound one-to-one to a Fingerprint.
// A fingerprint owns at most one goober; a goober always has exactly one
// fingerprint. Goobers are created by an explicit registration call and
// never deleted.
//
// Image is an optional reference to a picture for the profile. There is no
// upload API — it is set directly in storage for now.
type Goober struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	FingerprintID string    `json:"-"`
	Token         string    `json:"fingerprint"`
	Image         string    `json:"image,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// GooberView is the rendered profile returned by the API: the goober's
// identity plus its full history, newest first, and the stat list derived
// from that history.
//
// WIRE SHAPE:
// The JSON field names are snake_case because the display firmware that
// consumes this API predates the Go rewrite and expects these exact keys.
type GooberView struct {
	Name        string      `json:"name"`
	Fingerprint string      `json:"fingerprint"`
	Image       string      `json:"image"`
	LastSeen    *time.Time  `json:"last_seen"` // nil (JSON null) when there is no history yet
	Events      []EventView `json:"events"`
	Stats       []StatView  `json:"stats"`
}

// EventView is one history line: what happened and the catalog description.
type EventView struct {
	Event       string `json:"event"`
	Description string `json:"description"`
}

// StatView pairs a stat name with its kind-correct value. StatValue
// marshals as a JSON number for float-kind stats and a JSON string for
// string-kind stats — never both, never the wrong kind's field.
type StatView struct {
	StatName  string    `json:"stat_name"`
	StatValue StatValue `json:"stat_value"`
}
