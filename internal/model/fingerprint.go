// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other
// languages, but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Fingerprint is a stable per-device identity token.
//
// The token is whatever the capture hardware reports for a device — usually
// the decimal text of a small number, but nothing stops a client from
// checking in with an arbitrary string, so we store it as TEXT and never
// parse it. The UNIQUE constraint on the token column is the one real
// integrity rule in this system: at most one row per token value.
type Fingerprint struct {
	ID    string `json:"id"`
	Token string `json:"fingerprint"`
}

// CheckIn is an immutable timestamped fact: this fingerprint was seen at
// this moment. Every check-in call appends a new row — rapid repeats are
// NOT deduplicated, because "how often was this device seen" is itself data.
type CheckIn struct {
	ID            string    `json:"id"`
	FingerprintID string    `json:"-"`
	Token         string    `json:"fingerprint"` // denormalised for callers; the row stores the ID
	Timestamp     time.Time `json:"timestamp"`
}
