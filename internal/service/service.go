// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → enforces the rules, orchestrates
//	Repository (Data layer)  → reads/writes the database
//
// Every rule with teeth lives here: fingerprint allocation, the 5-minute
// session window, the one-goober-per-fingerprint bind, and the time-gated
// history machine. Handlers stay HTTP-only; repositories stay SQL-only.
//
// INJECTED TIME AND RANDOMNESS:
// Two things make this system hard to test naively: the clock (staleness
// windows) and randomness (event and token selection). Both are injected —
// services hold a nowFunc and a randSource, defaulted for production and
// overridden by tests. Derived state (is this goober due for an event?) is
// always computed from now() and the stored timestamps, never cached.
package service

import (
	"math/rand"
	"time"
)

// nowFunc supplies the current time. Tests swap this to pin the clock.
type nowFunc func() time.Time

// randSource is the minimal randomness services need: a uniform pick of an
// index from [0, n). Tests swap in a fixed sequence.
type randSource interface {
	Intn(n int) int
}

// stdRand delegates to math/rand's auto-seeded global source.
type stdRand struct{}

func (stdRand) Intn(n int) int { return rand.Intn(n) }
