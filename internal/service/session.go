package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/sakif/goober-garden/internal/apperror"
	"github.com/sakif/goober-garden/internal/metrics"
	"github.com/sakif/goober-garden/internal/model"
	"github.com/sakif/goober-garden/internal/repository"
)

// SessionService records check-ins and resolves the "current" session.
//
// A session is not a stored thing: it is the most recent check-in across
// all fingerprints, and it only counts as active while that check-in is at
// most `window` old. Staleness is re-derived from the stored timestamp on
// every call.
type SessionService struct {
	checkins     repository.CheckInRepository
	fingerprints *FingerprintService
	goobers      *GooberService
	history      *HistoryService
	logger       *slog.Logger
	now          nowFunc

	// window is how long after a check-in the session stays active (5m).
	window time.Duration
	// adventure is the short touch window used while a session is active:
	// a present visitor's goober can go on a new adventure this often.
	adventure time.Duration
}

func NewSessionService(
	checkins repository.CheckInRepository,
	fingerprints *FingerprintService,
	goobers *GooberService,
	history *HistoryService,
	logger *slog.Logger,
	window, adventure time.Duration,
) *SessionService {
	return &SessionService{
		checkins:     checkins,
		fingerprints: fingerprints,
		goobers:      goobers,
		history:      history,
		logger:       logger,
		now:          time.Now,
		window:       window,
		adventure:    adventure,
	}
}

// RecordCheckIn appends a check-in for the token's fingerprint, creating
// the fingerprint on first sight. Every call appends — a device read ten
// times in a minute produces ten rows, and that's data, not noise.
func (s *SessionService) RecordCheckIn(ctx context.Context, token string) (*model.CheckIn, error) {
	fp, err := s.fingerprints.Ensure(ctx, token)
	if err != nil {
		return nil, err
	}

	ci := &model.CheckIn{
		FingerprintID: fp.ID,
		Token:         fp.Token,
		Timestamp:     s.now().UTC(),
	}
	if err := s.checkins.CreateCheckIn(ctx, ci); err != nil {
		s.logger.Error("failed to record check-in",
			slog.String("fingerprint", token),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	metrics.CheckIns.Inc()
	s.logger.Info("check-in recorded",
		slog.String("fingerprint", ci.Token),
		slog.Time("timestamp", ci.Timestamp),
	)
	return ci, nil
}

// Current returns the latest check-in if it is inside the session window.
// A stale or missing check-in is apperror.ErrNotFound — "no active
// session", not a failure.
func (s *SessionService) Current(ctx context.Context) (*model.CheckIn, error) {
	latest, err := s.checkins.LatestCheckIn(ctx)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("session", "current")
		}
		return nil, err
	}

	if s.now().Sub(latest.Timestamp) > s.window {
		return nil, apperror.NotFound("session", "current")
	}
	return latest, nil
}

// Resolution is the outcome of resolving the current session: either the
// checked-in fingerprint is bound to a goober (Goober is set, freshly
// touched with the adventure window) or it isn't yet (AccessKey is set, for
// building a registration URL).
type Resolution struct {
	Goober    *model.GooberView
	AccessKey string
}

// Resolve finds the active session and renders what the display should
// show. Returns apperror.ErrNotFound when no session is active.
func (s *SessionService) Resolve(ctx context.Context) (*Resolution, error) {
	latest, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	fp, err := s.fingerprints.Lookup(ctx, latest.Token)
	if err != nil {
		return nil, err
	}

	goober, err := s.goobers.FindByFingerprint(ctx, fp)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			// Checked in but never registered — hand back a one-way key
			// the visitor can use to claim this fingerprint.
			return &Resolution{AccessKey: AccessKey(latest)}, nil
		}
		return nil, err
	}

	if err := s.history.Touch(ctx, goober, s.adventure); err != nil {
		return nil, err
	}
	view, err := s.history.Render(ctx, goober)
	if err != nil {
		return nil, err
	}
	return &Resolution{Goober: view}, nil
}

// AccessKey derives the one-way registration key for a check-in: the hex
// sha256 digest of the token concatenated with the check-in's timestamp.
// It is embedded in a returned URL and never stored.
func AccessKey(ci *model.CheckIn) string {
	sum := sha256.Sum256([]byte(ci.Token + ci.Timestamp.UTC().Format(time.RFC3339Nano)))
	return hex.EncodeToString(sum[:])
}
