package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/goober-garden/internal/apperror"
	"github.com/sakif/goober-garden/internal/metrics"
	"github.com/sakif/goober-garden/internal/model"
	"github.com/sakif/goober-garden/internal/repository"
)

const MaxGooberNameLength = 100

// GooberService is the directory of goobers: registration, lookup, listing,
// and the profile read (which orchestrates the history engine's long-window
// touch).
type GooberService struct {
	repo         repository.GooberRepository
	fingerprints *FingerprintService
	history      *HistoryService
	logger       *slog.Logger

	// reengage is the long window used on profile lookups: a visitor
	// returning after this long gets one fresh event on their first read.
	reengage time.Duration
}

func NewGooberService(
	repo repository.GooberRepository,
	fingerprints *FingerprintService,
	history *HistoryService,
	logger *slog.Logger,
	reengage time.Duration,
) *GooberService {
	return &GooberService{
		repo:         repo,
		fingerprints: fingerprints,
		history:      history,
		logger:       logger,
		reengage:     reengage,
	}
}

// Create registers a goober bound to the fingerprint holding token.
//
// The fingerprint row is created if it doesn't exist yet (Ensure), so
// registration works for brand-new tokens without a prior check-in. An
// earlier revision stored a dangling reference in that case; Ensure keeps
// the conflict check and the bind on a single valid path.
//
// Returns apperror.ErrConflict when the fingerprint already owns a goober.
func (s *GooberService) Create(ctx context.Context, name, token string) (*model.Goober, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "goober name is required")
	}
	if len(name) > MaxGooberNameLength {
		return nil, apperror.ValidationFailed("name", "goober name is too long")
	}
	if token == "" {
		return nil, apperror.ValidationFailed("fingerprint", "fingerprint is required")
	}

	fp, err := s.fingerprints.Ensure(ctx, token)
	if err != nil {
		return nil, err
	}

	// One fingerprint, at most one goober. The storage layer's UNIQUE
	// constraint catches the race this check can lose.
	if _, err := s.repo.GetByFingerprintID(ctx, fp.ID); err == nil {
		return nil, apperror.Conflict("goober", token)
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	goober := &model.Goober{
		Name:          name,
		FingerprintID: fp.ID,
		Token:         fp.Token,
	}
	if err := s.repo.CreateGoober(ctx, goober); err != nil {
		if !errors.Is(err, apperror.ErrConflict) {
			s.logger.Error("failed to create goober",
				slog.String("name", name),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	}

	metrics.GoobersRegistered.Inc()
	s.logger.Info("goober created",
		slog.String("id", goober.ID),
		slog.String("name", goober.Name),
		slog.String("fingerprint", goober.Token),
	)
	return goober, nil
}

// FindByFingerprint returns the goober bound to a fingerprint identity.
func (s *GooberService) FindByFingerprint(ctx context.Context, fp *model.Fingerprint) (*model.Goober, error) {
	return s.repo.GetByFingerprintID(ctx, fp.ID)
}

// List returns all goobers in insertion order.
func (s *GooberService) List(ctx context.Context) ([]model.Goober, error) {
	return s.repo.ListGoobers(ctx)
}

// Profile resolves a token to its goober and renders the full view. As a
// side effect it touches the history engine with the long re-engagement
// window, so a visitor returning after days sees a fresh event at the top.
// Unknown token or unbound fingerprint is apperror.ErrNotFound.
func (s *GooberService) Profile(ctx context.Context, token string) (*model.GooberView, error) {
	fp, err := s.fingerprints.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}

	goober, err := s.repo.GetByFingerprintID(ctx, fp.ID)
	if err != nil {
		return nil, err
	}

	if err := s.history.Touch(ctx, goober, s.reengage); err != nil {
		return nil, err
	}
	return s.history.Render(ctx, goober)
}
