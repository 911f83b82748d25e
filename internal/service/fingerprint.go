package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/sakif/goober-garden/internal/apperror"
	"github.com/sakif/goober-garden/internal/model"
	"github.com/sakif/goober-garden/internal/repository"
)

// FreshTokenUniverse is the size of the auto-allocatable token namespace.
// The capture hardware can only produce readings 0–79, so fresh tokens are
// drawn from the decimal strings "0".."79". Externally supplied tokens
// (arriving via check-in) are NOT restricted to this range.
const FreshTokenUniverse = 80

// FingerprintService owns the mapping between raw fingerprint tokens and
// stored identities.
type FingerprintService struct {
	repo   repository.FingerprintRepository
	logger *slog.Logger
	rng    randSource
}

// NewFingerprintService creates a FingerprintService with production
// randomness. Tests overwrite rng directly (same-package access).
func NewFingerprintService(repo repository.FingerprintRepository, logger *slog.Logger) *FingerprintService {
	return &FingerprintService{
		repo:   repo,
		logger: logger,
		rng:    stdRand{},
	}
}

// Lookup finds the fingerprint for a token. Absent is apperror.ErrNotFound.
func (s *FingerprintService) Lookup(ctx context.Context, token string) (*model.Fingerprint, error) {
	if token == "" {
		return nil, apperror.ValidationFailed("fingerprint", "fingerprint is required")
	}
	return s.repo.GetByToken(ctx, token)
}

// Ensure returns the fingerprint for a token, creating it on first sight.
// Idempotent: two calls for the same token return the same identity. Safe
// under concurrency — the repository recovers a lost insert race by
// re-reading the winner's row.
func (s *FingerprintService) Ensure(ctx context.Context, token string) (*model.Fingerprint, error) {
	if token == "" {
		return nil, apperror.ValidationFailed("fingerprint", "fingerprint is required")
	}

	fp, err := s.repo.GetByToken(ctx, token)
	if err == nil {
		return fp, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	fp = &model.Fingerprint{Token: token}
	if err := s.repo.CreateFingerprint(ctx, fp); err != nil {
		return nil, err
	}
	s.logger.Info("fingerprint registered", slog.String("fingerprint", token))
	return fp, nil
}

// AllocateFresh picks a token, uniformly at random, from the part of the
// 0–79 universe not currently stored. Returns apperror.ErrExhausted when
// all 80 are taken.
//
// STRING MEMBERSHIP, ON PURPOSE:
// A candidate is "in use" only when its decimal text equals a stored token
// byte-for-byte. Stored tokens are arbitrary strings — "07" does not block
// candidate "7", and "banana" blocks nothing. This is the system's
// long-standing observable behaviour; do not replace it with a numeric set
// difference.
//
// KNOWN RACE:
// Nothing reserves the returned token. Two concurrent calls can both be
// handed "42"; whichever checks in first mints the row, and the other's
// check-in simply joins it (Ensure is read-or-create). Accepted limitation.
func (s *FingerprintService) AllocateFresh(ctx context.Context) (string, error) {
	stored, err := s.repo.ListTokens(ctx)
	if err != nil {
		return "", err
	}

	used := make(map[string]struct{}, len(stored))
	for _, t := range stored {
		used[t] = struct{}{}
	}

	free := make([]string, 0, FreshTokenUniverse)
	for i := 0; i < FreshTokenUniverse; i++ {
		candidate := strconv.Itoa(i)
		if _, taken := used[candidate]; !taken {
			free = append(free, candidate)
		}
	}

	if len(free) == 0 {
		s.logger.Warn("fingerprint pool exhausted")
		return "", apperror.Exhausted("fingerprint")
	}

	token := free[s.rng.Intn(len(free))]
	s.logger.Info("fresh fingerprint allocated",
		slog.String("fingerprint", token),
		slog.Int("free", len(free)),
	)
	return token, nil
}
