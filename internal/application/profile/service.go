// Package profile provides the application layer for user profiles.
// Only the partial document a user has written is persisted; reads always
// return it overlaid on the canonical defaults.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/mealwise/core/internal/domain/nutrition"
	"github.com/mealwise/core/internal/domain/profile"
	"github.com/mealwise/core/internal/ports/inbound"
	"github.com/mealwise/core/internal/ports/outbound"
	apperrors "github.com/mealwise/core/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "profile:"

// Service implements inbound.ProfileService
type Service struct {
	repo      outbound.ProfileRepository
	cache     outbound.CacheRepository
	cacheTTL  time.Duration
	validator *PatchValidator
	tracer    trace.Tracer
	logger    *zap.Logger

	// generation counts invalidations; a read only fills the cache when
	// no write invalidated it while the repository was being read
	generation atomic.Uint64
}

var _ inbound.ProfileService = (*Service)(nil)

// NewService creates a new profile service
func NewService(
	repo outbound.ProfileRepository,
	cache outbound.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		validator: NewPatchValidator(),
		tracer:    otel.Tracer("mealwise/profile"),
		logger:    logger.Named("profile-service"),
	}
}

// Get returns the user's full profile. Users without a stored record get
// their defaults.
func (s *Service) Get(ctx context.Context, userID string) (profile.Document, error) {
	ctx, span := s.startSpan(ctx, "profile.Get", userID)
	defer span.End()

	partial, err := s.load(ctx, userID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return s.complete(profile.MergeWithDefaults(partial, userID)), nil
}

// Update folds patch into the stored partial and returns the merged result.
// The id key is never stored; it always comes from the caller.
func (s *Service) Update(ctx context.Context, userID string, patch profile.Document) (profile.Document, error) {
	ctx, span := s.startSpan(ctx, "profile.Update", userID)
	defer span.End()

	if err := s.validator.Validate(patch); err != nil {
		recordError(span, err)
		return nil, err
	}

	stored, err := s.load(ctx, userID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	next := profile.Overlay(stored, patch).Without(profile.KeyID)
	if err := s.repo.Save(ctx, userID, next); err != nil {
		appErr := apperrors.NewDatabaseError("save profile", err)
		recordError(span, appErr)
		return nil, appErr
	}
	s.invalidate(ctx, userID)

	s.logger.Info("Profile updated",
		zap.String("user_id", userID),
		zap.Int("fields", len(patch)),
	)
	return s.complete(profile.MergeWithDefaults(next, userID)), nil
}

// Reset removes the stored partial so the user is back on defaults
func (s *Service) Reset(ctx context.Context, userID string) (profile.Document, error) {
	ctx, span := s.startSpan(ctx, "profile.Reset", userID)
	defer span.End()

	if err := s.repo.Delete(ctx, userID); err != nil {
		appErr := apperrors.NewDatabaseError("delete profile", err)
		recordError(span, appErr)
		return nil, appErr
	}
	s.invalidate(ctx, userID)

	s.logger.Info("Profile reset", zap.String("user_id", userID))
	return profile.Defaults(userID), nil
}

// Defaults returns the canonical profile for a user
func (s *Service) Defaults(userID string) profile.Document {
	return profile.Defaults(userID)
}

// Targets computes nutrition targets from the user's current profile
func (s *Service) Targets(ctx context.Context, userID string) (nutrition.Targets, error) {
	ctx, span := s.startSpan(ctx, "profile.Targets", userID)
	defer span.End()

	partial, err := s.load(ctx, userID)
	if err != nil {
		recordError(span, err)
		return nutrition.Targets{}, err
	}

	settings, err := profile.MergeWithDefaults(partial, userID).Decode()
	if err != nil {
		appErr := apperrors.NewValidationError(err.Error()).WithCause(err)
		recordError(span, appErr)
		return nutrition.Targets{}, appErr
	}

	targets, err := nutrition.Compute(settings)
	if errors.Is(err, nutrition.ErrInsufficientData) {
		return nutrition.Targets{}, apperrors.NewInsufficientProfileError(err)
	}
	if err != nil {
		return nutrition.Targets{}, apperrors.Wrap(err, "failed to compute targets")
	}
	return targets, nil
}

// load returns the stored partial, consulting the cache first. A missing
// record is an empty partial. Cache failures only cost a database read.
func (s *Service) load(ctx context.Context, userID string) (profile.Document, error) {
	key := cacheKeyPrefix + userID

	if cached, err := s.cache.Get(ctx, key); err == nil {
		var doc profile.Document
		if err := json.Unmarshal(cached, &doc); err == nil {
			return doc, nil
		}
		s.logger.Warn("Discarding unreadable cached profile", zap.String("user_id", userID))
	} else if !errors.Is(err, outbound.ErrCacheMiss) {
		s.logger.Warn("Profile cache read failed", zap.String("user_id", userID), zap.Error(err))
	}

	gen := s.generation.Load()
	doc, err := s.repo.Find(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load profile", err)
	}
	if doc == nil {
		doc = profile.Document{}
	}

	if s.generation.Load() != gen {
		return doc, nil
	}
	if data, err := json.Marshal(doc); err == nil {
		if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
			s.logger.Warn("Profile cache write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return doc, nil
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	s.generation.Add(1)
	if err := s.cache.Delete(ctx, cacheKeyPrefix+userID); err != nil {
		s.logger.Warn("Profile cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}

// complete fills macro targets, TDEE and lean body mass from the computed
// plan when the profile has none of its own. Profiles that cannot be decoded
// or lack the required measurements are returned unchanged.
func (s *Service) complete(doc profile.Document) profile.Document {
	settings, err := doc.Decode()
	if err != nil {
		s.logger.Debug("Profile not decodable, skipping target defaulting", zap.Error(err))
		return doc
	}
	if !settings.MacroTargets.IsZero() {
		return doc
	}

	targets, err := nutrition.Compute(settings)
	if err != nil {
		return doc
	}

	doc[profile.KeyMacroTargets] = map[string]any{
		"calories": targets.Macros.Calories,
		"protein":  targets.Macros.Protein,
		"carbs":    targets.Macros.Carbs,
		"fat":      targets.Macros.Fat,
	}
	if settings.TDEE == 0 {
		doc[profile.KeyTDEE] = targets.TDEE
	}
	if settings.LeanBodyMass == 0 && targets.LeanBodyMass > 0 {
		doc[profile.KeyLeanBodyMass] = targets.LeanBodyMass
	}
	return doc
}

func (s *Service) startSpan(ctx context.Context, name, userID string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("user.id", userID)))
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
