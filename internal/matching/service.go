// internal/matching/service.go

package matching

import (
	"context"
	"fmt"
	"time"

	"github.com/imadgeboyega/kiekky-matching/internal/common/logging"
	"github.com/imadgeboyega/kiekky-matching/internal/profile"
)

type Service interface {
	RecordInteraction(ctx context.Context, event *InteractionEvent) error
	GetPreferences(ctx context.Context, userID string) (*PreferenceProfile, error)
	GetCompatibility(ctx context.Context, userID, targetID string) (*CompatibilityResponse, error)
	InvalidateProfile(ctx context.Context, userID string) error
}

// profileInvalidator is implemented by caching profile stores
type profileInvalidator interface {
	Invalidate(ctx context.Context, ids ...string) error
}

type service struct {
	recorder *Recorder
	deriver  *Deriver
	profiles profile.Store
	scorer   *Scorer
	now      func() time.Time
}

// Stores groups the storage ports the service is built on
type Stores struct {
	Interactions    InteractionStore
	SuccessPatterns SuccessPatternStore
	Profiles        profile.Store
}

func NewService(stores Stores, cfg DeriverConfig) Service {
	scorer := NewScorer()
	return &service{
		recorder: NewRecorder(stores.Interactions, stores.SuccessPatterns, stores.Profiles, scorer),
		deriver:  NewDeriver(stores.Interactions, stores.SuccessPatterns, cfg),
		profiles: stores.Profiles,
		scorer:   scorer,
		now:      time.Now,
	}
}

func (s *service) RecordInteraction(ctx context.Context, event *InteractionEvent) error {
	return s.recorder.Record(ctx, event)
}

func (s *service) GetPreferences(ctx context.Context, userID string) (*PreferenceProfile, error) {
	return s.deriver.Derive(ctx, userID)
}

// GetCompatibility scores userID against targetID as of now
func (s *service) GetCompatibility(ctx context.Context, userID, targetID string) (*CompatibilityResponse, error) {
	// 1. Load both profiles in one batch
	profiles, err := s.profiles.GetProfilesByIDs(ctx, []string{userID, targetID})
	if err != nil {
		return nil, &StorageError{Op: "read profiles", Err: err}
	}
	user, target := profiles[userID], profiles[targetID]
	if user == nil || target == nil {
		return nil, fmt.Errorf("%w: %s", ErrProfileMissing, missingID(user, userID, targetID))
	}

	// 2. Snapshot and score
	metrics := s.scorer.Snapshot(user, target, s.now().UTC(), "")
	score := s.scorer.Score(metrics)
	compatibilityScores.Observe(score)

	resp := &CompatibilityResponse{
		UserID:        userID,
		TargetUserID:  targetID,
		Metrics:       metrics,
		Score:         score,
		AdjustedScore: score,
	}

	// 3. Preference adjustment is optional; log but don't fail
	prefs, err := s.deriver.Derive(ctx, userID)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("preferences unavailable, returning unadjusted score")
		return resp, nil
	}
	resp.AdjustedScore = s.scorer.Bias(score, metrics, prefs)

	return resp, nil
}

// InvalidateProfile drops any cached copy of userID's profile so the next
// read goes to the backing store. Uncached stores have nothing to drop.
func (s *service) InvalidateProfile(ctx context.Context, userID string) error {
	inv, ok := s.profiles.(profileInvalidator)
	if !ok {
		return nil
	}
	if err := inv.Invalidate(ctx, userID); err != nil {
		return &StorageError{Op: "invalidate profile", Err: err}
	}
	profileInvalidations.Inc()
	logging.Ctx(ctx).Debug().Str("user_id", userID).Msg("profile cache entry invalidated")
	return nil
}

func missingID(user *profile.Profile, userID, targetID string) string {
	if user == nil {
		return userID
	}
	return targetID
}
