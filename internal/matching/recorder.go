// internal/matching/recorder.go
// Recording is two-phase: the raw interaction is written durably and must
// succeed; the success pattern for a match or message is best-effort.

package matching

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/imadgeboyega/kiekky-matching/internal/common/logging"
	"github.com/imadgeboyega/kiekky-matching/internal/common/utils"
	"github.com/imadgeboyega/kiekky-matching/internal/profile"
)

type Recorder struct {
	interactions InteractionStore
	patterns     SuccessPatternStore
	profiles     profile.Store
	scorer       *Scorer
	now          func() time.Time
}

func NewRecorder(interactions InteractionStore, patterns SuccessPatternStore, profiles profile.Store, scorer *Scorer) *Recorder {
	if scorer == nil {
		scorer = NewScorer()
	}
	return &Recorder{
		interactions: interactions,
		patterns:     patterns,
		profiles:     profiles,
		scorer:       scorer,
		now:          time.Now,
	}
}

// Record validates and stores event. It returns *ValidationError for a
// malformed event and *StorageError when the interaction cannot be written.
// Enrichment problems are logged and never returned.
func (r *Recorder) Record(ctx context.Context, event *InteractionEvent) error {
	// 1. Validate
	if err := validateEvent(event); err != nil {
		interactionsRejected.WithLabelValues("validation").Inc()
		return err
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.ContextData == nil {
		event.ContextData = ContextData{}
	}

	// 2. Durable write
	if err := r.interactions.Append(ctx, event); err != nil {
		interactionsRejected.WithLabelValues("storage").Inc()
		return &StorageError{Op: "append interaction", Err: err}
	}
	interactionsRecorded.WithLabelValues(string(event.Action)).Inc()

	// 3. Enrichment
	if event.Action.CreatesPattern() {
		r.recordSuccessPattern(ctx, event)
	}

	return nil
}

func validateEvent(event *InteractionEvent) error {
	if event == nil {
		return &ValidationError{Fields: []string{"event is required"}}
	}

	fields, err := utils.ValidateStruct(event)
	if err != nil {
		return &ValidationError{Fields: []string{err.Error()}}
	}
	if len(fields) == 0 && event.Timestamp.IsZero() {
		fields = append(fields, "Timestamp is required")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (r *Recorder) recordSuccessPattern(ctx context.Context, event *InteractionEvent) {
	log := logging.Ctx(ctx).With().
		Str("interaction_id", event.ID.String()).
		Str("user_id", event.UserID).
		Str("target_user_id", event.TargetUserID).
		Str("action", string(event.Action)).
		Logger()

	profiles, err := r.profiles.GetProfilesByIDs(ctx, []string{event.UserID, event.TargetUserID})
	if err != nil {
		enrichmentSkipped.WithLabelValues(skipProfileFetch).Inc()
		log.Warn().Err(err).Msg("success pattern skipped: profile fetch failed")
		return
	}

	user, target := profiles[event.UserID], profiles[event.TargetUserID]
	if user == nil || target == nil {
		enrichmentSkipped.WithLabelValues(skipProfileMiss).Inc()
		log.Warn().
			Bool("user_found", user != nil).
			Bool("target_found", target != nil).
			Msg("success pattern skipped: profile not found")
		return
	}

	metrics := r.scorer.Snapshot(user, target, event.Timestamp, event.Action)
	pattern := &SuccessPattern{
		ID:             uuid.New(),
		UserID:         event.UserID,
		TargetUserID:   event.TargetUserID,
		SuccessMetrics: metrics,
		CreatedAt:      r.now().UTC(),
	}

	if err := r.patterns.Append(ctx, pattern); err != nil {
		enrichmentSkipped.WithLabelValues(skipPatternWrite).Inc()
		log.Warn().Err(err).Msg("success pattern skipped: write failed")
		return
	}

	successPatternsCreated.WithLabelValues(string(event.Action)).Inc()
	log.Debug().
		Float64("interest_overlap", metrics.InterestOverlap).
		Float64("personality_compatibility", metrics.PersonalityCompatibility).
		Msg("success pattern recorded")
}
