// internal/matching/preferences.go

package matching

import (
	"context"
	"math"
	"time"
)

const (
	DefaultInteractionWindow = 100
	DefaultPatternWindow     = 50

	// Preferred age ranges are centred on a fixed baseline, not the user's age
	baselineAge = 25.0

	minPersonalityFloor = 0.3
	minInterestFloor    = 0.1
	minAttachmentFloor  = 0.3
	thresholdMargin     = 0.1
)

var defaultAgeRange = [2]float64{22, 35}

// DeriverConfig bounds the history read per derivation
type DeriverConfig struct {
	InteractionWindow int
	PatternWindow     int
	// Location decides which hour of day an interaction falls in. Default UTC.
	Location *time.Location
}

// Deriver builds preference profiles from a user's recent history.
// It only reads, so it is safe to call concurrently with Record.
type Deriver struct {
	interactions InteractionStore
	patterns     SuccessPatternStore
	cfg          DeriverConfig
}

func NewDeriver(interactions InteractionStore, patterns SuccessPatternStore, cfg DeriverConfig) *Deriver {
	if cfg.InteractionWindow <= 0 {
		cfg.InteractionWindow = DefaultInteractionWindow
	}
	if cfg.PatternWindow <= 0 {
		cfg.PatternWindow = DefaultPatternWindow
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Deriver{
		interactions: interactions,
		patterns:     patterns,
		cfg:          cfg,
	}
}

// Derive computes userID's preference profile. Read failures are returned
// as *StorageError.
func (d *Deriver) Derive(ctx context.Context, userID string) (*PreferenceProfile, error) {
	start := time.Now()
	defer func() {
		deriveDuration.Observe(time.Since(start).Seconds())
	}()

	events, err := d.interactions.RecentByUser(ctx, userID, d.cfg.InteractionWindow)
	if err != nil {
		return nil, &StorageError{Op: "read interactions", Err: err}
	}

	patterns, err := d.patterns.ListByUser(ctx, userID, d.cfg.PatternWindow)
	if err != nil {
		return nil, &StorageError{Op: "read success patterns", Err: err}
	}

	prefs := &PreferenceProfile{
		PreferredAgeRange:  defaultAgeRange,
		ActiveTimePatterns: d.activeTimePatterns(events),
		SampleSize:         len(events),
	}

	if len(patterns) == 0 {
		return prefs, nil
	}

	var ageSum, interestSum, personalitySum, attachmentSum float64
	for _, p := range patterns {
		ageSum += float64(p.SuccessMetrics.AgeDifference)
		interestSum += p.SuccessMetrics.InterestOverlap
		personalitySum += p.SuccessMetrics.PersonalityCompatibility
		attachmentSum += p.SuccessMetrics.AttachmentCompatibility
	}
	n := float64(len(patterns))

	avgAge := ageSum / n
	prefs.PreferredAgeRange = [2]float64{baselineAge - avgAge, baselineAge + avgAge}

	avgInterest := interestSum / n
	prefs.SuccessfulInterestPatterns = &OverlapPreference{
		MinimumOverlap:   math.Max(minInterestFloor, avgInterest-thresholdMargin),
		PreferredOverlap: avgInterest,
	}

	avgPersonality := personalitySum / n
	prefs.PersonalityPreferences = &CompatibilityPreference{
		MinimumCompatibility:   math.Max(minPersonalityFloor, avgPersonality-thresholdMargin),
		PreferredCompatibility: avgPersonality,
	}

	avgAttachment := attachmentSum / n
	prefs.AttachmentStylePreferences = &CompatibilityPreference{
		MinimumCompatibility:   math.Max(minAttachmentFloor, avgAttachment-thresholdMargin),
		PreferredCompatibility: avgAttachment,
	}

	return prefs, nil
}

// activeTimePatterns counts successful interactions per time slot.
// Every slot is present, even with a zero count.
func (d *Deriver) activeTimePatterns(events []*InteractionEvent) map[TimeSlot]int {
	counts := map[TimeSlot]int{
		SlotMorning:   0,
		SlotAfternoon: 0,
		SlotEvening:   0,
	}
	for _, e := range events {
		if !e.Action.IsSuccessful() {
			continue
		}
		counts[SlotForHour(e.Timestamp.In(d.cfg.Location).Hour())]++
	}
	return counts
}
