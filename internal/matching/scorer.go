// internal/matching/scorer.go

package matching

import (
	"math"
	"time"

	"github.com/imadgeboyega/kiekky-matching/internal/profile"
)

// Weights used by Score. They sum to 1.
const (
	weightInterests   = 0.30
	weightPersonality = 0.25
	weightAttachment  = 0.20
	weightLocation    = 0.15
	weightAge         = 0.10

	locationDecayMiles = 50.0
	ageToleranceYears  = 15.0
)

// Scorer builds compatibility snapshots for profile pairs. It holds no state.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Snapshot compares user against target as of interactionTime.
// Missing attributes fall back to each function's default, so it never fails.
func (s *Scorer) Snapshot(user, target *profile.Profile, interactionTime time.Time, successType Action) SuccessMetrics {
	if user == nil {
		user = &profile.Profile{}
	}
	if target == nil {
		target = &profile.Profile{}
	}

	return SuccessMetrics{
		AgeDifference:            AgeDifference(user.BirthDate, target.BirthDate, interactionTime),
		InterestOverlap:          InterestOverlap(user.Interests, target.Interests),
		PersonalityCompatibility: PersonalityCompatibility(user.PersonalityTraits, target.PersonalityTraits),
		LocationDistance:         DistanceMiles(user.Location, target.Location),
		AttachmentCompatibility:  AttachmentCompatibility(user.AttachmentStyle, target.AttachmentStyle),
		InteractionTime:          interactionTime,
		SuccessType:              successType,
	}
}

// Score folds a snapshot into a single match score in [0, 1]
func (s *Scorer) Score(m SuccessMetrics) float64 {
	// 1. Location proximity decays exponentially with distance
	proximity := math.Exp(-m.LocationDistance / locationDecayMiles)

	// 2. Age closeness falls off linearly
	ageCloseness := math.Max(0, 1-float64(m.AgeDifference)/ageToleranceYears)

	total := m.InterestOverlap*weightInterests +
		m.PersonalityCompatibility*weightPersonality +
		m.AttachmentCompatibility*weightAttachment +
		proximity*weightLocation +
		ageCloseness*weightAge

	return clampUnit(total)
}

// Bias nudges score toward what has worked for the user before.
// A nil or empty preference profile leaves the score unchanged.
func (s *Scorer) Bias(score float64, m SuccessMetrics, prefs *PreferenceProfile) float64 {
	if prefs == nil || prefs.SampleSize == 0 {
		return clampUnit(score)
	}

	// Age difference within the learned spread
	spread := (prefs.PreferredAgeRange[1] - prefs.PreferredAgeRange[0]) / 2
	if float64(m.AgeDifference) <= spread {
		score *= 1.05
	}

	if p := prefs.SuccessfulInterestPatterns; p != nil {
		if m.InterestOverlap >= p.PreferredOverlap {
			score *= 1.15
		} else if m.InterestOverlap < p.MinimumOverlap {
			score *= 0.9
		}
	}

	if p := prefs.PersonalityPreferences; p != nil {
		if m.PersonalityCompatibility >= p.PreferredCompatibility {
			score *= 1.1
		} else if m.PersonalityCompatibility < p.MinimumCompatibility {
			score *= 0.9
		}
	}

	if p := prefs.AttachmentStylePreferences; p != nil {
		if m.AttachmentCompatibility < p.MinimumCompatibility {
			score *= 0.95
		}
	}

	return clampUnit(score)
}

func clampUnit(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
