// internal/matching/compatibility.go
// Pairwise attribute comparisons. All of these are pure and never fail.

package matching

import (
	"math"
	"strings"
	"time"

	"github.com/imadgeboyega/kiekky-matching/internal/profile"
)

const neutralCompatibility = 0.5

// attachmentMatrix is read as [subject][other]; it is not symmetric
var attachmentMatrix = map[profile.AttachmentStyle]map[profile.AttachmentStyle]float64{
	profile.AttachmentSecure: {
		profile.AttachmentSecure:   0.9,
		profile.AttachmentAnxious:  0.7,
		profile.AttachmentAvoidant: 0.6,
		profile.AttachmentFearful:  0.5,
	},
	profile.AttachmentAnxious: {
		profile.AttachmentSecure:   0.8,
		profile.AttachmentAnxious:  0.4,
		profile.AttachmentAvoidant: 0.3,
		profile.AttachmentFearful:  0.5,
	},
	profile.AttachmentAvoidant: {
		profile.AttachmentSecure:   0.7,
		profile.AttachmentAnxious:  0.3,
		profile.AttachmentAvoidant: 0.5,
		profile.AttachmentFearful:  0.4,
	},
	profile.AttachmentFearful: {
		profile.AttachmentSecure:   0.6,
		profile.AttachmentAnxious:  0.5,
		profile.AttachmentAvoidant: 0.4,
		profile.AttachmentFearful:  0.6,
	},
}

// AgeAt returns the age in whole years of someone born at birth, at now
func AgeAt(birth, now time.Time) int {
	now = now.In(birth.Location())
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// AgeDifference is the absolute difference in whole-year ages at now.
// An unknown birth date yields 0.
func AgeDifference(a, b *time.Time, now time.Time) int {
	if a == nil || b == nil {
		return 0
	}
	diff := AgeAt(*a, now) - AgeAt(*b, now)
	if diff < 0 {
		diff = -diff
	}
	return diff
}

// InterestOverlap is |A∩B| / max(|A|, |B|) over distinct interest names
func InterestOverlap(a, b []string) float64 {
	setA := interestSet(a)
	setB := interestSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	shared := 0
	for name := range setA {
		if _, ok := setB[name]; ok {
			shared++
		}
	}

	larger := len(setA)
	if len(setB) > larger {
		larger = len(setB)
	}
	return float64(shared) / float64(larger)
}

func interestSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

// PersonalityCompatibility averages 1 - |a-b|/100 over traits both sides have.
// With no shared trait the result is neutral.
func PersonalityCompatibility(a, b map[string]float64) float64 {
	total := 0.0
	shared := 0
	for trait, va := range a {
		vb, ok := b[trait]
		if !ok {
			continue
		}
		total += 1 - math.Abs(clampTrait(va)-clampTrait(vb))/100
		shared++
	}

	if shared == 0 {
		return neutralCompatibility
	}
	return total / float64(shared)
}

func clampTrait(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

// AttachmentCompatibility looks up subject's row of the attachment matrix
func AttachmentCompatibility(subject, other *profile.AttachmentStyle) float64 {
	if subject == nil || other == nil {
		return neutralCompatibility
	}
	row, ok := attachmentMatrix[*subject]
	if !ok {
		return neutralCompatibility
	}
	score, ok := row[*other]
	if !ok {
		return neutralCompatibility
	}
	return score
}
