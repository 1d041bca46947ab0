// internal/profile/models.go
// Read model of the attributes the matching engine scores on.
// Profiles are owned and edited by the profile service.

package profile

import (
	"context"
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")

// AttachmentStyle is a user's self-reported attachment style
type AttachmentStyle string

const (
	AttachmentSecure   AttachmentStyle = "secure"
	AttachmentAnxious  AttachmentStyle = "anxious"
	AttachmentAvoidant AttachmentStyle = "avoidant"
	AttachmentFearful  AttachmentStyle = "fearful"
)

// Valid reports whether s is one of the known attachment styles
func (s AttachmentStyle) Valid() bool {
	switch s {
	case AttachmentSecure, AttachmentAnxious, AttachmentAvoidant, AttachmentFearful:
		return true
	}
	return false
}

// Coordinates in decimal degrees
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Profile holds the scoring attributes of one user
type Profile struct {
	ID                string             `json:"id"`
	BirthDate         *time.Time         `json:"birth_date,omitempty"`
	Location          *Coordinates       `json:"location,omitempty"`
	Bio               *string            `json:"bio,omitempty"`
	Interests         []string           `json:"interests"`
	PersonalityTraits map[string]float64 `json:"personality_traits"` // trait name -> 0..100
	AttachmentStyle   *AttachmentStyle   `json:"attachment_style,omitempty"`
}

// Store fetches profiles. Missing ids are omitted from GetProfilesByIDs
// rather than reported as errors.
type Store interface {
	GetProfile(ctx context.Context, id string) (*Profile, error)
	GetProfilesByIDs(ctx context.Context, ids []string) (map[string]*Profile, error)
}
