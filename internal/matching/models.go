// internal/matching/models.go

package matching

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Action is what a user did to a candidate
type Action string

const (
	ActionView      Action = "view"
	ActionLike      Action = "like"
	ActionPass      Action = "pass"
	ActionSuperLike Action = "super_like"
	ActionMatch     Action = "match"
	ActionMessage   Action = "message"
)

// Valid reports whether a is a known action
func (a Action) Valid() bool {
	switch a {
	case ActionView, ActionLike, ActionPass, ActionSuperLike, ActionMatch, ActionMessage:
		return true
	}
	return false
}

// IsSuccessful is true for the positive outcomes used by preference learning
func (a Action) IsSuccessful() bool {
	switch a {
	case ActionLike, ActionSuperLike, ActionMatch, ActionMessage:
		return true
	}
	return false
}

// CreatesPattern is true for outcomes that get a compatibility snapshot
func (a Action) CreatesPattern() bool {
	return a == ActionMatch || a == ActionMessage
}

// ContextData is opaque client metadata stored alongside an interaction
type ContextData map[string]interface{}

// Scan implements the sql.Scanner interface for JSONB columns
func (c *ContextData) Scan(value interface{}) error {
	if value == nil {
		*c = ContextData{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	}
	return fmt.Errorf("cannot scan %T into ContextData", value)
}

// Value implements the driver.Valuer interface
func (c ContextData) Value() (driver.Value, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c)
}

// InteractionEvent is one immutable user action on a candidate
type InteractionEvent struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	UserID       string      `json:"user_id" db:"user_id" validate:"required,notblank"`
	TargetUserID string      `json:"target_user_id" db:"target_user_id" validate:"required,notblank"`
	Action       Action      `json:"action" db:"action" validate:"required,oneof=view like pass super_like match message"`
	Timestamp    time.Time   `json:"timestamp" db:"created_at" validate:"required"`
	ContextData  ContextData `json:"context_data" db:"context_data"`
}

// SuccessMetrics is the compatibility snapshot taken at a successful interaction
type SuccessMetrics struct {
	AgeDifference            int       `json:"age_difference"`
	InterestOverlap          float64   `json:"interest_overlap"`
	PersonalityCompatibility float64   `json:"personality_compatibility"`
	LocationDistance         float64   `json:"location_distance"` // miles
	AttachmentCompatibility  float64   `json:"attachment_compatibility"`
	InteractionTime          time.Time `json:"interaction_time"`
	SuccessType              Action    `json:"success_type,omitempty"` // empty on live compatibility snapshots
}

// Scan implements the sql.Scanner interface for SuccessMetrics
func (m *SuccessMetrics) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return fmt.Errorf("cannot scan %T into SuccessMetrics", value)
}

// Value implements the driver.Valuer interface for SuccessMetrics
func (m SuccessMetrics) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// SuccessPattern records the snapshot for a match or message
type SuccessPattern struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	UserID         string         `json:"user_id" db:"user_id"`
	TargetUserID   string         `json:"target_user_id" db:"target_user_id"`
	SuccessMetrics SuccessMetrics `json:"success_metrics" db:"success_metrics"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

// TimeSlot buckets the hour of day of an interaction
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"   // [0, 12)
	SlotAfternoon TimeSlot = "afternoon" // [12, 18)
	SlotEvening   TimeSlot = "evening"   // [18, 24)
)

// SlotForHour maps an hour of day onto its bucket
func SlotForHour(hour int) TimeSlot {
	switch {
	case hour < 12:
		return SlotMorning
	case hour < 18:
		return SlotAfternoon
	default:
		return SlotEvening
	}
}

// OverlapPreference is the interest overlap seen across successful interactions
type OverlapPreference struct {
	MinimumOverlap   float64 `json:"minimum_overlap"`
	PreferredOverlap float64 `json:"preferred_overlap"`
}

// CompatibilityPreference is the score range seen across successful interactions
type CompatibilityPreference struct {
	MinimumCompatibility   float64 `json:"minimum_compatibility"`
	PreferredCompatibility float64 `json:"preferred_compatibility"`
}

// PreferenceProfile is derived on demand from recent history and never stored
type PreferenceProfile struct {
	PreferredAgeRange          [2]float64               `json:"preferred_age_range"`
	SuccessfulInterestPatterns *OverlapPreference       `json:"successful_interest_patterns"`
	PersonalityPreferences     *CompatibilityPreference `json:"personality_preferences"`
	ActiveTimePatterns         map[TimeSlot]int         `json:"active_time_patterns"`
	AttachmentStylePreferences *CompatibilityPreference `json:"attachment_style_preferences"`
	SampleSize                 int                      `json:"sample_size"`
}

// InteractionStore is the append-only interaction log
type InteractionStore interface {
	Append(ctx context.Context, event *InteractionEvent) error
	// RecentByUser returns up to limit events by userID, newest first
	RecentByUser(ctx context.Context, userID string, limit int) ([]*InteractionEvent, error)
}

// SuccessPatternStore is the append-only success pattern log
type SuccessPatternStore interface {
	Append(ctx context.Context, pattern *SuccessPattern) error
	// ListByUser returns up to limit patterns for userID, newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]*SuccessPattern, error)
}
