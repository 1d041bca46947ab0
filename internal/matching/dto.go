// internal/matching/dto.go

package matching

import "time"

// RecordInteractionRequest is the body of POST /interactions.
// Field-level validation happens on the resulting InteractionEvent.
type RecordInteractionRequest struct {
	UserID       string                 `json:"user_id"`
	TargetUserID string                 `json:"target_user_id"`
	Action       Action                 `json:"action"`
	Timestamp    *time.Time             `json:"timestamp"`
	ContextData  map[string]interface{} `json:"context_data,omitempty"`
}

// ToEvent converts the request into an unsaved InteractionEvent
func (r *RecordInteractionRequest) ToEvent() *InteractionEvent {
	event := &InteractionEvent{
		UserID:       r.UserID,
		TargetUserID: r.TargetUserID,
		Action:       r.Action,
		ContextData:  ContextData(r.ContextData),
	}
	if r.Timestamp != nil {
		event.Timestamp = *r.Timestamp
	}
	return event
}

// CompatibilityResponse is the snapshot for a pair plus its scores
type CompatibilityResponse struct {
	UserID       string         `json:"user_id"`
	TargetUserID string         `json:"target_user_id"`
	Metrics      SuccessMetrics `json:"metrics"`
	Score        float64        `json:"score"`
	// AdjustedScore applies the user's learned preferences to Score
	AdjustedScore float64 `json:"adjusted_score"`
}
