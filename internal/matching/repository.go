// internal/matching/repository.go

package matching

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type postgresInteractionRepository struct {
	db *sqlx.DB
}

// NewPostgresInteractionStore stores interactions in user_interactions
func NewPostgresInteractionStore(db *sqlx.DB) InteractionStore {
	return &postgresInteractionRepository{db: db}
}

func (r *postgresInteractionRepository) Append(ctx context.Context, event *InteractionEvent) error {
	query := `
		INSERT INTO user_interactions (id, user_id, target_user_id, action, context_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.UserID, event.TargetUserID, string(event.Action), event.ContextData, event.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}
	return nil
}

func (r *postgresInteractionRepository) RecentByUser(ctx context.Context, userID string, limit int) ([]*InteractionEvent, error) {
	query := `
		SELECT id, user_id, target_user_id, action, context_data, created_at
		FROM user_interactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	events := []*InteractionEvent{}
	if err := r.db.SelectContext(ctx, &events, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}
	return events, nil
}

type postgresPatternRepository struct {
	db *sqlx.DB
}

// NewPostgresSuccessPatternStore stores success patterns in success_patterns
func NewPostgresSuccessPatternStore(db *sqlx.DB) SuccessPatternStore {
	return &postgresPatternRepository{db: db}
}

func (r *postgresPatternRepository) Append(ctx context.Context, pattern *SuccessPattern) error {
	query := `
		INSERT INTO success_patterns (id, user_id, target_user_id, success_metrics, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		pattern.ID, pattern.UserID, pattern.TargetUserID, pattern.SuccessMetrics, pattern.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert success pattern: %w", err)
	}
	return nil
}

func (r *postgresPatternRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*SuccessPattern, error) {
	query := `
		SELECT id, user_id, target_user_id, success_metrics, created_at
		FROM success_patterns
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	patterns := []*SuccessPattern{}
	if err := r.db.SelectContext(ctx, &patterns, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to load success patterns: %w", err)
	}
	return patterns, nil
}
