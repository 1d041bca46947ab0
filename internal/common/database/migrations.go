// internal/common/database/migrations.go
// Schema for the profile read model, interactions and success patterns

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/imadgeboyega/kiekky-matching/internal/common/logging"
)

// Migrations are idempotent and run in order.
var Migrations = []string{
	// Profile read model, written by the profile service
	`CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		birth_date DATE,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		bio TEXT,
		attachment_style VARCHAR(16)
			CHECK (attachment_style IN ('secure', 'anxious', 'avoidant', 'fearful')),
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS interests (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) UNIQUE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS profile_interests (
		profile_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		interest_id INTEGER NOT NULL REFERENCES interests(id) ON DELETE CASCADE,
		PRIMARY KEY (profile_id, interest_id)
	)`,
	`CREATE TABLE IF NOT EXISTS personality_traits (
		profile_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		trait_name VARCHAR(50) NOT NULL,
		trait_value DOUBLE PRECISION NOT NULL CHECK (trait_value BETWEEN 0 AND 100),
		PRIMARY KEY (profile_id, trait_name)
	)`,

	// Interaction history, append-only
	`CREATE TABLE IF NOT EXISTS user_interactions (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		target_user_id TEXT NOT NULL,
		action VARCHAR(20) NOT NULL
			CHECK (action IN ('view', 'like', 'pass', 'super_like', 'match', 'message')),
		context_data JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_interactions_user_created
		ON user_interactions(user_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS success_patterns (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		target_user_id TEXT NOT NULL,
		success_metrics JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_success_patterns_user_created
		ON success_patterns(user_id, created_at DESC)`,
}

// RunMigrations executes every migration, skipping objects that already exist
func RunMigrations(ctx context.Context, db *sqlx.DB) error {
	for i, migration := range Migrations {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			if !strings.Contains(err.Error(), "already exists") {
				return fmt.Errorf("migration %d failed: %w", i+1, err)
			}
			logging.Debug().Int("migration", i+1).Msg("migration skipped, already exists")
		}
	}

	logging.Info().Int("count", len(Migrations)).Msg("migrations executed")
	return nil
}
