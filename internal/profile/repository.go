// internal/profile/repository.go

package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a profile store over the profiles,
// profile_interests and personality_traits tables
func NewPostgresRepository(db *sqlx.DB) Store {
	return &postgresRepository{db: db}
}

type profileRow struct {
	ID              string     `db:"id"`
	BirthDate       *time.Time `db:"birth_date"`
	Latitude        *float64   `db:"latitude"`
	Longitude       *float64   `db:"longitude"`
	Bio             *string    `db:"bio"`
	AttachmentStyle *string    `db:"attachment_style"`
}

type interestRow struct {
	ProfileID string `db:"profile_id"`
	Name      string `db:"name"`
}

type traitRow struct {
	ProfileID string  `db:"profile_id"`
	Name      string  `db:"trait_name"`
	Value     float64 `db:"trait_value"`
}

func (r *postgresRepository) GetProfile(ctx context.Context, id string) (*Profile, error) {
	profiles, err := r.GetProfilesByIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	p, ok := profiles[id]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// GetProfilesByIDs loads all requested profiles with three queries
func (r *postgresRepository) GetProfilesByIDs(ctx context.Context, ids []string) (map[string]*Profile, error) {
	result := make(map[string]*Profile, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `
		SELECT id, birth_date, latitude, longitude, bio, attachment_style
		FROM profiles
		WHERE id = ANY($1)`

	var rows []profileRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	if len(rows) == 0 {
		return result, nil
	}

	found := make([]string, 0, len(rows))
	for _, row := range rows {
		result[row.ID] = row.toProfile()
		found = append(found, row.ID)
	}

	query = `
		SELECT pi.profile_id, i.name
		FROM profile_interests pi
		JOIN interests i ON i.id = pi.interest_id
		WHERE pi.profile_id = ANY($1)
		ORDER BY pi.profile_id, i.name`

	var interests []interestRow
	if err := r.db.SelectContext(ctx, &interests, query, pq.Array(found)); err != nil {
		return nil, fmt.Errorf("failed to load interests: %w", err)
	}
	for _, in := range interests {
		if p, ok := result[in.ProfileID]; ok {
			p.Interests = append(p.Interests, in.Name)
		}
	}

	query = `
		SELECT profile_id, trait_name, trait_value
		FROM personality_traits
		WHERE profile_id = ANY($1)`

	var traits []traitRow
	if err := r.db.SelectContext(ctx, &traits, query, pq.Array(found)); err != nil {
		return nil, fmt.Errorf("failed to load personality traits: %w", err)
	}
	for _, tr := range traits {
		if p, ok := result[tr.ProfileID]; ok {
			p.PersonalityTraits[tr.Name] = tr.Value
		}
	}

	return result, nil
}

func (row profileRow) toProfile() *Profile {
	p := &Profile{
		ID:                row.ID,
		BirthDate:         row.BirthDate,
		Bio:               row.Bio,
		Interests:         []string{},
		PersonalityTraits: map[string]float64{},
	}

	// A location needs both halves
	if row.Latitude != nil && row.Longitude != nil {
		p.Location = &Coordinates{Latitude: *row.Latitude, Longitude: *row.Longitude}
	}

	if row.AttachmentStyle != nil {
		style := AttachmentStyle(*row.AttachmentStyle)
		if style.Valid() {
			p.AttachmentStyle = &style
		}
	}

	return p
}
