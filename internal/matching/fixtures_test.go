package matching

import (
	"context"
	"errors"
	"time"

	"github.com/imadgeboyega/kiekky-matching/internal/profile"
)

var errStoreDown = errors.New("store unavailable")

func attachment(s profile.AttachmentStyle) *profile.AttachmentStyle { return &s }

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// interactionTime is the fixed "now" used across tests
var interactionTime = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

// profileA is 30 at interactionTime
func profileA() *profile.Profile {
	return &profile.Profile{
		ID:                "user-a",
		BirthDate:         date(1994, time.January, 10),
		Interests:         []string{"hiking", "coffee"},
		PersonalityTraits: map[string]float64{"openness": 80},
	}
}

// profileB is 28 at interactionTime
func profileB() *profile.Profile {
	return &profile.Profile{
		ID:                "user-b",
		BirthDate:         date(1996, time.March, 1),
		Interests:         []string{"hiking", "art"},
		PersonalityTraits: map[string]float64{"openness": 70},
	}
}

func newProfileStore(profiles ...*profile.Profile) *profile.MemoryStore {
	store := profile.NewMemoryStore()
	for _, p := range profiles {
		store.Put(p)
	}
	return store
}

type failingInteractionStore struct {
	appendErr error
	readErr   error
}

func (s *failingInteractionStore) Append(ctx context.Context, event *InteractionEvent) error {
	return s.appendErr
}

func (s *failingInteractionStore) RecentByUser(ctx context.Context, userID string, limit int) ([]*InteractionEvent, error) {
	return nil, s.readErr
}

type failingPatternStore struct {
	err error
}

func (s *failingPatternStore) Append(ctx context.Context, pattern *SuccessPattern) error {
	return s.err
}

func (s *failingPatternStore) ListByUser(ctx context.Context, userID string, limit int) ([]*SuccessPattern, error) {
	return nil, s.err
}

type failingProfileStore struct{}

func (failingProfileStore) GetProfile(ctx context.Context, id string) (*profile.Profile, error) {
	return nil, errStoreDown
}

func (failingProfileStore) GetProfilesByIDs(ctx context.Context, ids []string) (map[string]*profile.Profile, error) {
	return nil, errStoreDown
}

func likeAt(userID, targetID string, at time.Time) *InteractionEvent {
	return &InteractionEvent{
		UserID:       userID,
		TargetUserID: targetID,
		Action:       ActionLike,
		Timestamp:    at,
	}
}
