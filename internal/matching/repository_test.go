package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "postgres"), mock
}

func TestPostgresInteractionStoreAppend(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresInteractionStore(db)

	event := &InteractionEvent{
		ID:           uuid.New(),
		UserID:       "user-a",
		TargetUserID: "user-b",
		Action:       ActionLike,
		Timestamp:    interactionTime,
		ContextData:  ContextData{"source": "discover"},
	}

	mock.ExpectExec("INSERT INTO user_interactions").
		WithArgs(event.ID.String(), "user-a", "user-b", "like", []byte(`{"source":"discover"}`), interactionTime).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Append(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresInteractionStoreAppendError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresInteractionStore(db)

	mock.ExpectExec("INSERT INTO user_interactions").WillReturnError(errors.New("disk full"))

	err := store.Append(context.Background(), likeAt("a", "b", interactionTime))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert interaction")
}

func TestPostgresInteractionStoreRecentByUser(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresInteractionStore(db)

	id1, id2 := uuid.New(), uuid.New()
	rows := sqlmock.NewRows([]string{"id", "user_id", "target_user_id", "action", "context_data", "created_at"}).
		AddRow(id1.String(), "user-a", "user-b", "match", []byte(`{"screen":"chat"}`), interactionTime).
		AddRow(id2.String(), "user-a", "user-c", "pass", nil, interactionTime.Add(-time.Hour))

	mock.ExpectQuery("FROM user_interactions").
		WithArgs("user-a", 100).
		WillReturnRows(rows)

	events, err := store.RecentByUser(context.Background(), "user-a", 100)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, id1, events[0].ID)
	assert.Equal(t, ActionMatch, events[0].Action)
	assert.Equal(t, "chat", events[0].ContextData["screen"])
	assert.True(t, events[0].Timestamp.Equal(interactionTime))
	assert.Equal(t, ContextData{}, events[1].ContextData)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSuccessPatternStore(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresSuccessPatternStore(db)

	pattern := &SuccessPattern{
		ID:           uuid.New(),
		UserID:       "user-a",
		TargetUserID: "user-b",
		SuccessMetrics: SuccessMetrics{
			AgeDifference:   2,
			InterestOverlap: 0.5,
			SuccessType:     ActionMatch,
			InteractionTime: interactionTime,
		},
		CreatedAt: interactionTime,
	}

	mock.ExpectExec("INSERT INTO success_patterns").
		WithArgs(pattern.ID.String(), "user-a", "user-b", sqlmock.AnyArg(), interactionTime).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.Append(context.Background(), pattern))

	metrics, err := pattern.SuccessMetrics.Value()
	require.NoError(t, err)

	mock.ExpectQuery("FROM success_patterns").
		WithArgs("user-a", 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "target_user_id", "success_metrics", "created_at"}).
			AddRow(pattern.ID.String(), "user-a", "user-b", metrics, interactionTime))

	patterns, err := store.ListByUser(context.Background(), "user-a", 50)
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	assert.Equal(t, pattern.ID, patterns[0].ID)
	assert.Equal(t, 2, patterns[0].SuccessMetrics.AgeDifference)
	assert.Equal(t, 0.5, patterns[0].SuccessMetrics.InterestOverlap)
	assert.Equal(t, ActionMatch, patterns[0].SuccessMetrics.SuccessType)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSuccessPatternStoreQueryError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresSuccessPatternStore(db)

	mock.ExpectQuery("FROM success_patterns").WillReturnError(errors.New("timeout"))

	_, err := store.ListByUser(context.Background(), "user-a", 50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load success patterns")
}

func TestMemoryInteractionStoreOrdering(t *testing.T) {
	store := NewMemoryInteractionStore()
	ctx := context.Background()

	older := likeAt("u", "t1", interactionTime.Add(-time.Hour))
	newer := likeAt("u", "t2", interactionTime)
	tieA := likeAt("u", "t3", interactionTime.Add(-2*time.Hour))
	tieB := likeAt("u", "t4", interactionTime.Add(-2*time.Hour))
	for _, e := range []*InteractionEvent{older, newer, tieA, tieB, likeAt("other", "t", interactionTime)} {
		require.NoError(t, store.Append(ctx, e))
	}

	events, err := store.RecentByUser(ctx, "u", 3)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "t2", events[0].TargetUserID)
	assert.Equal(t, "t1", events[1].TargetUserID)
	assert.Equal(t, "t4", events[2].TargetUserID, "ties keep the latest insert first")
}
