package profiles

import (
	"context"
	"regexp"
	"testing"
	"time"

	"numerology-workers/internal/common/logger"
	"numerology-workers/internal/numerology"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RecordEvaluation(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(db, nil, 0, logger.NewTestLogger(t))

	ev, err := numerology.Evaluate(&numerology.Profile{Expression: 1, Destiny: 2, Path: 3},
		numerology.Candidate{Name: "Architect", Vibration: 6})
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(insertEvaluationQuery)).
		WithArgs(sqlmock.AnyArg(), "user-1", "Architect", 6, false, 35,
			ev.Suggestions.IdealVibration, ev.Suggestions.MaxPossibleScore).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := store.RecordEvaluation(context.Background(), "user-1", ev)
	require.NoError(t, err)
	_, parseErr := uuid.Parse(id)
	assert.NoError(t, parseErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_RecordEvaluation_AnonymousStoresNulls(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(db, nil, 0, logger.NewTestLogger(t))

	ev, err := numerology.Evaluate(&numerology.Profile{Expression: 5, Destiny: 5, Path: 5},
		numerology.Candidate{Vibration: nil})
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(insertEvaluationQuery)).
		WithArgs(sqlmock.AnyArg(), nil, nil, 1, true, ev.Score,
			ev.Suggestions.IdealVibration, ev.Suggestions.MaxPossibleScore).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err = store.RecordEvaluation(context.Background(), "", ev)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_RecordEvaluation_Error(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(db, nil, 0, logger.NewTestLogger(t))

	mock.ExpectExec(regexp.QuoteMeta(insertEvaluationQuery)).WillReturnError(assert.AnError)

	_, err := store.RecordEvaluation(context.Background(), "u", &numerology.Evaluation{Vibration: 1, Score: 50})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestStore_ListEvaluations(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(db, nil, 0, logger.NewTestLogger(t))
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"evaluation_id", "profession", "profession_vibration", "vibration_defaulted",
		"calculated_score", "ideal_vibration", "max_possible_score", "created_at",
	}).
		AddRow("e-2", "Teacher", 6, false, 80, 5, 100, created).
		AddRow("e-1", nil, 1, true, 45, 5, 100, created.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(listEvaluationsQuery)).
		WithArgs("user-1", 20).
		WillReturnRows(rows)

	got, err := store.ListEvaluations(context.Background(), "user-1", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Teacher", got[0].Profession)
	assert.Equal(t, "", got[1].Profession)
	assert.True(t, got[1].Defaulted)
	assert.Equal(t, "user-1", got[1].UserID)
	assert.Equal(t, created, got[0].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
