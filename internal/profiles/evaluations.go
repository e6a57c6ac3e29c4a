package profiles

import (
	"context"
	"fmt"
	"time"

	"numerology-workers/internal/numerology"

	"github.com/google/uuid"
)

const (
	insertEvaluationQuery = `INSERT INTO aptitude_evaluations
(evaluation_id, user_id, profession, profession_vibration, vibration_defaulted, calculated_score, ideal_vibration, max_possible_score)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	listEvaluationsQuery = `SELECT evaluation_id, profession, profession_vibration, vibration_defaulted, calculated_score, ideal_vibration, max_possible_score, created_at
FROM aptitude_evaluations WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
)

// EvaluationRecord is one stored row of aptitude_evaluations.
type EvaluationRecord struct {
	ID               string    `json:"evaluationId"`
	UserID           string    `json:"userId"`
	Profession       string    `json:"profession"`
	Vibration        int       `json:"profession_vibration"`
	Defaulted        bool      `json:"vibration_defaulted"`
	Score            int       `json:"calculated_score"`
	IdealVibration   int       `json:"ideal_vibration"`
	MaxPossibleScore int       `json:"max_possible_score"`
	CreatedAt        time.Time `json:"createdAt"`
}

// RecordEvaluation stores ev and returns the generated evaluation id. userID may be
// empty for anonymous (inline profile) evaluations.
func (s *Store) RecordEvaluation(ctx context.Context, userID string, ev *numerology.Evaluation) (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(ctx, insertEvaluationQuery,
		id,
		nullable(userID),
		nullable(ev.Candidate),
		ev.Vibration,
		ev.Defaulted,
		ev.Score,
		ev.Suggestions.IdealVibration,
		ev.Suggestions.MaxPossibleScore,
	)
	if err != nil {
		return "", fmt.Errorf("record evaluation: %w", err)
	}
	return id, nil
}

// ListEvaluations returns the most recent evaluations for userID, newest first.
func (s *Store) ListEvaluations(ctx context.Context, userID string, limit int) ([]EvaluationRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.DB.QueryContext(ctx, listEvaluationsQuery, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list evaluations for %s: %w", userID, err)
	}
	defer rows.Close()

	var out []EvaluationRecord
	for rows.Next() {
		rec := EvaluationRecord{UserID: userID}
		var profession *string
		if err := rows.Scan(&rec.ID, &profession, &rec.Vibration, &rec.Defaulted, &rec.Score,
			&rec.IdealVibration, &rec.MaxPossibleScore, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		if profession != nil {
			rec.Profession = *profession
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
