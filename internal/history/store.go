package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/estudia-labs/estudia-eval/internal/session"
)

// Record is one stored grade.
type Record struct {
	ID        string  `json:"id"`
	LearnerID string  `json:"learner_id"`
	Course    string  `json:"course"`
	Book      string  `json:"book"`
	Topic     string  `json:"topic"`
	Grade     float64 `json:"grade"`
	CreatedAt int64   `json:"created_at"`
}

// Store keeps grade history in SQL ("sqlite" or "postgres").
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) RecordResult(ctx context.Context, learnerID string, ref session.CourseRef, grade float64) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO grades (id,learner_id,course,book,topic,grade,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		uuid.NewString(), learnerID, ref.Course, ref.Book, ref.Topic, grade, time.Now().Unix())
	return err
}

func (s *Store) ListByLearner(ctx context.Context, learnerID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,learner_id,course,book,topic,grade,created_at
		FROM grades WHERE learner_id=$1 ORDER BY created_at DESC`, learnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.LearnerID, &r.Course, &r.Book, &r.Topic, &r.Grade, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
