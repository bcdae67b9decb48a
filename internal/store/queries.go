package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"threadstorm/internal/engine"
)

// ErrNotFound is returned when a threadstorm record does not exist.
var ErrNotFound = errors.New("threadstorm not found")

// Record is one persisted threadstorm.
type Record struct {
	ID              string              `json:"id"`
	Tone            string              `json:"tone"`
	TotalPosts      int                 `json:"total_posts"`
	TotalCharacters int                 `json:"total_characters"`
	EngagementScore float64             `json:"engagement_score"`
	Result          *engine.Threadstorm `json:"result,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// SaveThreadstorm persists a formatted threadstorm and returns its record.
func (s *Store) SaveThreadstorm(ctx context.Context, tone string, ts *engine.Threadstorm) (*Record, error) {
	payload, err := json.Marshal(ts)
	if err != nil {
		return nil, fmt.Errorf("marshal threadstorm: %w", err)
	}

	rec := &Record{
		ID:              uuid.NewString(),
		Tone:            tone,
		TotalPosts:      ts.TotalPosts,
		TotalCharacters: ts.TotalCharacters,
		EngagementScore: ts.EngagementScore,
		Result:          ts,
		CreatedAt:       time.Now().UTC(),
	}

	_, err = s.ExecContext(ctx, `
		INSERT INTO threadstorms (id, tone, total_posts, total_characters, engagement_score, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Tone, rec.TotalPosts, rec.TotalCharacters, rec.EngagementScore, string(payload), rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert threadstorm: %w", err)
	}

	return rec, nil
}

// GetThreadstorm loads a persisted threadstorm by ID.
func (s *Store) GetThreadstorm(ctx context.Context, id string) (*Record, error) {
	row := s.QueryRowContext(ctx, `
		SELECT id, tone, total_posts, total_characters, engagement_score, result_json, created_at
		FROM threadstorms WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get threadstorm: %w", err)
	}
	return rec, nil
}

// ListThreadstorms returns the most recent records, newest first. The full
// result payload is included on each record.
func (s *Store) ListThreadstorms(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.QueryContext(ctx, `
		SELECT id, tone, total_posts, total_characters, engagement_score, result_json, created_at
		FROM threadstorms ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list threadstorms: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan threadstorm: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate threadstorms: %w", err)
	}

	return records, nil
}

// CountThreadstorms returns the number of persisted threadstorms.
func (s *Store) CountThreadstorms(ctx context.Context) (int64, error) {
	var count int64
	if err := s.QueryRowContext(ctx, "SELECT COUNT(*) FROM threadstorms").Scan(&count); err != nil {
		return 0, fmt.Errorf("count threadstorms: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var rec Record
	var payload string
	if err := row.Scan(&rec.ID, &rec.Tone, &rec.TotalPosts, &rec.TotalCharacters,
		&rec.EngagementScore, &payload, &rec.CreatedAt); err != nil {
		return nil, err
	}

	var result engine.Threadstorm
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("decode result payload: %w", err)
	}
	rec.Result = &result

	return &rec, nil
}
