package store

import (
	"fmt"
	"time"
)

// SessionRecord is one completed focus session, kept for stats and export.
type SessionRecord struct {
	ID          int64
	TaskID      string
	TaskText    string
	Minutes     int
	Points      int
	LongBreak   bool
	CompletedAt time.Time
}

// DailyPoints is the points earned on one calendar day.
type DailyPoints struct {
	Date   string // YYYY-MM-DD
	Points int
}

func (s *Store) AddSession(rec SessionRecord) (int64, error) {
	completedAt := rec.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now()
	}
	res, err := s.db.Exec(
		`INSERT INTO session_history (task_id, task_text, minutes, points, long_break, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.TaskID, rec.TaskText, rec.Minutes, rec.Points, rec.LongBreak,
		completedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("add session: %w", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (s *Store) ListSessions(limit int) ([]SessionRecord, error) {
	q := `SELECT id, task_id, task_text, minutes, points, long_break, completed_at
	      FROM session_history ORDER BY completed_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var recs []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var completedAt string
		if err := rows.Scan(&r.ID, &r.TaskID, &r.TaskText, &r.Minutes, &r.Points, &r.LongBreak, &completedAt); err != nil {
			return nil, err
		}
		r.CompletedAt, _ = time.Parse(time.RFC3339, completedAt)
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// PointsByDay aggregates earned points per calendar day over [from, to).
func (s *Store) PointsByDay(from, to time.Time) ([]DailyPoints, error) {
	rows, err := s.db.Query(`
		SELECT substr(completed_at, 1, 10) AS day, COALESCE(SUM(points), 0)
		FROM session_history
		WHERE completed_at >= ? AND completed_at < ?
		GROUP BY day
		ORDER BY day`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("points by day: %w", err)
	}
	defer rows.Close()

	var days []DailyPoints
	for rows.Next() {
		var d DailyPoints
		if err := rows.Scan(&d.Date, &d.Points); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// Totals returns lifetime session count, focus minutes and points.
func (s *Store) Totals() (sessions int, minutes int64, points int64, err error) {
	err = s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(minutes), 0), COALESCE(SUM(points), 0)
		FROM session_history`,
	).Scan(&sessions, &minutes, &points)
	return
}
