// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dewtone/stenodactylus/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for drill data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS drills (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			dict_path TEXT NOT NULL,
			entries INTEGER NOT NULL,
			chords INTEGER NOT NULL,
			matched INTEGER NOT NULL,
			missed INTEGER NOT NULL,
			best_streak INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS drill_stroke_stats (
			drill_id INTEGER NOT NULL,
			stroke TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			latency_sum_ms INTEGER NOT NULL,
			latency_count INTEGER NOT NULL,
			PRIMARY KEY (drill_id, stroke)
		);`,
		`CREATE TABLE IF NOT EXISTS milestones (
			id INTEGER PRIMARY KEY,
			reached_at TEXT NOT NULL,
			streak INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_drills_ended_at ON drills(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_drill_stroke_stats_stroke ON drill_stroke_stats(stroke);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertDrill stores a completed drill and its per-stroke stats.
func (s *Store) InsertDrill(ctx context.Context, stats model.DrillStats, strokes []model.StrokeStats) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO drills (started_at, ended_at, dict_path, entries, chords, matched, missed, best_streak, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.StartedAt.Format(time.RFC3339Nano),
		stats.EndedAt.Format(time.RFC3339Nano),
		stats.DictPath,
		stats.Entries,
		stats.Chords,
		stats.Matched,
		stats.Missed,
		stats.BestStreak,
		stats.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(strokes) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO drill_stroke_stats (drill_id, stroke, correct, incorrect, latency_sum_ms, latency_count)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, ss := range strokes {
			if _, err := stmt.ExecContext(ctx, id, ss.Stroke, ss.Correct, ss.Incorrect, ss.LatencySumMs, ss.LatencyCount); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// RecordMilestone stores a new best streak if it beats the stored best.
// It reports whether a milestone row was written.
func (s *Store) RecordMilestone(ctx context.Context, reachedAt time.Time, streak int) (bool, error) {
	best, err := s.BestStreak(ctx)
	if err != nil {
		return false, err
	}
	if streak <= best {
		return false, nil
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO milestones (reached_at, streak) VALUES (?, ?)`,
		reachedAt.Format(time.RFC3339Nano), streak)
	if err != nil {
		return false, err
	}
	return true, nil
}

// BestStreak returns the highest recorded milestone streak.
func (s *Store) BestStreak(ctx context.Context) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(streak) FROM milestones`).Scan(&best)
	if err != nil {
		return 0, err
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// GetWeakStrokes aggregates stroke stats over the most recent drills.
func (s *Store) GetWeakStrokes(ctx context.Context, window int) ([]model.StrokeAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent_drills AS (
		SELECT id FROM drills
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT ss.stroke, SUM(ss.correct) AS correct, SUM(ss.incorrect) AS incorrect,
		SUM(ss.latency_sum_ms) AS latency_sum_ms, SUM(ss.latency_count) AS latency_count
	FROM drill_stroke_stats ss
	JOIN recent_drills r ON r.id = ss.drill_id
	GROUP BY ss.stroke`

	rows, err := s.db.QueryContext(ctx, query, window)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.StrokeAggregate
	for rows.Next() {
		var agg model.StrokeAggregate
		if err := rows.Scan(&agg.Stroke, &agg.Correct, &agg.Incorrect, &agg.LatencySumMs, &agg.LatencyCount); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListDrills returns drill aggregates filtered by stats config.
func (s *Store) ListDrills(ctx context.Context, cfg model.StatsConfig) ([]model.DrillAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, chords, matched, missed, best_streak, duration_ms
		FROM drills
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var drills []model.DrillAggregate
	for rows.Next() {
		var agg model.DrillAggregate
		var endedAt string
		if err := rows.Scan(&agg.DrillID, &endedAt, &agg.Chords, &agg.Matched, &agg.Missed, &agg.BestStreak, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		drills = append(drills, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return drills, nil
}

// StrokeAggregatesByDrill returns per-stroke stats grouped by drill.
func (s *Store) StrokeAggregatesByDrill(ctx context.Context, drillIDs []int64) (map[int64]map[string]model.StrokeAggregate, error) {
	if len(drillIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(drillIDs))
	args := make([]any, len(drillIDs))
	for i, id := range drillIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT drill_id, stroke, correct, incorrect, latency_sum_ms, latency_count
		FROM drill_stroke_stats
		WHERE drill_id IN (%s)`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	result := make(map[int64]map[string]model.StrokeAggregate)
	for rows.Next() {
		var drillID int64
		var agg model.StrokeAggregate
		if err := rows.Scan(&drillID, &agg.Stroke, &agg.Correct, &agg.Incorrect, &agg.LatencySumMs, &agg.LatencyCount); err != nil {
			return nil, err
		}
		if result[drillID] == nil {
			result[drillID] = make(map[string]model.StrokeAggregate)
		}
		result[drillID][agg.Stroke] = agg
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListStrokeAggregatesForDrills aggregates per-stroke stats across drills.
func (s *Store) ListStrokeAggregatesForDrills(ctx context.Context, drillIDs []int64) ([]model.StrokeAggregate, error) {
	if len(drillIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(drillIDs))
	args := make([]any, len(drillIDs))
	for i, id := range drillIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT stroke, SUM(correct) AS correct, SUM(incorrect) AS incorrect,
		SUM(latency_sum_ms) AS latency_sum_ms, SUM(latency_count) AS latency_count
		FROM drill_stroke_stats
		WHERE drill_id IN (%s)
		GROUP BY stroke`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.StrokeAggregate
	for rows.Next() {
		var agg model.StrokeAggregate
		if err := rows.Scan(&agg.Stroke, &agg.Correct, &agg.Incorrect, &agg.LatencySumMs, &agg.LatencyCount); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
