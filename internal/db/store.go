package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/chriserin/gherk/internal/parser"
)

// Store persists parsed features. Every sync is recorded as a run, and each
// feature row remembers the run that last wrote it.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ScenarioRow is one catalogued scenario joined with its feature.
type ScenarioRow struct {
	ID          int64
	FilePath    string
	Feature     string
	Index       int
	Description string
	Annotations []string
	Steps       int
}

func (s *Store) StartRun(ctx context.Context) (string, error) {
	id := uuid.NewString()
	if _, err := s.db.ExecContext(ctx, `INSERT INTO sync_runs (id) VALUES (?)`, id); err != nil {
		return "", fmt.Errorf("starting sync run: %w", err)
	}
	return id, nil
}

func (s *Store) FinishRun(ctx context.Context, runID string, fileCount int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE sync_runs SET finished_at = datetime('now'), file_count = ? WHERE id = ?`,
		fileCount, runID)
	if err != nil {
		return fmt.Errorf("finishing sync run: %w", err)
	}
	return nil
}

// SaveFeature replaces the stored tree for path. It reports whether the file
// was seen for the first time.
func (s *Store) SaveFeature(ctx context.Context, runID, path string, f *parser.Feature) (created bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning save of %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var featureID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM features WHERE file_path = ?`, path).Scan(&featureID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.ExecContext(ctx,
			`INSERT INTO features (file_path, description, annotations, run_id) VALUES (?, ?, ?, ?)`,
			path, f.Description, joinAnnotations(f.Annotations), runID)
		if err != nil {
			return false, fmt.Errorf("inserting %s: %w", path, err)
		}
		if featureID, err = res.LastInsertId(); err != nil {
			return false, fmt.Errorf("reading id of %s: %w", path, err)
		}
		created = true
	case err != nil:
		return false, fmt.Errorf("querying %s: %w", path, err)
	default:
		_, err = tx.ExecContext(ctx,
			`UPDATE features SET description = ?, annotations = ?, run_id = ?, updated_at = datetime('now') WHERE id = ?`,
			f.Description, joinAnnotations(f.Annotations), runID, featureID)
		if err != nil {
			return false, fmt.Errorf("updating %s: %w", path, err)
		}
		if err = deleteScenarios(ctx, tx, `feature_id = ?`, featureID); err != nil {
			return false, err
		}
	}

	scenarios := f.Scenarios
	if f.Background != nil {
		scenarios = append([]parser.Scenario{*f.Background}, scenarios...)
	}
	for _, sc := range scenarios {
		if err = insertScenario(ctx, tx, featureID, sc); err != nil {
			return false, fmt.Errorf("saving %s: %w", path, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("committing %s: %w", path, err)
	}
	return created, nil
}

func insertScenario(ctx context.Context, tx *sql.Tx, featureID int64, sc parser.Scenario) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO scenarios (feature_id, idx, description, annotations, is_background) VALUES (?, ?, ?, ?, ?)`,
		featureID, sc.Index, sc.Description, joinAnnotations(sc.Annotations), sc.IsBackground)
	if err != nil {
		return fmt.Errorf("inserting scenario %q: %w", sc.Description, err)
	}
	scenarioID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for pos, step := range sc.Steps {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO steps (scenario_id, position, keyword, text) VALUES (?, ?, ?, ?)`,
			scenarioID, pos, step.Keyword, step.Text)
		if err != nil {
			return fmt.Errorf("inserting step %d of %q: %w", pos, sc.Description, err)
		}
	}
	return nil
}

func deleteScenarios(ctx context.Context, tx *sql.Tx, where string, args ...any) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM steps WHERE scenario_id IN (SELECT id FROM scenarios WHERE `+where+`)`, args...)
	if err != nil {
		return fmt.Errorf("deleting steps: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM scenarios WHERE `+where, args...); err != nil {
		return fmt.Errorf("deleting scenarios: %w", err)
	}
	return nil
}

// Prune removes every feature not written by runID and returns the removed
// file paths.
func (s *Store) Prune(ctx context.Context, runID string) (removed []string, err error) {
	rows, err := s.db.QueryContext(ctx, `SELECT file_path FROM features WHERE run_id != ? ORDER BY file_path`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying stale features: %w", err)
	}
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning stale feature: %w", err)
		}
		removed = append(removed, path)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(removed) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning prune: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	if err = deleteScenarios(ctx, tx, `feature_id IN (SELECT id FROM features WHERE run_id != ?)`, runID); err != nil {
		return nil, err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM features WHERE run_id != ?`, runID); err != nil {
		return nil, fmt.Errorf("deleting stale features: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing prune: %w", err)
	}
	return removed, nil
}

// ListScenarios returns the catalogued scenarios, backgrounds excluded,
// ordered by file and index. A non-empty tag keeps only scenarios carrying
// it directly or through their feature.
func (s *Store) ListScenarios(ctx context.Context, tag string) ([]ScenarioRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, f.file_path, f.description, s.idx, s.description, s.annotations, f.annotations,
			(SELECT COUNT(*) FROM steps WHERE scenario_id = s.id)
		FROM scenarios s
		JOIN features f ON s.feature_id = f.id
		WHERE s.is_background = 0
		ORDER BY f.file_path, s.idx
	`)
	if err != nil {
		return nil, fmt.Errorf("querying scenarios: %w", err)
	}
	defer rows.Close()

	tag = strings.TrimPrefix(tag, "@")
	var results []ScenarioRow
	for rows.Next() {
		var r ScenarioRow
		var own, inherited string
		if err := rows.Scan(&r.ID, &r.FilePath, &r.Feature, &r.Index, &r.Description, &own, &inherited, &r.Steps); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.Annotations = splitAnnotations(own)
		if tag != "" && !hasTag(r.Annotations, tag) && !hasTag(splitAnnotations(inherited), tag) {
			continue
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return results, nil
}

func joinAnnotations(a []string) string {
	return strings.Join(a, " ")
}

func splitAnnotations(s string) []string {
	return strings.Fields(s)
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
