package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"YieldSentinel/internal/model"
)

// SQLiteRecorder persists screening runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers can query history while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS screening_runs (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			threshold REAL,
			scanned   INTEGER,
			qualified INTEGER,
			skipped   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON screening_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS screening_results (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id    INTEGER NOT NULL,
			rank      INTEGER NOT NULL,
			code      TEXT NOT NULL,
			name      TEXT,
			price     REAL,
			yield_pct REAL,
			FOREIGN KEY (run_id) REFERENCES screening_runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run ON screening_results(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_results_code ON screening_results(code)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun writes one run row plus one row per qualifying result.
func (r *SQLiteRecorder) RecordRun(report *model.RunReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	res, err := tx.Exec(`INSERT INTO screening_runs
		(timestamp, threshold, scanned, qualified, skipped)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), report.Threshold, report.Scanned,
		len(report.Results), len(report.Skipped),
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("run id: %w", err)
	}

	for i, sr := range report.Results {
		if _, err := tx.Exec(`INSERT INTO screening_results
			(run_id, rank, code, name, price, yield_pct)
			VALUES (?,?,?,?,?,?)`,
			runID, i+1, sr.Symbol, sr.DisplayName, sr.Price, sr.Yield,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert result %s: %w", sr.Symbol, err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
