package output

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS decisions (
	run_id TEXT NOT NULL,
	step   INTEGER NOT NULL,
	t      REAL NOT NULL,
	state  TEXT NOT NULL,
	lane   INTEGER NOT NULL,
	s      REAL NOT NULL,
	v      REAL NOT NULL,
	a      REAL NOT NULL,
	cost   REAL NOT NULL,
	error  TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (run_id, step)
)`

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=NORMAL",
}

// SQLiteRecorder 将决策记录写入SQLite文件
type SQLiteRecorder struct {
	db *sql.DB
}

// NewSQLiteRecorder 打开（必要时创建）SQLite数据库并建表
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s error: %w", path, err)
	}
	for _, stmt := range append(pragmas, schema) {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q error: %w", stmt, err)
		}
	}
	log.Infof("record decisions to sqlite %s", path)
	return &SQLiteRecorder{db: db}, nil
}

func (s *SQLiteRecorder) Record(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO decisions (run_id, step, t, state, lane, s, v, a, cost, error) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Step, r.T, r.State, r.Lane, r.S, r.V, r.A, r.Cost, r.Error,
	)
	if err != nil {
		return fmt.Errorf("sqlite insert step %d error: %w", r.Step, err)
	}
	return nil
}

// Records 按步数顺序读取一次运行的全部记录
func (s *SQLiteRecorder) Records(ctx context.Context, runID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, step, t, state, lane, s, v, a, cost, error FROM decisions WHERE run_id = ? ORDER BY step`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite query error: %w", err)
	}
	defer rows.Close()
	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.RunID, &r.Step, &r.T, &r.State, &r.Lane, &r.S, &r.V, &r.A, &r.Cost, &r.Error); err != nil {
			return nil, fmt.Errorf("sqlite scan error: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLiteRecorder) Close(context.Context) error {
	return s.db.Close()
}
