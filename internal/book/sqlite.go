package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/othello-tools/openbook/internal/notation"
	"github.com/othello-tools/openbook/internal/types"
)

// note: the table is rebuilt on every run; the converter always writes to a
// fresh temporary file, so there is nothing to migrate.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS sequences (
		id INTEGER PRIMARY KEY,
		line INTEGER NOT NULL,
		moves TEXT NOT NULL,
		reversed INTEGER NOT NULL DEFAULT 0 CHECK (reversed IN (0, 1)),
		indices TEXT NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_sequences_line ON sequences(line);`,
}

// SequenceRow is one row of the sequences table.
type SequenceRow struct {
	ID       int64  `db:"id"`
	Line     int    `db:"line"`
	Moves    string `db:"moves"`
	Reversed bool   `db:"reversed"`
	Indices  string `db:"indices"`
}

// SQLiteWriter stores sequences in a SQLite database, all inside one
// transaction committed on Close.
type SQLiteWriter struct {
	ctx context.Context
	db  *sqlx.DB
	tx  *sqlx.Tx
}

// NewSQLiteWriter opens (creating if needed) the database at path and
// starts the write transaction.
func NewSQLiteWriter(ctx context.Context, path string) (*SQLiteWriter, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("begin: %w", err)
	}

	return &SQLiteWriter{ctx: ctx, db: db, tx: tx}, nil
}

// Write inserts one row. Indices are stored in csv book form without the
// trailing newline.
func (w *SQLiteWriter) Write(seq types.Sequence) error {
	row := SequenceRow{
		Line:     seq.Line,
		Moves:    seq.Moves,
		Reversed: seq.Reversed,
		Indices:  strings.TrimSuffix(notation.Format(seq.Indices), "\n"),
	}
	_, err := w.tx.NamedExecContext(w.ctx, `
		INSERT INTO sequences (line, moves, reversed, indices)
		VALUES (:line, :moves, :reversed, :indices)`, row)
	if err != nil {
		return fmt.Errorf("insert line %d: %w", seq.Line, err)
	}
	return nil
}

// Close commits the transaction and closes the database.
func (w *SQLiteWriter) Close() error {
	err := w.tx.Commit()
	if cerr := w.db.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to close sqlite book: %w", err)
	}
	return nil
}

// ReadSQLite returns every stored row in insertion order.
func ReadSQLite(ctx context.Context, path string) ([]SequenceRow, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	var rows []SequenceRow
	if err := db.SelectContext(ctx, &rows, `
		SELECT id, line, moves, reversed, indices
		FROM sequences
		ORDER BY id ASC`); err != nil {
		return nil, fmt.Errorf("select sequences: %w", err)
	}
	return rows, nil
}
