package export

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `CREATE TABLE entries (
	seq     INTEGER PRIMARY KEY,
	tick    INTEGER NOT NULL,
	level   TEXT    NOT NULL,
	message TEXT    NOT NULL
)`

type sqliteWriter struct {
	db   *sql.DB
	tx   *sql.Tx
	stmt *sql.Stmt
}

func newSQLiteWriter(path string) (*sqliteWriter, error) {
	// os.Create semantics: replace any previous export at this path.
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	stmt, err := tx.Prepare("INSERT INTO entries (seq, tick, level, message) VALUES (?, ?, ?, ?)")
	if err != nil {
		_ = tx.Rollback()
		_ = db.Close()
		return nil, err
	}

	return &sqliteWriter{db: db, tx: tx, stmt: stmt}, nil
}

func (w *sqliteWriter) Write(r Record) error {
	_, err := w.stmt.Exec(r.Seq, int64(r.Tick), r.Level, r.Message)
	return err
}

func (w *sqliteWriter) Close() error {
	_ = w.stmt.Close()
	if err := w.tx.Commit(); err != nil {
		_ = w.db.Close()
		return err
	}
	return w.db.Close()
}
