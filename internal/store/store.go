package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Property is one flattened report row.
type Property struct {
	Position int64
	Property string
	Value    string
}

// Store writes report rows to a SQLite file.
type Store struct {
	db *sql.DB
}

// New opens the SQLite database at path and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Replace swaps the stored rows for props in a single transaction. Positions
// are assigned from the slice order starting at 1.
func (s *Store) Replace(ctx context.Context, props []Property) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM properties`); err != nil {
		return fmt.Errorf("clear properties: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO properties (position, property, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range props {
		if _, err = stmt.ExecContext(ctx, int64(i+1), p.Property, p.Value); err != nil {
			return fmt.Errorf("insert property %q: %w", p.Property, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// List returns every stored row in position order.
func (s *Store) List(ctx context.Context) ([]Property, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT position, property, value FROM properties ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var props []Property
	for rows.Next() {
		var p Property
		if err := rows.Scan(&p.Position, &p.Property, &p.Value); err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props, rows.Err()
}
