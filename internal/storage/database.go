package storage

import (
	"database/sql"
	"fmt"

	"github.com/conorfennell/burydays/internal/domain"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DB represents a wrapper around the SQL database connection.
// It is the sole durable record of which cards are buried and until when;
// the host scheduler's own bury state is re-derived from it, never the
// other way around.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to date.
// It is safe to call on every process start.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Execute the schema to create the table if it doesn't exist.
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Upsert inserts or replaces the bury record for a card. Last write wins:
// burying an already-buried card simply moves its expiry.
func (db *DB) Upsert(cardID, until int64) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO buried (cid, until) VALUES (?, ?)
	`, cardID, until)
	if err != nil {
		return fmt.Errorf("failed to upsert bury record for card %d: %w", cardID, err)
	}
	return nil
}

// UpsertMany applies a batch of bury records in a single transaction.
// All-or-nothing on commit; a crash mid-batch leaves the store unchanged.
func (db *DB) UpsertMany(records map[int64]int64) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin bury batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO buried (cid, until) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare bury batch: %w", err)
	}
	defer stmt.Close()

	for cardID, until := range records {
		if _, err := stmt.Exec(cardID, until); err != nil {
			return fmt.Errorf("failed to upsert bury record for card %d: %w", cardID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bury batch: %w", err)
	}
	return nil
}

// SelectActive returns the ids of all cards whose bury has not yet expired.
// The boundary is strict: a record with until == now is already expired.
func (db *DB) SelectActive(now int64) ([]int64, error) {
	rows, err := db.conn.Query(`
		SELECT cid FROM buried WHERE until > ?
	`, now)
	if err != nil {
		return nil, fmt.Errorf("failed to select active bury records: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan bury record row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read active bury records: %w", err)
	}
	return ids, nil
}

// ActiveRecords returns all unexpired records with their expiry times,
// ordered by soonest expiry first.
func (db *DB) ActiveRecords(now int64) ([]domain.BuryRecord, error) {
	rows, err := db.conn.Query(`
		SELECT cid, until FROM buried WHERE until > ? ORDER BY until
	`, now)
	if err != nil {
		return nil, fmt.Errorf("failed to select bury records: %w", err)
	}
	defer rows.Close()

	var records []domain.BuryRecord
	for rows.Next() {
		var rec domain.BuryRecord
		if err := rows.Scan(&rec.CardID, &rec.Until); err != nil {
			return nil, fmt.Errorf("failed to scan bury record row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bury records: %w", err)
	}
	return records, nil
}

// DeleteExpired removes all records whose expiry has passed. Best-effort
// housekeeping; callers may ignore how many rows were touched.
func (db *DB) DeleteExpired(now int64) error {
	_, err := db.conn.Exec(`
		DELETE FROM buried WHERE until <= ?
	`, now)
	if err != nil {
		return fmt.Errorf("failed to delete expired bury records: %w", err)
	}
	return nil
}
