// Package storage is the local SQLite match store. It implements the same
// Store contract as the backend API client, so the pipeline does not care
// which one it talks to.
package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sillypears/rivals2-log-parser/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// The two ranked seasons known so far; seeded on first open so the
// season-window existence check always has something to scope against.
var seedSeasons = []model.Season{
	{
		StartDate:   time.Date(2024, 10, 23, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 3, 3, 23, 59, 59, 0, time.UTC),
		ShortName:   "ranked_lite",
		DisplayName: "Ranked Lite",
	},
	{
		StartDate:   time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 7, 1, 21, 59, 59, 0, time.UTC),
		ShortName:   "spring_2025",
		DisplayName: "Spring 2025",
	},
}

const dateLayout = "2006-01-02T15:04:05"

// DB wraps a sql.DB for the match store.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database at the given path, applies the
// schema and seeds the season table if empty.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	db := &DB{conn: conn}
	if err := db.seedSeasons(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("seed seasons: %w", err)
	}
	return db, nil
}

func (db *DB) seedSeasons() error {
	var count int
	if err := db.conn.QueryRow("SELECT COUNT(1) FROM seasons").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, s := range seedSeasons {
		_, err := db.conn.Exec(
			"INSERT INTO seasons(start_date, end_date, short_name, display_name) VALUES (?, ?, ?, ?)",
			s.StartDate.Format(dateLayout), s.EndDate.Format(dateLayout), s.ShortName, s.DisplayName,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Ping verifies the connection. For a file-backed store this only fails on a
// broken or locked database, but the pipeline probes it the same way it
// probes the backend.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
