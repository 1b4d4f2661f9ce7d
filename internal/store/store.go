// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists planning sessions and their itineraries in a
// SQLite database. Itineraries are stored as JSON documents; the
// envelope contract keeps them serializable, so no column-level schema
// is needed for the document body.
//
// Implements: prd007-persistence (R1-R4); docs/ARCHITECTURE § Persistence.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/trip-engine/pkg/types"
)

const dbFile = "trips.db"

// ErrNotFound reports a session id with no stored row.
var ErrNotFound = errors.New("session not found")

// Store manages the sessions SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the sessions database at dataDir/trips.db,
// creating the schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			request TEXT NOT NULL,
			itinerary TEXT,
			error_message TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions(status)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// CreateSession stores a new processing session for the request and
// returns its generated id.
func (s *Store) CreateSession(req types.TripRequest) (string, error) {
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		`INSERT INTO sessions (session_id, status, request, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, types.SessionProcessing, string(reqJSON), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("inserting session: %w", err)
	}
	return id, nil
}

// UpdateItinerary marks a session completed and stores its itinerary.
func (s *Store) UpdateItinerary(sessionID string, it *types.Itinerary) error {
	itJSON, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("marshaling itinerary: %w", err)
	}
	return s.update(sessionID,
		`UPDATE sessions SET status = ?, itinerary = ?, updated_at = ? WHERE session_id = ?`,
		types.SessionCompleted, string(itJSON), time.Now().UTC().Format(time.RFC3339), sessionID)
}

// UpdateError marks a session failed with the given message.
func (s *Store) UpdateError(sessionID, message string) error {
	return s.update(sessionID,
		`UPDATE sessions SET status = ?, error_message = ?, updated_at = ? WHERE session_id = ?`,
		types.SessionFailed, message, time.Now().UTC().Format(time.RFC3339), sessionID)
}

func (s *Store) update(sessionID, query string, args ...any) error {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	return nil
}

// GetSession loads one session by id.
func (s *Store) GetSession(sessionID string) (*types.Session, error) {
	row := s.db.QueryRow(
		`SELECT session_id, status, request, itinerary, error_message, created_at, updated_at
		 FROM sessions WHERE session_id = ?`, sessionID)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	return sess, err
}

// Recent returns the newest sessions, most recent first.
func (s *Store) Recent(limit int) ([]types.Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT session_id, status, request, itinerary, error_message, created_at, updated_at
		 FROM sessions ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []types.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*types.Session, error) {
	var (
		sess               types.Session
		reqJSON            string
		itJSON, errMsg     sql.NullString
		createdAt, updated string
	)
	if err := row.Scan(&sess.SessionID, &sess.Status, &reqJSON, &itJSON, &errMsg, &createdAt, &updated); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(reqJSON), &sess.Request); err != nil {
		return nil, fmt.Errorf("parsing stored request: %w", err)
	}
	if itJSON.Valid && itJSON.String != "" {
		var it types.Itinerary
		if err := json.Unmarshal([]byte(itJSON.String), &it); err != nil {
			return nil, fmt.Errorf("parsing stored itinerary: %w", err)
		}
		sess.Itinerary = &it
	}
	sess.ErrorMessage = errMsg.String
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		sess.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updated); err == nil {
		sess.UpdatedAt = t
	}
	return &sess, nil
}
