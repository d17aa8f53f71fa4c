// Package store is the persistence adapter for the application state: one
// serialized AppData blob under a single row, the durable equivalent of the
// browser's single storage key.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"weekly-meal-planner/internal/plan"
)

// stateRowID is the fixed key of the single persisted record.
const stateRowID = 1

// Store reads and writes the AppData blob.
type Store struct {
	db *sql.DB
}

// New creates a Store on an existing database connection.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load returns the persisted AppData. Missing or malformed state never
// reaches the caller: both fall back to fresh defaults, logged. Legacy
// entry shapes are migrated transparently during decoding and only written
// back in the new shape on the next Save.
func (s *Store) Load() plan.AppData {
	var blob string
	err := s.db.QueryRow("SELECT data FROM planner_state WHERE id = ?", stateRowID).Scan(&blob)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("Failed to load planner state, using defaults: %v", err)
		}
		return plan.Defaults()
	}

	var data plan.AppData
	if err := json.Unmarshal([]byte(blob), &data); err != nil {
		log.Printf("Failed to parse planner state, using defaults: %v", err)
		return plan.Defaults()
	}

	if len(data.Categories) == 0 {
		data.Categories = plan.DefaultCategories()
	}
	if data.Plan == nil {
		data.Plan = plan.Plan{}
	}
	return data
}

// Save persists the AppData, replacing the previous blob.
func (s *Store) Save(data plan.AppData) error {
	blob, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal planner state: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO planner_state (id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		stateRowID, string(blob), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to write planner state: %w", err)
	}
	return nil
}

// Clear erases the stored state and returns fresh defaults. The caller is
// responsible for any confirmation; none happens here.
func (s *Store) Clear() plan.AppData {
	if _, err := s.db.Exec("DELETE FROM planner_state WHERE id = ?", stateRowID); err != nil {
		log.Printf("Failed to clear planner state: %v", err)
	}
	return plan.Defaults()
}
