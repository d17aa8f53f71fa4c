package metrics

import (
	"context"
	"database/sql"
	"time"
)

// LLMCall records metadata for a single text-generation request.
type LLMCall struct {
	Operation string // "suggest" or "import"
	Model     string
	Latency   time.Duration
	OK        bool
	Timestamp time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(m LLMCall) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO llm_metrics (operation, model, latency_ms, ok, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		m.Operation, m.Model, m.Latency.Milliseconds(), m.OK, ts,
	)
	return err
}

// DailyUsage represents call totals for a single day.
type DailyUsage struct {
	Date     string
	Calls    int
	Failures int
}

// RecentUsage retrieves per-day call counts for the last N days.
func (s *Store) RecentUsage(days int) ([]DailyUsage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	rows, err := s.db.Query(`
		SELECT date(timestamp) AS day,
		       COUNT(*),
		       SUM(CASE WHEN ok THEN 0 ELSE 1 END)
		FROM llm_metrics
		WHERE timestamp >= ?
		GROUP BY day
		ORDER BY day DESC`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		if err := rows.Scan(&u.Date, &u.Calls, &u.Failures); err != nil {
			return nil, err
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days.
func (s *Store) Cleanup(olderThanDays int) error {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	_, err := s.db.Exec("DELETE FROM llm_metrics WHERE timestamp < ?", threshold)
	return err
}
