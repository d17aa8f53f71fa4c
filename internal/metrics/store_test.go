package metrics

import (
	"path/filepath"
	"testing"
	"time"

	"weekly-meal-planner/internal/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "planner.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db.SQL)
}

func TestRecordAndRecentUsage(t *testing.T) {
	s := newTestStore(t)

	calls := []LLMCall{
		{Operation: "suggest", Model: "gemini-2.5-flash", Latency: 800 * time.Millisecond, OK: true},
		{Operation: "suggest", Model: "gemini-2.5-flash", Latency: 900 * time.Millisecond, OK: false},
		{Operation: "import", Model: "gemini-2.5-flash", Latency: 2 * time.Second, OK: true},
	}
	for _, c := range calls {
		if err := s.Record(c); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	usage, err := s.RecentUsage(7)
	if err != nil {
		t.Fatalf("RecentUsage failed: %v", err)
	}
	if len(usage) != 1 {
		t.Fatalf("Expected 1 day of usage, got %d", len(usage))
	}
	if usage[0].Calls != 3 || usage[0].Failures != 1 {
		t.Errorf("Expected 3 calls with 1 failure, got %+v", usage[0])
	}
}

func TestCleanupDropsOnlyOldRecords(t *testing.T) {
	s := newTestStore(t)

	old := LLMCall{
		Operation: "suggest",
		Model:     "gemini-2.5-flash",
		OK:        true,
		Timestamp: time.Now().UTC().AddDate(0, 0, -60),
	}
	recent := LLMCall{Operation: "import", Model: "gemini-2.5-flash", OK: true}
	if err := s.Record(old); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := s.Record(recent); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if err := s.Cleanup(30); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM llm_metrics").Scan(&count); err != nil {
		t.Fatalf("Count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected only the recent record to survive, got %d rows", count)
	}
}
