package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	records := []Record{
		{GameID: "2048", Score: 1200, MaxTile: 128, Moves: 140},
		{GameID: "2048", Score: 400, MaxTile: 64, Moves: 60},
		{GameID: "2048", Score: 20480, MaxTile: 2048, Moves: 900, Won: true},
		{GameID: "2048_endless", Score: 5000, MaxTile: 512, Moves: 300},
	}
	for _, rec := range records {
		if _, err := store.SaveScore(rec); err != nil {
			t.Fatalf("SaveScore(%+v) failed: %v", rec, err)
		}
	}

	scores, err := store.TopScores("2048", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	if scores[0].Score != 20480 || scores[1].Score != 1200 || scores[2].Score != 400 {
		t.Errorf("Scores not sorted descending: %+v", scores)
	}
	if !scores[0].Won || scores[0].MaxTile != 2048 || scores[0].Moves != 900 {
		t.Errorf("Top entry lost its details: %+v", scores[0])
	}
	if scores[1].Won {
		t.Error("Second entry should not be marked won")
	}

	endless, err := store.TopScores("2048_endless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(endless) != 1 {
		t.Errorf("Expected 1 endless score, got %d", len(endless))
	}
}

func TestStoreSaveRequiresGameID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore(Record{Score: 10}); err == nil {
		t.Error("SaveScore() without game ID should fail")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveScore(Record{GameID: "2048", Score: (i + 1) * 100}) //nolint:errcheck
	}

	scores, err := store.TopScores("2048", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	all, err := store.TopScores("2048", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Limit 0 should default to 10, got %d entries", len(all))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty mode, got %d", high)
	}

	for _, score := range []int{100, 300, 200} {
		store.SaveScore(Record{GameID: "2048", Score: score}) //nolint:errcheck
	}

	high, err = store.HighScore("2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(Record{GameID: "2048", Score: 100})         //nolint:errcheck
	store.SaveScore(Record{GameID: "2048", Score: 200})         //nolint:errcheck
	store.SaveScore(Record{GameID: "2048_endless", Score: 300}) //nolint:errcheck

	if err := store.ClearScores("2048"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	classic, _ := store.TopScores("2048", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 classic scores after clear, got %d", len(classic))
	}

	endless, _ := store.TopScores("2048_endless", 10)
	if len(endless) != 1 {
		t.Errorf("Endless scores should not be affected by clearing classic")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("2048")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Empty stats = %+v", empty)
	}

	store.SaveScore(Record{GameID: "2048", Score: 100, MaxTile: 32})              //nolint:errcheck
	store.SaveScore(Record{GameID: "2048", Score: 300, MaxTile: 2048, Won: true}) //nolint:errcheck

	stats, err := store.GetGameStats("2048")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.Wins != 1 || stats.HighScore != 300 || stats.BestTile != 2048 {
		t.Errorf("Stats = %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.SaveScore(Record{GameID: "2048", Score: i}); err != nil {
				t.Errorf("SaveScore() failed: %v", err)
			}
		}()
	}
	wg.Wait()

	stats, err := store.GetGameStats("2048")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 8 {
		t.Errorf("Expected 8 saved games, got %d", stats.GamesCount)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	if got := parseTime("2024-05-01 12:30:00"); !got.Equal(want) {
		t.Errorf("parseTime(sqlite layout) = %v", got)
	}
	if got := parseTime(want); !got.Equal(want) {
		t.Errorf("parseTime(time.Time) = %v", got)
	}
	if got := parseTime(nil); !got.IsZero() {
		t.Errorf("parseTime(nil) = %v, want zero", got)
	}
}
