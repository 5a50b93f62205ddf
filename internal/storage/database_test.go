package storage

import (
	"path/filepath"
	"slices"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "bury.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func activeIDs(t *testing.T, db *DB, now int64) []int64 {
	t.Helper()
	ids, err := db.SelectActive(now)
	if err != nil {
		t.Fatalf("SelectActive failed: %v", err)
	}
	slices.Sort(ids)
	return ids
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bury.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("First open failed: %v", err)
	}
	if err := db.Upsert(1, 100); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	db.Close()

	// Reopening applies the schema again and must not lose data.
	db, err = Open(path)
	if err != nil {
		t.Fatalf("Second open failed: %v", err)
	}
	defer db.Close()

	if got := activeIDs(t, db, 0); !slices.Equal(got, []int64{1}) {
		t.Errorf("Expected record to survive reopen, got %v", got)
	}
}

func TestUpsertLastWriteWins(t *testing.T) {
	db := openTestDB(t)

	if err := db.Upsert(5, 100); err != nil {
		t.Fatalf("First upsert failed: %v", err)
	}
	if err := db.Upsert(5, 200); err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}

	// Only the second expiry should be visible: active at t=150, gone at
	// t=250, and never duplicated.
	if got := activeIDs(t, db, 150); !slices.Equal(got, []int64{5}) {
		t.Errorf("Expected card 5 active at 150, got %v", got)
	}
	if got := activeIDs(t, db, 250); len(got) != 0 {
		t.Errorf("Expected no active cards at 250, got %v", got)
	}

	records, err := db.ActiveRecords(0)
	if err != nil {
		t.Fatalf("ActiveRecords failed: %v", err)
	}
	if len(records) != 1 || records[0].Until != 200 {
		t.Errorf("Expected a single record with until=200, got %+v", records)
	}
}

func TestSelectActiveBoundary(t *testing.T) {
	db := openTestDB(t)

	if err := db.UpsertMany(map[int64]int64{
		1: 99,  // expired
		2: 100, // until == now is already expired
		3: 101, // active
	}); err != nil {
		t.Fatalf("UpsertMany failed: %v", err)
	}

	if got := activeIDs(t, db, 100); !slices.Equal(got, []int64{3}) {
		t.Errorf("Expected only card 3 active at 100, got %v", got)
	}
}

func TestDeleteExpired(t *testing.T) {
	db := openTestDB(t)

	if err := db.UpsertMany(map[int64]int64{
		1: 50,
		2: 100,
		3: 150,
		4: 200,
	}); err != nil {
		t.Fatalf("UpsertMany failed: %v", err)
	}

	if err := db.DeleteExpired(100); err != nil {
		t.Fatalf("DeleteExpired failed: %v", err)
	}

	// until <= 100 removed, the rest untouched.
	records, err := db.ActiveRecords(0)
	if err != nil {
		t.Fatalf("ActiveRecords failed: %v", err)
	}
	var ids []int64
	for _, rec := range records {
		ids = append(ids, rec.CardID)
	}
	if !slices.Equal(ids, []int64{3, 4}) {
		t.Errorf("Expected cards [3 4] to survive the sweep, got %v", ids)
	}
}

func TestActiveRecordsOrderedByExpiry(t *testing.T) {
	db := openTestDB(t)

	if err := db.UpsertMany(map[int64]int64{
		7: 300,
		8: 100,
		9: 200,
	}); err != nil {
		t.Fatalf("UpsertMany failed: %v", err)
	}

	records, err := db.ActiveRecords(0)
	if err != nil {
		t.Fatalf("ActiveRecords failed: %v", err)
	}
	var ids []int64
	for _, rec := range records {
		ids = append(ids, rec.CardID)
	}
	if !slices.Equal(ids, []int64{8, 9, 7}) {
		t.Errorf("Expected soonest-first order [8 9 7], got %v", ids)
	}
}

func TestUpsertManyEmptyBatch(t *testing.T) {
	db := openTestDB(t)
	if err := db.UpsertMany(nil); err != nil {
		t.Fatalf("Empty batch should be a no-op, got %v", err)
	}
}
