package storage

import (
	"database/sql"
	"slices"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing. The pool is
// pinned to one connection because every :memory: connection is its own
// database.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// tableNames returns sorted table names from sqlite_master, excluding internal tables.
func tableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	return names
}

// expectedTables is the sorted list of tables after all migrations.
var expectedTables = []string{
	"activity_logs",
	"bookings",
	"enquiries",
	"faqs",
	"gallery_images",
	"hero_slides",
	"media",
	"outbox",
	"pages",
	"password_resets",
	"posts",
	"schema_version",
	"services",
	"settings",
	"stores",
	"testimonials",
	"users",
}

// TestMigrateDB_Fresh verifies all migrations apply cleanly to an empty database.
func TestMigrateDB_Fresh(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateDB(db); err != nil {
		t.Fatalf("MigrateDB failed on fresh db: %v", err)
	}

	version, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != LatestSchemaVersion() {
		t.Errorf("version = %d, want %d", version, LatestSchemaVersion())
	}

	if got := tableNames(t, db); !slices.Equal(got, expectedTables) {
		t.Errorf("tables:\ngot:  %v\nwant: %v", got, expectedTables)
	}
}

// TestMigrateDB_Idempotent verifies that running MigrateDB twice is a no-op.
func TestMigrateDB_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateDB(db); err != nil {
		t.Fatalf("first MigrateDB failed: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO faqs (id, question, answer, created_at) VALUES ('f1', 'Q?', 'A.', '2026-01-01T00:00:00Z')`); err != nil {
		t.Fatalf("insert faq: %v", err)
	}
	if err := MigrateDB(db); err != nil {
		t.Fatalf("second MigrateDB failed: %v", err)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != len(migrations) {
		t.Errorf("schema_version rows = %d, want %d", n, len(migrations))
	}

	var category string
	if err := db.QueryRow(`SELECT category FROM faqs WHERE id = 'f1'`).Scan(&category); err != nil {
		t.Fatalf("faq lost after second migration: %v", err)
	}
	if category != "General" {
		t.Errorf("default category = %q, want General", category)
	}
}

// TestMigrateDB_VersionProgression verifies SchemaVersion reports 0 before
// migrating and the latest version after.
func TestMigrateDB_VersionProgression(t *testing.T) {
	db := openTestDB(t)

	v, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if v != 0 {
		t.Errorf("initial version = %d, want 0", v)
	}
	if err := MigrateDB(db); err != nil {
		t.Fatalf("MigrateDB failed: %v", err)
	}
	if v, _ = SchemaVersion(db); v != LatestSchemaVersion() {
		t.Errorf("post-migration version = %d, want %d", v, LatestSchemaVersion())
	}
}

func TestMigrations_AreOrdered(t *testing.T) {
	for i, m := range migrations {
		if m.version != i+1 {
			t.Errorf("migrations[%d].version = %d, want %d", i, m.version, i+1)
		}
	}
}

func TestMigrateDB_RatingConstraint(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateDB(db); err != nil {
		t.Fatal(err)
	}
	_, err := db.Exec(`INSERT INTO testimonials (id, name, content, rating, created_at) VALUES ('t1', 'A', 'B', 9, '2026-01-01T00:00:00Z')`)
	if err == nil {
		t.Error("rating 9 was accepted")
	}
}
