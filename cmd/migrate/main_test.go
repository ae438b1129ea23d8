package main

import "testing"

func TestLoadMigrations(t *testing.T) {
	migrations, err := loadMigrations(migrationsFS)
	if err != nil {
		t.Fatalf("unexpected error loading embedded migrations: %v", err)
	}
	if len(migrations) != 5 {
		t.Fatalf("expected 5 migrations, got %d", len(migrations))
	}
	for i, m := range migrations {
		want := int64(i + 1)
		if m.Version != want {
			t.Fatalf("expected version %d at position %d, got %d", want, i, m.Version)
		}
		if m.UpSQL == "" || m.DownSQL == "" {
			t.Fatalf("expected non-empty up/down sql for version %d", m.Version)
		}
	}
	if migrations[0].Name != "create_articles" {
		t.Fatalf("expected create_articles first, got %s", migrations[0].Name)
	}
}

func TestParseMigrationPath(t *testing.T) {
	version, name, direction, err := parseMigrationPath("migrations/0003_create_market_points.up.sql")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != 3 || name != "create_market_points" || direction != "up" {
		t.Fatalf("unexpected parse result: %d %s %s", version, name, direction)
	}

	if _, _, _, err := parseMigrationPath("migrations/create_things.sql"); err == nil {
		t.Fatal("expected error for unversioned filename")
	}
	if _, _, _, err := parseMigrationPath("migrations/0004_Create_Things.up.sql"); err == nil {
		t.Fatal("expected error for uppercase filename")
	}
}
