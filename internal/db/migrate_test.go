package db_test

import (
	"context"
	"testing"

	migrations "github.com/construsys/construtora/db"
	"github.com/construsys/construtora/internal/db"
)

func TestMigrate(t *testing.T) {
	ctx := context.Background()

	d, err := db.New(ctx, "file:migrate_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer d.Close()

	if err := db.Migrate(ctx, d, migrations.Migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// every migration is recorded
	var applied int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&applied); err != nil {
		t.Fatalf("scan schema_migrations: %v", err)
	}
	if applied == 0 {
		t.Fatalf("no migrations recorded")
	}

	// the domain tables exist
	for _, table := range []string{"users", "clientes", "engenheiros", "empreiteiras", "trabalhadores", "obras"} {
		var name string
		err := d.QueryRow(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	// a second run is a no-op
	if err := db.Migrate(ctx, d, migrations.Migrations); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	var again int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&again); err != nil {
		t.Fatalf("scan schema_migrations after rerun: %v", err)
	}
	if again != applied {
		t.Fatalf("rerun changed applied count: %d != %d", again, applied)
	}
}

func TestForeignKeysEnabled(t *testing.T) {
	ctx := context.Background()

	d, err := db.New(ctx, "file:fk_pragma_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer d.Close()

	var on int
	if err := d.QueryRow(ctx, `PRAGMA foreign_keys`).Scan(&on); err != nil {
		t.Fatalf("read pragma: %v", err)
	}
	if on != 1 {
		t.Fatalf("foreign_keys pragma not enabled")
	}
}
