package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/querybase/querybase/internal/query"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	ddl := `CREATE TABLE users (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		status TEXT NOT NULL,
		age INTEGER NOT NULL
	)`
	if err := db.Exec(ddl).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}

	seed := []struct {
		name, email, status string
		age                 int
	}{
		{"Alice", "alice@example.com", "active", 30},
		{"Bob", "bob@example.com", "active", 25},
		{"Carol", "carol@example.com", "inactive", 41},
		{"Dave", "dave@example.com", "active", 19},
	}
	for _, row := range seed {
		err := db.Exec(
			"INSERT INTO users (name, email, status, age) VALUES (?, ?, ?, ?)",
			row.name, row.email, row.status, row.age,
		).Error
		if err != nil {
			t.Fatalf("seed row: %v", err)
		}
	}

	return New(db)
}

func TestStore_Select_NamedParams(t *testing.T) {
	store := newTestStore(t)

	stmt := query.NewBuilder("users").
		Select("name", "email").
		Where("status", "=", "active").
		OrderBy("name", "asc").
		Build()

	rows, err := store.Select(context.Background(), stmt)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d; want 3", len(rows))
	}
	if rows[0]["name"] != "Alice" || rows[2]["name"] != "Dave" {
		t.Errorf("unexpected row order: %v", rows)
	}
	if _, ok := rows[0]["status"]; ok {
		t.Error("projection leaked a column that was not selected")
	}
}

func TestStore_Select_MultipleParams(t *testing.T) {
	store := newTestStore(t)

	stmt := query.NewBuilder("users").
		WhereBetween("age", 20, 40).
		Where("status", "=", "active").
		OrderBy("age", "desc").
		Build()

	rows, err := store.Select(context.Background(), stmt)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d; want 2 (Alice, Bob)", len(rows))
	}
	if rows[0]["name"] != "Alice" || rows[1]["name"] != "Bob" {
		t.Errorf("rows = %v; want Alice then Bob", rows)
	}
}

func TestStore_Select_EmptyResult(t *testing.T) {
	store := newTestStore(t)

	stmt := query.NewBuilder("users").Where("status", "=", "banned").Build()
	rows, err := store.Select(context.Background(), stmt)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d; want 0", len(rows))
	}
}

func TestStore_Count(t *testing.T) {
	store := newTestStore(t)

	b := query.NewBuilder("users").
		Where("status", "=", "active").
		OrderBy("name", "desc").
		Paginate(1, 2)

	count, err := store.Count(context.Background(), b.CountStatement())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d; want 3, unaffected by the page window", count)
	}
}

func TestStore_Select_BadSQL(t *testing.T) {
	store := newTestStore(t)

	stmt := query.Statement{SQL: "SELECT * FROM no_such_table"}
	if _, err := store.Select(context.Background(), stmt); err == nil {
		t.Error("Select() error = nil; want database error for missing table")
	}
}

func TestStore_Snapshot_ScopesBothRoundTrips(t *testing.T) {
	store := newTestStore(t)

	b := query.NewBuilder("users").Where("status", "=", "active").Paginate(1, 2)

	var total int64
	var rows []query.Row
	err := store.Snapshot(context.Background(), func(st query.Store) error {
		var err error
		if total, err = st.Count(context.Background(), b.CountStatement()); err != nil {
			return err
		}
		rows, err = st.Select(context.Background(), b.Build())
		return err
	})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d; want 3", total)
	}
	if len(rows) != 2 {
		t.Errorf("len(rows) = %d; want 2", len(rows))
	}
}

func TestStore_Snapshot_PropagatesError(t *testing.T) {
	store := newTestStore(t)

	sentinel := errors.New("no rows wanted")
	err := store.Snapshot(context.Background(), func(st query.Store) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("Snapshot() error = %v; want the callback error", err)
	}

	// The store remains usable after a rolled-back snapshot.
	count, err := store.Count(context.Background(), query.NewBuilder("users").CountStatement())
	if err != nil {
		t.Fatalf("Count() after rollback error = %v", err)
	}
	if count != 4 {
		t.Errorf("count = %d; want 4", count)
	}
}
