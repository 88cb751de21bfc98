package db

import (
	"fmt"
	"testing"

	"github.com/BruksfildServices01/nextbarber-api/internal/config"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

func TestNewDB_SQLiteMigratesEveryModel(t *testing.T) {
	url := fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared", t.Name())

	gdb, err := NewDB(config.DBConfig{URL: url})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	for _, m := range models.All() {
		if !gdb.Migrator().HasTable(m) {
			t.Fatalf("table for %T not created", m)
		}
	}
}

func TestIsSQLite(t *testing.T) {
	cases := map[string]bool{
		"sqlite://nextbarber.db":           true,
		"postgres://u:p@localhost:5432/db": false,
		"host=localhost user=u dbname=db":  false,
	}
	for url, want := range cases {
		if got := isSQLite(url); got != want {
			t.Fatalf("isSQLite(%q) = %v, want %v", url, got, want)
		}
	}
}
