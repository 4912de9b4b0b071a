// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/pidlozhevich/lawsite/internal/i18n"
	"github.com/pidlozhevich/lawsite/internal/store"
)

// testDB creates a migrated temporary database for handler tests.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return db
}

func testTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.New()
	if err != nil {
		t.Fatalf("i18n.New() failed: %v", err)
	}
	return tr
}
