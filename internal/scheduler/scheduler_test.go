// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestStartRegistersWeeklyJob(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(func(ctx context.Context) error { return nil }, logger)

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	entries := s.cron.Entries()
	if len(entries) != 1 {
		t.Fatalf("registered jobs = %d, want 1", len(entries))
	}
	if entries[0].Next.IsZero() {
		t.Error("weekly job has no next run time")
	}
}

func TestStopWaitsForShutdown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(func(ctx context.Context) error { return nil }, logger)

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Must return, not hang
	s.Stop()
}
