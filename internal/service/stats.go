// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic above the store layer, currently
// the weekly statistics aggregation.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pidlozhevich/lawsite/internal/store"
)

// PostCounter reports how many posts are currently published. The blog
// service satisfies it.
type PostCounter interface {
	CountPosts(ctx context.Context) (int, error)
}

// StatsService aggregates weekly site statistics into the weekly_stats
// table. One row per ISO week; re-running within the same week adds
// another row rather than failing, so a misfired cron is harmless.
type StatsService struct {
	queries *store.Queries
	posts   PostCounter
}

// WeeklyReport is the JSON payload stored in the data column.
type WeeklyReport struct {
	Year               int    `json:"year"`
	Week               int    `json:"week"`
	CallbacksTotal     int64  `json:"callbacks_total"`
	CallbacksPending   int64  `json:"callbacks_pending"`
	CallbacksContacted int64  `json:"callbacks_contacted"`
	PostsTotal         int    `json:"posts_total"`
	GeneratedAt        string `json:"generated_at"`
}

// NewStatsService creates a new StatsService.
func NewStatsService(db *sql.DB, posts PostCounter) *StatsService {
	return &StatsService{
		queries: store.New(db),
		posts:   posts,
	}
}

// Record computes the current week's aggregate numbers and persists them.
// Returns the stored report.
func (s *StatsService) Record(ctx context.Context) (*WeeklyReport, error) {
	now := time.Now().UTC()
	year, week := now.ISOWeek()

	report := &WeeklyReport{
		Year:        year,
		Week:        week,
		GeneratedAt: now.Format(time.RFC3339),
	}

	var err error
	if report.CallbacksTotal, err = s.queries.CountCallbacks(ctx); err != nil {
		return nil, fmt.Errorf("count callbacks: %w", err)
	}
	if report.CallbacksPending, err = s.queries.CountCallbacksByStatus(ctx, store.CallbackStatusPending); err != nil {
		return nil, fmt.Errorf("count pending callbacks: %w", err)
	}
	if report.CallbacksContacted, err = s.queries.CountCallbacksByStatus(ctx, store.CallbackStatusContacted); err != nil {
		return nil, fmt.Errorf("count contacted callbacks: %w", err)
	}

	if s.posts != nil {
		count, err := s.posts.CountPosts(ctx)
		if err != nil {
			// Post stats are best-effort: a content source outage must not
			// lose the callback numbers.
			slog.Warn("stats: failed to count posts", "error", err)
		} else {
			report.PostsTotal = count
		}
	}

	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}

	if _, err := s.queries.CreateWeeklyStat(ctx, store.CreateWeeklyStatParams{
		Year:       int64(year),
		WeekNumber: int64(week),
		Data:       string(data),
		CreatedAt:  now,
	}); err != nil {
		return nil, fmt.Errorf("store weekly stat: %w", err)
	}

	slog.Info("weekly stats recorded",
		"year", year,
		"week", week,
		"callbacks_total", report.CallbacksTotal,
		"posts_total", report.PostsTotal,
	)
	return report, nil
}
