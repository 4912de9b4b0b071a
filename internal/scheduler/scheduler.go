// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the weekly statistics aggregation job on an
// in-process cron.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// weeklyStatsSpec fires Monday 03:00 server time, right after the ISO week
// rolls over.
const weeklyStatsSpec = "0 3 * * 1"

// jobTimeout bounds one job run.
const jobTimeout = 2 * time.Minute

// StatsFunc is the weekly aggregation entry point.
type StatsFunc func(ctx context.Context) error

// Scheduler owns the cron runner.
type Scheduler struct {
	cron   *cron.Cron
	stats  StatsFunc
	logger *slog.Logger
}

// New creates a scheduler around the weekly stats job.
func New(stats StatsFunc, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		stats:  stats,
		logger: logger,
	}
}

// Start registers the job and begins the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(weeklyStatsSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if err := s.stats(ctx); err != nil {
			s.logger.Error("scheduled weekly stats run failed", "error", err)
			return
		}
		s.logger.Info("scheduled weekly stats run completed")
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
