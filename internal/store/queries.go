// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the subset of *sql.DB / *sql.Tx the queries need.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries wraps a database handle with typed query methods.
type Queries struct {
	db DBTX
}

// New creates a Queries instance for the given database handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns Queries bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const createCallback = `
INSERT INTO callbacks (client_name, client_phone, client_email, message, status, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, client_name, client_phone, client_email, message, status, created_at
`

// CreateCallbackParams holds the values for a new callback record.
type CreateCallbackParams struct {
	ClientName  string
	ClientPhone string
	ClientEmail sql.NullString
	Message     sql.NullString
	Status      string
	CreatedAt   time.Time
}

// CreateCallback inserts one callback request.
func (q *Queries) CreateCallback(ctx context.Context, arg CreateCallbackParams) (Callback, error) {
	row := q.db.QueryRowContext(ctx, createCallback,
		arg.ClientName,
		arg.ClientPhone,
		arg.ClientEmail,
		arg.Message,
		arg.Status,
		arg.CreatedAt,
	)
	var c Callback
	err := row.Scan(&c.ID, &c.ClientName, &c.ClientPhone, &c.ClientEmail, &c.Message, &c.Status, &c.CreatedAt)
	return c, err
}

const countCallbacks = `SELECT COUNT(*) FROM callbacks`

// CountCallbacks returns the total number of callback records.
func (q *Queries) CountCallbacks(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countCallbacks).Scan(&count)
	return count, err
}

const countCallbacksByStatus = `SELECT COUNT(*) FROM callbacks WHERE status = ?`

// CountCallbacksByStatus returns the number of callback records with the given status.
func (q *Queries) CountCallbacksByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countCallbacksByStatus, status).Scan(&count)
	return count, err
}

const listRecentCallbacks = `
SELECT id, client_name, client_phone, client_email, message, status, created_at
FROM callbacks
ORDER BY created_at DESC
LIMIT ?
`

// ListRecentCallbacks returns the most recent callback records.
func (q *Queries) ListRecentCallbacks(ctx context.Context, limit int64) ([]Callback, error) {
	rows, err := q.db.QueryContext(ctx, listRecentCallbacks, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Callback
	for rows.Next() {
		var c Callback
		if err := rows.Scan(&c.ID, &c.ClientName, &c.ClientPhone, &c.ClientEmail, &c.Message, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const createWeeklyStat = `
INSERT INTO weekly_stats (year, week_number, data, created_at)
VALUES (?, ?, ?, ?)
RETURNING id, year, week_number, data, created_at
`

// CreateWeeklyStatParams holds the values for a new weekly stats row.
type CreateWeeklyStatParams struct {
	Year       int64
	WeekNumber int64
	Data       string
	CreatedAt  time.Time
}

// CreateWeeklyStat inserts one weekly aggregate statistics row.
func (q *Queries) CreateWeeklyStat(ctx context.Context, arg CreateWeeklyStatParams) (WeeklyStat, error) {
	row := q.db.QueryRowContext(ctx, createWeeklyStat,
		arg.Year,
		arg.WeekNumber,
		arg.Data,
		arg.CreatedAt,
	)
	var ws WeeklyStat
	err := row.Scan(&ws.ID, &ws.Year, &ws.WeekNumber, &ws.Data, &ws.CreatedAt)
	return ws, err
}

const listWeeklyStats = `
SELECT id, year, week_number, data, created_at
FROM weekly_stats
ORDER BY year DESC, week_number DESC
LIMIT ?
`

// ListWeeklyStats returns the most recent weekly stats rows.
func (q *Queries) ListWeeklyStats(ctx context.Context, limit int64) ([]WeeklyStat, error) {
	rows, err := q.db.QueryContext(ctx, listWeeklyStats, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []WeeklyStat
	for rows.Next() {
		var ws WeeklyStat
		if err := rows.Scan(&ws.ID, &ws.Year, &ws.WeekNumber, &ws.Data, &ws.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, ws)
	}
	return items, rows.Err()
}

const createEvent = `
INSERT INTO events (level, category, message, metadata, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, level, category, message, metadata, created_at
`

// CreateEventParams holds the values for a new event log record.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent inserts one event log record.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, createEvent,
		arg.Level,
		arg.Category,
		arg.Message,
		arg.Metadata,
		arg.CreatedAt,
	)
	var e Event
	err := row.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt)
	return e, err
}

const listRecentEvents = `
SELECT id, level, category, message, metadata, created_at
FROM events
ORDER BY created_at DESC
LIMIT ?
`

// ListRecentEvents returns the most recent event log records.
func (q *Queries) ListRecentEvents(ctx context.Context, limit int64) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listRecentEvents, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
