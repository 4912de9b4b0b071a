// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

// Callback statuses. Only "pending" is ever written by this application;
// later transitions happen outside it.
const (
	CallbackStatusPending   = "pending"
	CallbackStatusContacted = "contacted"
	CallbackStatusClosed    = "closed"
)

// Event levels.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories.
const (
	EventCategoryBlog     = "blog"
	EventCategoryCallback = "callback"
	EventCategoryCache    = "cache"
	EventCategoryStats    = "stats"
	EventCategorySystem   = "system"
)

// Callback is one lead-capture form submission awaiting follow-up.
type Callback struct {
	ID          int64
	ClientName  string
	ClientPhone string
	ClientEmail sql.NullString
	Message     sql.NullString
	Status      string
	CreatedAt   time.Time
}

// WeeklyStat is one aggregate statistics row written by the weekly job.
type WeeklyStat struct {
	ID         int64
	Year       int64
	WeekNumber int64
	Data       string
	CreatedAt  time.Time
}

// Event is one audit log record.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}
