// Package audit records user-visible operation outcomes (صدور، تصویب، خطا)
// for later inspection.
package audit

import (
	"context"
	"time"

	appctx "invacc/internal/core/context"
	"invacc/internal/core/id"
	"invacc/pkg/logger"
)

// Type classifies an audit entry.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeError   Type = "error"
)

// Entry is one audit log record.
type Entry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	UserID    string         `json:"userId"`
	UserName  string         `json:"userName"`
	Type      Type           `json:"type"`
	Title     string         `json:"title"`
	Details   map[string]any `json:"details,omitempty"`
}

// Recorder persists audit entries.
type Recorder interface {
	AppendLog(ctx context.Context, entry Entry) error
}

// Reader lists audit entries, newest first.
type Reader interface {
	ListLogs(ctx context.Context, limit int) ([]Entry, error)
}

// Record builds an entry for the acting user and appends it.
// A failing recorder never fails the operation being audited; the
// problem is logged instead.
func Record(ctx context.Context, rec Recorder, typ Type, title string, details map[string]any) {
	if rec == nil {
		return
	}

	entry := Entry{
		ID:        id.NewString(),
		Timestamp: time.Now().UTC(),
		UserID:    appctx.GetUserID(ctx),
		UserName:  appctx.GetUserName(ctx),
		Type:      typ,
		Title:     title,
		Details:   details,
	}

	if err := rec.AppendLog(ctx, entry); err != nil {
		logger.Warn(ctx, "failed to append audit entry", "title", title, "error", err)
	}
}

// Func adapts a function to Recorder.
type Func func(ctx context.Context, entry Entry) error

// AppendLog implements Recorder.
func (f Func) AppendLog(ctx context.Context, entry Entry) error {
	return f(ctx, entry)
}
