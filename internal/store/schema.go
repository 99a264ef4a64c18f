package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// Table names.
const (
	galleryTable = "gallery_sessions"
	promptTable  = "saved_prompts"
	eventTable   = "llm_request_events"
)

// schema lists the statements run at open. Every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS gallery_sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		question TEXT NOT NULL,
		student_responses TEXT NOT NULL,
		analysis_question TEXT,
		analysis_result TEXT,
		submitted_by TEXT NOT NULL DEFAULT 'Anonymous',
		submitted_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS gallery_sessions_submitted_at ON gallery_sessions (submitted_at)`,
	`CREATE TABLE IF NOT EXISTS saved_prompts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		text TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_purpose ON llm_request_events (purpose)`,
}

func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range schema {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
