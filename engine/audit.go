package engine

import (
	"context"
	"encoding/json"
	"log"
)

// AuditEntry records one tool execution.
type AuditEntry struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id,omitempty"`
	RequestID  string          `json:"request_id"`
	ToolName   string          `json:"tool_name"`
	ToolInput  json.RawMessage `json:"tool_input,omitempty"`
	ToolOutput json.RawMessage `json:"tool_output,omitempty"`
	Success    bool            `json:"success"`
	Error      *string         `json:"error,omitempty"`
	DurationMs int64           `json:"duration_ms"`
	Timestamp  int64           `json:"timestamp"`
}

// AuditLogger receives an entry for every tool execution. Implementations
// must not block the caller for long.
type AuditLogger interface {
	Log(ctx context.Context, entry *AuditEntry)
}

// LogAuditLogger writes audit entries to the standard logger. Tool inputs are
// omitted because they carry recipient bank details.
type LogAuditLogger struct{}

func (LogAuditLogger) Log(ctx context.Context, entry *AuditEntry) {
	status := "ok"
	if !entry.Success {
		status = "failed"
		if entry.Error != nil {
			status = "failed: " + *entry.Error
		}
	}
	log.Printf("[AUDIT] id=%s request=%s tool=%s duration=%dms %s",
		entry.ID, entry.RequestID, entry.ToolName, entry.DurationMs, status)
}
