package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActionType identifies an audited operation.
type ActionType string

// Audited operations.
const (
	ActionCalculate      ActionType = "calculate"
	ActionImport         ActionType = "import"
	ActionExport         ActionType = "export"
	ActionSaveSchedule   ActionType = "save_schedule"
	ActionUpdateRateCard ActionType = "update_rate_card"
)

// LogEntry is a request or audit log record.
// Context-specific data goes in Fields.
type LogEntry struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Timestamp  time.Time              `bson:"timestamp" json:"timestamp"`
	Level      string                 `bson:"level" json:"level"`
	Message    string                 `bson:"message" json:"message"`
	RequestID  string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method     string                 `bson:"method,omitempty" json:"method,omitempty"`
	Path       string                 `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int                    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64                  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string                 `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error      string                 `bson:"error,omitempty" json:"error,omitempty"`
	Actor      string                 `bson:"actor,omitempty" json:"actor,omitempty"`
	ActionType ActionType             `bson:"action_type,omitempty" json:"action_type,omitempty"`
	Reference  string                 `bson:"reference,omitempty" json:"reference,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithField adds a field to the log entry's Fields map.
func (e *LogEntry) WithField(key string, value interface{}) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// WithFields adds multiple fields to the log entry's Fields map.
func (e *LogEntry) WithFields(fields map[string]interface{}) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{}, len(fields))
	}
	for k, v := range fields {
		e.Fields[k] = v
	}
	return e
}

// LogQueryOptions provides options for querying logs.
type LogQueryOptions struct {
	RequestID  string
	Level      string
	Method     string
	Path       string
	ActionType ActionType
	// AuditOnly restricts the query to audit entries.
	AuditOnly  bool
	Actor      string
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int
	Skip       int
}
