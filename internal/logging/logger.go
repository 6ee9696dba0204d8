// Package logging decouples the engine from the underlying logging framework.
// Components take a Logger; production code passes the logrus adapter and tests
// pass the capturing mock.
package logging

// Logger is the structured logging interface used across the application.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger
}

// Field is a key-value pair attached to a log message.
type Field struct {
	Key   string
	Value interface{}
}

// Standardized field names so log output stays filterable across packages.
const (
	FieldCondo    = "condo"
	FieldPeriod   = "period"
	FieldRecordID = "record_id"
	FieldRow      = "row"
	FieldReason   = "reason"
	FieldCount    = "count"
	FieldFile     = "file_path"
)
