package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldSessionID   = "session_id"
	FieldFile        = "file"
	FieldFiles       = "files"
	FieldRowsKept    = "rows_kept"
	FieldRowsDropped = "rows_dropped"
	FieldPeople      = "people"
	FieldMarker      = "worksite_marker"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentIngest  = "ingest"
	ComponentSession = "session"
	ComponentReport  = "report"
	ComponentAMQP    = "amqp"
	ComponentSheets  = "sheets"
)
