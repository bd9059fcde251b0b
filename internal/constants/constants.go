// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort           = "8080"
	DefaultDBPath         = "jobtracker.db"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultMaxImportBytes = 32 * 1024 * 1024 // 32MB
	DefaultEnvFile        = ".env"
)

// Server timeouts
const (
	ReadHeaderTimeout = 10 * time.Second
	ShutdownTimeout   = 10 * time.Second
)

// Backup document
const (
	BackupFilePrefix  = "job-applications-tracker-"
	BackupFileExt     = ".json"
	BackupTimeLayout  = "2006-01-02-15-04-05"
	BackupJSONIndent  = "  "
	MimeTypeJSON      = "application/json"
	HeaderDisposition = "Content-Disposition"
)

// Settings keys
const (
	SettingLastImportAt     = "last_import_at"
	SettingLastImportResult = "last_import_result"
)

// File Permissions
const (
	DirPermissions  = 0755
	FilePermissions = 0644
)

// HTTP Status Codes
const (
	StatusOK                 = 200
	StatusBadRequest         = 400
	StatusNotFound           = 404
	StatusConflict           = 409
	StatusRequestTooLarge    = 413
	StatusInternalError      = 500
	StatusServiceUnavailable = 503
)
