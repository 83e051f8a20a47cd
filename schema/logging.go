package schema

import "strings"

const MethodLoggingSetLevel = "logging/setLevel"

// LoggingLevel is the severity of a backend log notification.
type LoggingLevel string

const (
	LoggingLevelDebug   LoggingLevel = "debug"
	LoggingLevelInfo    LoggingLevel = "info"
	LoggingLevelWarning LoggingLevel = "warning"
	LoggingLevelError   LoggingLevel = "error"
)

// Ordinal returns the level rank, higher is more severe. Unknown levels rank as info.
func (l LoggingLevel) Ordinal() int {
	switch LoggingLevel(strings.ToLower(string(l))) {
	case LoggingLevelDebug:
		return 0
	case LoggingLevelWarning:
		return 2
	case LoggingLevelError:
		return 3
	}
	return 1
}

// IsValid reports whether l is one of the known levels.
func (l LoggingLevel) IsValid() bool {
	switch l {
	case LoggingLevelDebug, LoggingLevelInfo, LoggingLevelWarning, LoggingLevelError:
		return true
	}
	return false
}

// SetLevelRequestParams sets the minimum level of log notifications the backend emits.
type SetLevelRequestParams struct {
	Level LoggingLevel `json:"level"`
}
