package errors

// ErrorCode identifies an application error category on the wire
type ErrorCode int

// Error codes. Values are stable; append only.
const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1005
	ErrorCode_FORBIDDEN        ErrorCode = 1006
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1007

	// Auth
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001

	// Render
	ErrorCode_RENDER_MISSING_FIELD    ErrorCode = 3000
	ErrorCode_RENDER_UNKNOWN_TEMPLATE ErrorCode = 3001
	ErrorCode_RENDER_FAILED           ErrorCode = 3002

	// Report
	ErrorCode_REPORT_NOT_FOUND         ErrorCode = 4000
	ErrorCode_REPORT_CREATION_FAILED   ErrorCode = 4001
	ErrorCode_REPORT_ARCHIVE_FAILED    ErrorCode = 4002
	ErrorCode_REPORT_NOT_RENDERED      ErrorCode = 4003

	// Email
	ErrorCode_EMAIL_UNKNOWN_KIND    ErrorCode = 5000
	ErrorCode_EMAIL_DELIVERY_FAILED ErrorCode = 5001
	ErrorCode_EMAIL_LOG_NOT_FOUND   ErrorCode = 5002

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 6000
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 6001

	// Database
	ErrorCode_DB_CONNECTION_FAILED ErrorCode = 7000
	ErrorCode_DB_QUERY_FAILED      ErrorCode = 7001
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:          "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                  "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:         "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:         "AUTH_TOKEN_EXPIRED",
	ErrorCode_RENDER_MISSING_FIELD:       "RENDER_MISSING_FIELD",
	ErrorCode_RENDER_UNKNOWN_TEMPLATE:    "RENDER_UNKNOWN_TEMPLATE",
	ErrorCode_RENDER_FAILED:              "RENDER_FAILED",
	ErrorCode_REPORT_NOT_FOUND:           "REPORT_NOT_FOUND",
	ErrorCode_REPORT_CREATION_FAILED:     "REPORT_CREATION_FAILED",
	ErrorCode_REPORT_ARCHIVE_FAILED:      "REPORT_ARCHIVE_FAILED",
	ErrorCode_REPORT_NOT_RENDERED:        "REPORT_NOT_RENDERED",
	ErrorCode_EMAIL_UNKNOWN_KIND:         "EMAIL_UNKNOWN_KIND",
	ErrorCode_EMAIL_DELIVERY_FAILED:      "EMAIL_DELIVERY_FAILED",
	ErrorCode_EMAIL_LOG_NOT_FOUND:        "EMAIL_LOG_NOT_FOUND",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:       "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
