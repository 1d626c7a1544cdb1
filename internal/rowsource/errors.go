package rowsource

// SourceError represents a load-time failure of one tabular source. Callers
// degrade or abort depending on which source failed, so the source name
// always travels with the error.
type SourceError struct {
	Source  string // Source name
	Code    string // Error code (e.g., "missing_columns")
	Message string // Error message
	Err     error  // Underlying error
}

func (e SourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e SourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeNotFound       = "not_found"
	ErrCodeMissingColumns = "missing_columns"
	ErrCodeParse          = "parse_error"
	ErrCodeHTTP           = "http_error"
	ErrCodeUnknown        = "unknown"
)

// NewSourceError creates a new source error
func NewSourceError(source, code, message string, err error) SourceError {
	return SourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
