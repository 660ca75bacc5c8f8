package models

// Lookup outcome constants
const (
	OutcomeCacheHit = "cache_hit"
	OutcomeFetched  = "fetched"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// ActiveResult is the record currently presented to the caller.
// Record and Err are mutually exclusive.
type ActiveResult struct {
	Record *Record
	Err    error
	Search string
}

// HasRecord reports whether a record is being presented.
func (a ActiveResult) HasRecord() bool {
	return a.Record != nil
}

// ErrorMessage returns the error text, or "" when there is no error.
func (a ActiveResult) ErrorMessage() string {
	if a.Err == nil {
		return ""
	}
	return a.Err.Error()
}
