// Package walleterror defines the error taxonomy shared by the store, analytics
// and ML layers. Callers branch on these types with errors.As instead of parsing
// message strings.
package walleterror

import "fmt"

// ValidationError represents caller-supplied data violating a contract
// (bad amount, unknown category, malformed date, oversized note).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError represents a failure reading or writing a backing file.
type StorageError struct {
	Path string
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NotFoundError represents a lookup for a record id that does not exist.
// Distinct from StorageError so callers can tell "no such expense" apart
// from "could not read the store".
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("expense with ID %d not found", e.ID)
}

// InsufficientDataError represents an ML operation invoked with fewer data
// points than its configured minimum. Always carries both the requirement
// and what was actually available.
type InsufficientDataError struct {
	Operation string
	Required  int
	Available int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s requires at least %d data points, have %d",
		e.Operation, e.Required, e.Available)
}

// NotTrainedError represents a prediction attempted before any classifier
// artifact has been written. DefaultCategory is the fallback label the
// caller should use.
type NotTrainedError struct {
	DefaultCategory string
}

func (e *NotTrainedError) Error() string {
	return fmt.Sprintf("model not trained yet, falling back to category %q", e.DefaultCategory)
}

// NoSpendingDataError represents an analysis over a spending vector whose
// total is zero, which has no meaningful distribution.
type NoSpendingDataError struct {
	Operation string
}

func (e *NoSpendingDataError) Error() string {
	return fmt.Sprintf("%s: no spending data", e.Operation)
}

// ImportError represents a CSV import failure: missing file, wrong suffix,
// unparseable content or missing required columns. Each distinct condition
// gets its own Reason.
type ImportError struct {
	Path   string
	Reason string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import of %s failed: %s", e.Path, e.Reason)
}
