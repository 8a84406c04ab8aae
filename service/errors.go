package service

import "fmt"

// Export errors
var (
	// ErrUnmatchedLine means no order line's stored configuration serializes
	// to the same canonical string as the requested one.
	ErrUnmatchedLine = &ExportError{Message: "no order line matches the requested configuration"}
)

// ExportError represents an export-pipeline error.
type ExportError struct {
	Message string
}

func (e *ExportError) Error() string {
	return e.Message
}

// AssetResolutionError means a configured icon has no resolvable printable
// asset. The pipeline never emits a document with a silently missing part.
type AssetResolutionError struct {
	IconID string
}

func (e *AssetResolutionError) Error() string {
	return fmt.Sprintf("no printable insert asset could be resolved for icon %q", e.IconID)
}
