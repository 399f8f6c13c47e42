package logging

// Standardized attribute keys shared across components.
const (
	FieldComponent = "component"
	FieldVideoID   = "video_id"
	FieldBatchID   = "batch_id"
	FieldPath      = "path"
	FieldOutcome   = "outcome"
)
