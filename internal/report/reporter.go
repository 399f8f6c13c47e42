package report

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"streamfetch/internal/logging"
)

// Status is one terminal outcome of processing a single identifier.
type Status string

const (
	StatusAlreadyDownloaded    Status = "ALREADY_DOWNLOADED"
	StatusDownloadSuccessful   Status = "DOWNLOAD_SUCCESSFUL"
	StatusNotFound             Status = "NOT_FOUND"
	StatusForbidden            Status = "FORBIDDEN"
	StatusUnknownMetadataError Status = "UNKNOWN_METADATA_ERROR"
	StatusUnknownError         Status = "UNKNOWN_ERROR"
)

// Statuses lists every terminal outcome in a stable order.
func Statuses() []Status {
	return []Status{
		StatusAlreadyDownloaded,
		StatusDownloadSuccessful,
		StatusNotFound,
		StatusForbidden,
		StatusUnknownMetadataError,
		StatusUnknownError,
	}
}

// Reporter appends identifier/outcome rows to a CSV-like audit log. Rows
// are two JSON-escaped fields joined by a comma; there is no header and no
// deduplication, so the file reads as a chronological trail of attempts.
type Reporter struct {
	path   string
	logger *slog.Logger
}

// NewReporter creates a reporter appending to the file at path.
func NewReporter(path string, logger *slog.Logger) *Reporter {
	return &Reporter{
		path:   path,
		logger: logging.NewComponentLogger(logger, "report"),
	}
}

// Path returns the report file location.
func (r *Reporter) Path() string { return r.path }

// Report appends one row for the identifier. Reporting is best-effort:
// write failures are logged and swallowed so they can never abort the
// resolution pipeline.
func (r *Reporter) Report(id string, status Status) {
	row := encodeRow(id, status)

	if err := r.append(row); err != nil {
		r.logger.Error("could not append to status report",
			logging.String(logging.FieldPath, r.path),
			logging.String(logging.FieldVideoID, id),
			logging.Error(err))
		return
	}

	r.logger.Debug("recorded video status",
		logging.String(logging.FieldVideoID, id),
		logging.String(logging.FieldOutcome, string(status)))
}

func (r *Reporter) append(row []byte) error {
	if dir := filepath.Dir(r.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.Write(row); err != nil {
		return err
	}
	return file.Close()
}

func encodeRow(id string, status Status) []byte {
	idField, _ := json.Marshal(id)
	statusField, _ := json.Marshal(string(status))

	row := make([]byte, 0, len(idField)+len(statusField)+2)
	row = append(row, idField...)
	row = append(row, ',')
	row = append(row, statusField...)
	row = append(row, '\n')
	return row
}
