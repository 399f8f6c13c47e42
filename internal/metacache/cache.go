package metacache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"streamfetch/internal/fileutil"
	"streamfetch/internal/logging"
	"streamfetch/internal/video"
)

// Cache is a durable store of previously resolved Video records, backed by
// a single pretty-printed JSON array. Every operation reads the whole file
// and Store rewrites it in full; nothing is kept in memory between calls,
// so an external edit between operations is picked up. There is no locking:
// concurrent writers can lose an append, which is acceptable under the
// single-process usage this tool supports.
type Cache struct {
	path   string
	logger *slog.Logger
}

// New creates a cache backed by the file at path.
func New(path string, logger *slog.Logger) *Cache {
	return &Cache{
		path:   path,
		logger: logging.NewComponentLogger(logger, "metacache"),
	}
}

// Path returns the backing file location.
func (c *Cache) Path() string { return c.path }

// Lookup scans the store for the first record with the given identifier.
func (c *Cache) Lookup(id string) (video.Video, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return video.Video{}, false
	}

	for _, record := range c.read() {
		if record.UniqueID == id {
			return record, true
		}
	}
	return video.Video{}, false
}

// Store appends the record and rewrites the store file in full. Records
// are never updated or deleted; a second Store for the same identifier
// adds a second row, and Lookup keeps returning the first.
func (c *Cache) Store(record video.Video) error {
	if strings.TrimSpace(record.UniqueID) == "" {
		return errors.New("video unique id cannot be empty")
	}

	records := append(c.read(), record)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	if err := fileutil.WriteFileAtomic(c.path, data, 0o644); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}

	c.logger.Debug("cached video metadata",
		logging.String(logging.FieldVideoID, record.UniqueID),
		logging.Int("entry_count", len(records)))
	return nil
}

// All returns every record in store order.
func (c *Cache) All() []video.Video {
	return c.read()
}

// Clear removes the store file entirely. This is the out-of-band
// correction path; the cache contract itself has no delete operation.
func (c *Cache) Clear() error {
	err := os.Remove(c.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cache file: %w", err)
	}
	return nil
}

// read loads the whole store, treating a missing, unreadable, or
// malformed file as empty. Cache trouble is never fatal; the caller just
// pays for a remote fetch instead.
func (c *Cache) read() []video.Video {
	data, err := fileutil.ReadFileIfPresent(c.path)
	if err != nil {
		c.logger.Warn("could not read metadata cache, treating as empty",
			logging.String(logging.FieldPath, c.path),
			logging.Error(err))
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var records []video.Video
	if err := json.Unmarshal(data, &records); err != nil {
		c.logger.Warn("metadata cache is malformed, treating as empty",
			logging.String(logging.FieldPath, c.path),
			logging.Error(err))
		return nil
	}
	return records
}
