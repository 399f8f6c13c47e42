package organizer

import (
	"log/slog"
	"path/filepath"
	"strconv"

	"streamfetch/internal/fileutil"
	"streamfetch/internal/logging"
	"streamfetch/internal/textutil"
	"streamfetch/internal/video"
)

// Assigner computes collision-free output paths for resolved videos.
type Assigner struct {
	logger *slog.Logger

	// skipExistenceCheck disables the on-disk collision scan. Used when
	// the caller knows the target directory is clean and wants to avoid
	// stat calls on a slow filesystem.
	skipExistenceCheck bool
}

// NewAssigner constructs an Assigner.
func NewAssigner(logger *slog.Logger, skipExistenceCheck bool) *Assigner {
	return &Assigner{
		logger:             logging.NewComponentLogger(logger, "organizer"),
		skipExistenceCheck: skipExistenceCheck,
	}
}

// Assign expands the naming template for every record and sets its
// OutPath to a sanitized, collision-free path under the matching output
// directory. outDirs is parallel to videos; when it is shorter, the last
// directory applies to the remainder. No other Video field is touched.
//
// Sanitization runs before the existence scan so collisions are checked
// against the name that will actually be written.
func (a *Assigner) Assign(videos []video.Video, outDirs []string, template, format string) []video.Video {
	// Names claimed earlier in this batch count as existing, otherwise
	// two records expanding to the same title would share a path.
	claimed := make(map[string]struct{})

	for i := range videos {
		dir := dirFor(outDirs, i)
		base := a.expandTemplate(template, videos[i])

		cleanBase := textutil.SanitizeFileName(base, "_")
		if cleanBase != base {
			a.logger.Warn("file name adjusted for filesystem safety",
				logging.String(logging.FieldVideoID, videos[i].UniqueID),
				logging.String("requested", base+"."+format),
				logging.String("adjusted", cleanBase+"."+format))
		}

		finalName := cleanBase + "." + format
		if !a.skipExistenceCheck {
			for suffix := 1; a.taken(dir, finalName, claimed); suffix++ {
				finalName = cleanBase + "." + strconv.Itoa(suffix) + "." + format
			}
		}

		outPath := filepath.Join(dir, finalName)
		claimed[outPath] = struct{}{}
		videos[i].OutPath = outPath

		a.logger.Debug("assigned output path",
			logging.String(logging.FieldVideoID, videos[i].UniqueID),
			logging.String(logging.FieldPath, outPath))
	}

	return videos
}

func (a *Assigner) taken(dir, name string, claimed map[string]struct{}) bool {
	path := filepath.Join(dir, name)
	if _, ok := claimed[path]; ok {
		return true
	}
	return fileutil.Exists(path)
}

func dirFor(outDirs []string, i int) string {
	if len(outDirs) == 0 {
		return "."
	}
	if i < len(outDirs) {
		return outDirs[i]
	}
	return outDirs[len(outDirs)-1]
}
