package resolver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"streamfetch/internal/logging"
	"streamfetch/internal/metacache"
	"streamfetch/internal/report"
	"streamfetch/internal/services"
	"streamfetch/internal/video"
)

// Transport is the single operation the resolver needs from the remote
// API. Implementations carry the session; the resolver never sees it.
type Transport interface {
	Request(ctx context.Context, path, method string) ([]byte, error)
}

// Prompter selects one entry from a list of choices, blocking until the
// user answers.
type Prompter interface {
	Select(choices []string) (int, error)
}

// Options tune a Resolver.
type Options struct {
	// IncludeSubtitles requests caption-track resolution, which costs one
	// extra API round trip per cache miss.
	IncludeSubtitles bool
}

// Resolver produces Video records for a batch of identifiers, consulting
// the cache before the network and recording every classified failure in
// the status report. Identifiers are processed strictly one at a time to
// keep the request rate against the remote service low.
type Resolver struct {
	transport Transport
	cache     *metacache.Cache
	reporter  *report.Reporter
	prompter  Prompter
	logger    *slog.Logger
	opts      Options
}

// New constructs a resolver. The prompter may be nil when subtitles are
// not requested.
func New(transport Transport, cache *metacache.Cache, reporter *report.Reporter, prompter Prompter, logger *slog.Logger, opts Options) *Resolver {
	return &Resolver{
		transport: transport,
		cache:     cache,
		reporter:  reporter,
		prompter:  prompter,
		logger:    logging.NewComponentLogger(logger, "resolver"),
		opts:      opts,
	}
}

// itemResult is the per-identifier outcome of one resolution attempt.
// Exactly one of record/status is meaningful: a classified failure carries
// the status to report and the identifier drops out of the batch result.
type itemResult struct {
	record video.Video
	status report.Status
	failed bool
}

// Resolve processes the batch in input order and returns the successfully
// resolved subset, still in input order. Failures are recorded in the
// status report and skipped; they never abort the remaining identifiers.
func (r *Resolver) Resolve(ctx context.Context, ids []string) []video.Video {
	logger := r.logger.With(logging.String(logging.FieldBatchID, uuid.NewString()))
	logger.Debug("resolving video metadata", logging.Int("batch_size", len(ids)))

	resolved := make([]video.Video, 0, len(ids))
	for _, id := range ids {
		result := r.resolveOne(ctx, id, logger)
		if result.failed {
			r.reporter.Report(id, result.status)
			continue
		}
		resolved = append(resolved, result.record)
	}

	logger.Debug("batch resolution finished",
		logging.Int("resolved", len(resolved)),
		logging.Int("failed", len(ids)-len(resolved)))
	return resolved
}

func (r *Resolver) resolveOne(ctx context.Context, id string, logger *slog.Logger) itemResult {
	if cached, ok := r.cache.Lookup(id); ok {
		logger.Debug("metadata served from cache", logging.String(logging.FieldVideoID, id))
		return itemResult{record: cached}
	}

	body, err := r.transport.Request(ctx, "videos/"+id+"?$expand=creator", http.MethodGet)
	if err != nil {
		status := classify(err)
		logger.Error("could not fetch video metadata",
			logging.String(logging.FieldVideoID, id),
			logging.String(logging.FieldOutcome, string(status)),
			logging.Error(err))
		return itemResult{status: status, failed: true}
	}

	record, err := r.mapResponse(ctx, body, id, logger)
	if err != nil {
		logger.Error("could not map video metadata",
			logging.String(logging.FieldVideoID, id),
			logging.Error(err))
		return itemResult{status: classify(err), failed: true}
	}

	if err := r.cache.Store(record); err != nil {
		// Cache trouble is never fatal; the next run refetches.
		logger.Warn("could not cache video metadata",
			logging.String(logging.FieldVideoID, id),
			logging.Error(err))
	}

	logger.Debug("resolved video metadata", logging.String(logging.FieldVideoID, id))
	return itemResult{record: record}
}

// classify maps a fetch failure onto the closed outcome enumeration using
// the HTTP-like status code carried by the transport error.
func classify(err error) report.Status {
	code, ok := services.StatusCode(err)
	if !ok {
		return report.StatusUnknownMetadataError
	}
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return report.StatusForbidden
	case http.StatusNotFound:
		return report.StatusNotFound
	default:
		return report.StatusUnknownMetadataError
	}
}
