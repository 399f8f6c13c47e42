package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"streamfetch/internal/metacache"
	"streamfetch/internal/report"
	"streamfetch/internal/services"
	"streamfetch/internal/testsupport"
	"streamfetch/internal/video"
)

// fakeTransport serves canned responses by path substring and counts calls.
type fakeTransport struct {
	responses map[string][]byte
	errors    map[string]error
	calls     []string
}

func (f *fakeTransport) Request(_ context.Context, path, method string) ([]byte, error) {
	if method != http.MethodGet {
		return nil, fmt.Errorf("unexpected method %s", method)
	}
	f.calls = append(f.calls, path)
	for key, err := range f.errors {
		if strings.Contains(path, key) {
			return nil, err
		}
	}
	for key, body := range f.responses {
		if strings.Contains(path, key) {
			return body, nil
		}
	}
	return nil, services.NewStatusError(http.StatusNotFound, nil)
}

type fakePrompter struct {
	index int
	err   error
	seen  []string
}

func (f *fakePrompter) Select(choices []string) (int, error) {
	f.seen = choices
	return f.index, f.err
}

func metadataPayload(name string) []byte {
	return []byte(`{
		"name": ` + fmt.Sprintf("%q", name) + `,
		"publishedDate": "2023-03-07T09:05:02Z",
		"creator": {"name": "Ada Lovelace", "mail": "ada@example.com"},
		"media": {"duration": "PT1H5M30S"},
		"playbackUrls": [
			{"mimeType": "application/dash+xml", "playbackUrl": "https://cdn.example.com/dash.mpd"},
			{"mimeType": "application/vnd.apple.mpegurl", "playbackUrl": "https://cdn.example.com/manifest.m3u8"},
			{"mimeType": "application/vnd.apple.mpegurl", "playbackUrl": "https://cdn.example.com/second.m3u8"}
		],
		"posterImage": {"medium": {"url": "https://cdn.example.com/poster-medium.jpg"}}
	}`)
}

func tracksPayload(tracks ...string) []byte {
	return []byte(`{"value": [` + strings.Join(tracks, ",") + `]}`)
}

type fixture struct {
	transport  *fakeTransport
	prompter   *fakePrompter
	cache      *metacache.Cache
	reporter   *report.Reporter
	reportPath string
	resolver   *Resolver
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	var cfgOpts []testsupport.ConfigOption
	if opts.IncludeSubtitles {
		cfgOpts = append(cfgOpts, testsupport.WithSubtitles())
	}
	cfg := testsupport.NewConfig(t, cfgOpts...)
	opts.IncludeSubtitles = cfg.Subtitles.Enabled
	f := &fixture{
		transport:  &fakeTransport{responses: map[string][]byte{}, errors: map[string]error{}},
		prompter:   &fakePrompter{},
		cache:      metacache.New(cfg.Paths.CacheFile, nil),
		reportPath: cfg.Paths.ReportFile,
	}
	f.reporter = report.NewReporter(f.reportPath, nil)
	f.resolver = New(f.transport, f.cache, f.reporter, f.prompter, nil, opts)
	return f
}

func (f *fixture) reportRows(t *testing.T) []report.Row {
	t.Helper()
	rows, err := report.ReadRows(f.reportPath)
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	return rows
}

func TestResolveMapsMetadata(t *testing.T) {
	f := newFixture(t, Options{})
	f.transport.responses["videos/guid-1?"] = metadataPayload("Q3: Results?")

	records := f.resolver.Resolve(context.Background(), []string{"guid-1"})
	if len(records) != 1 {
		t.Fatalf("resolved %d records, want 1", len(records))
	}

	got := records[0]
	if got.UniqueID != "guid-1" {
		t.Errorf("UniqueID = %q", got.UniqueID)
	}
	if got.Title != "Q3 Results" {
		t.Errorf("Title = %q, want sanitized %q", got.Title, "Q3 Results")
	}
	if got.Duration != "01.05.30" {
		t.Errorf("Duration = %q, want 01.05.30", got.Duration)
	}
	if got.TotalChunks != 65.5 {
		t.Errorf("TotalChunks = %v, want 65.5", got.TotalChunks)
	}
	if got.PlaybackURL != "https://cdn.example.com/manifest.m3u8" {
		t.Errorf("PlaybackURL = %q, want first HLS variant", got.PlaybackURL)
	}
	if got.PosterImageURL != "https://cdn.example.com/poster-medium.jpg" {
		t.Errorf("PosterImageURL = %q", got.PosterImageURL)
	}
	if got.Author != "Ada Lovelace" || got.AuthorEmail != "ada@example.com" {
		t.Errorf("creator = %q/%q", got.Author, got.AuthorEmail)
	}
	if got.OutPath != "" {
		t.Errorf("OutPath should stay empty until path assignment, got %q", got.OutPath)
	}

	published, err := time.Parse(time.RFC3339, "2023-03-07T09:05:02Z")
	if err != nil {
		t.Fatalf("parse fixture date: %v", err)
	}
	if got.PublishDate != video.PublishDate(published) {
		t.Errorf("PublishDate = %q, want %q", got.PublishDate, video.PublishDate(published))
	}
	if got.PublishTime != video.PublishTime(published) {
		t.Errorf("PublishTime = %q, want %q", got.PublishTime, video.PublishTime(published))
	}

	if _, ok := f.cache.Lookup("guid-1"); !ok {
		t.Error("resolved record should be cached")
	}
	if rows := f.reportRows(t); len(rows) != 0 {
		t.Errorf("successful resolution must not report, got %v", rows)
	}
}

func TestResolveBatchOrderingOnPartialFailure(t *testing.T) {
	f := newFixture(t, Options{})
	f.transport.responses["videos/guid-1?"] = metadataPayload("First")
	f.transport.errors["videos/guid-2?"] = services.NewStatusError(http.StatusNotFound, nil)
	f.transport.responses["videos/guid-3?"] = metadataPayload("Third")

	records := f.resolver.Resolve(context.Background(), []string{"guid-1", "guid-2", "guid-3"})
	if len(records) != 2 {
		t.Fatalf("resolved %d records, want 2", len(records))
	}
	if records[0].UniqueID != "guid-1" || records[1].UniqueID != "guid-3" {
		t.Errorf("order not preserved: %q, %q", records[0].UniqueID, records[1].UniqueID)
	}

	rows := f.reportRows(t)
	if len(rows) != 1 {
		t.Fatalf("report rows = %d, want 1", len(rows))
	}
	if rows[0].ID != "guid-2" || rows[0].Status != report.StatusNotFound {
		t.Errorf("row = %+v, want guid-2 NOT_FOUND", rows[0])
	}
}

func TestResolveCacheFirst(t *testing.T) {
	f := newFixture(t, Options{})
	cached := video.Video{UniqueID: "guid-1", Title: "Cached Title"}
	if err := f.cache.Store(cached); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	records := f.resolver.Resolve(context.Background(), []string{"guid-1"})
	if len(records) != 1 || records[0].Title != "Cached Title" {
		t.Fatalf("cache hit not returned: %+v", records)
	}
	if len(f.transport.calls) != 0 {
		t.Errorf("cache hit must make zero network calls, made %v", f.transport.calls)
	}
	if rows := f.reportRows(t); len(rows) != 0 {
		t.Errorf("cache hit must not report, got %v", rows)
	}
	if len(f.cache.All()) != 1 {
		t.Errorf("cache hit must not re-cache, store has %d records", len(f.cache.All()))
	}
}

func TestResolveClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want report.Status
	}{
		{"unauthorized", services.NewStatusError(http.StatusUnauthorized, nil), report.StatusForbidden},
		{"forbidden", services.NewStatusError(http.StatusForbidden, nil), report.StatusForbidden},
		{"not found", services.NewStatusError(http.StatusNotFound, nil), report.StatusNotFound},
		{"server error", services.NewStatusError(http.StatusInternalServerError, nil), report.StatusUnknownMetadataError},
		{"no status code", errors.New("connection refused"), report.StatusUnknownMetadataError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, Options{})
			f.transport.errors["videos/guid-1?"] = tc.err

			records := f.resolver.Resolve(context.Background(), []string{"guid-1"})
			if len(records) != 0 {
				t.Fatalf("expected no records, got %d", len(records))
			}
			rows := f.reportRows(t)
			if len(rows) != 1 || rows[0].Status != tc.want {
				t.Errorf("rows = %+v, want one %s", rows, tc.want)
			}
		})
	}
}

func TestResolveMalformedMetadataIsClassified(t *testing.T) {
	f := newFixture(t, Options{})
	f.transport.responses["videos/guid-1?"] = []byte(`{"media": {"duration": "neither"}}`)

	records := f.resolver.Resolve(context.Background(), []string{"guid-1"})
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	rows := f.reportRows(t)
	if len(rows) != 1 || rows[0].Status != report.StatusUnknownMetadataError {
		t.Errorf("rows = %+v, want one UNKNOWN_METADATA_ERROR", rows)
	}
	if _, ok := f.cache.Lookup("guid-1"); ok {
		t.Error("partial records must never be cached")
	}
}

func TestResolveWithoutSubtitlesSkipsTrackFetch(t *testing.T) {
	f := newFixture(t, Options{})
	f.transport.responses["videos/guid-1?"] = metadataPayload("Plain")

	f.resolver.Resolve(context.Background(), []string{"guid-1"})
	for _, call := range f.transport.calls {
		if strings.Contains(call, "texttracks") {
			t.Errorf("texttracks fetched without subtitle request: %v", f.transport.calls)
		}
	}
}

func TestResolveCaptionsNoTracks(t *testing.T) {
	f := newFixture(t, Options{IncludeSubtitles: true})
	f.transport.responses["videos/guid-1?"] = metadataPayload("Plain")
	f.transport.responses["texttracks"] = tracksPayload()

	records := f.resolver.Resolve(context.Background(), []string{"guid-1"})
	if len(records) != 1 {
		t.Fatalf("resolved %d records, want 1", len(records))
	}
	if records[0].CaptionsURL != "" {
		t.Errorf("CaptionsURL = %q, want empty", records[0].CaptionsURL)
	}
}

func TestResolveCaptionsSingleTrackAutoSelected(t *testing.T) {
	f := newFixture(t, Options{IncludeSubtitles: true})
	f.transport.responses["videos/guid-1?"] = metadataPayload("Plain")
	f.transport.responses["texttracks"] = tracksPayload(
		`{"language": "en", "autoGenerated": false, "url": "https://cdn.example.com/en.vtt"}`)

	records := f.resolver.Resolve(context.Background(), []string{"guid-1"})
	if len(records) != 1 {
		t.Fatalf("resolved %d records, want 1", len(records))
	}
	if records[0].CaptionsURL != "https://cdn.example.com/en.vtt" {
		t.Errorf("CaptionsURL = %q", records[0].CaptionsURL)
	}
	if len(f.prompter.seen) != 0 {
		t.Error("single track must not prompt")
	}
}

func TestResolveCaptionsMultipleTracksPrompt(t *testing.T) {
	f := newFixture(t, Options{IncludeSubtitles: true})
	f.prompter.index = 1
	f.transport.responses["videos/guid-1?"] = metadataPayload("Plain")
	f.transport.responses["texttracks"] = tracksPayload(
		`{"language": "en", "autoGenerated": false, "url": "https://cdn.example.com/en.vtt"}`,
		`{"language": "de", "autoGenerated": true, "url": "https://cdn.example.com/de.vtt"}`)

	records := f.resolver.Resolve(context.Background(), []string{"guid-1"})
	if len(records) != 1 {
		t.Fatalf("resolved %d records, want 1", len(records))
	}
	if records[0].CaptionsURL != "https://cdn.example.com/de.vtt" {
		t.Errorf("CaptionsURL = %q, want prompted choice", records[0].CaptionsURL)
	}
	if len(f.prompter.seen) != 2 {
		t.Fatalf("prompter saw %d choices, want 2", len(f.prompter.seen))
	}
	if f.prompter.seen[1] != "[de] autogenerated: true" {
		t.Errorf("choice label = %q", f.prompter.seen[1])
	}
}

func TestResolveCaptionsPromptFailureFallsBackToFirstTrack(t *testing.T) {
	f := newFixture(t, Options{IncludeSubtitles: true})
	f.prompter.err = errors.New("stdin closed")
	f.transport.responses["videos/guid-1?"] = metadataPayload("Plain")
	f.transport.responses["texttracks"] = tracksPayload(
		`{"language": "en", "autoGenerated": false, "url": "https://cdn.example.com/en.vtt"}`,
		`{"language": "de", "autoGenerated": true, "url": "https://cdn.example.com/de.vtt"}`)

	records := f.resolver.Resolve(context.Background(), []string{"guid-1"})
	if len(records) != 1 {
		t.Fatalf("resolved %d records, want 1", len(records))
	}
	if records[0].CaptionsURL != "https://cdn.example.com/en.vtt" {
		t.Errorf("CaptionsURL = %q, want first track fallback", records[0].CaptionsURL)
	}
}

func TestResolveCaptionFetchFailureSkipsIdentifier(t *testing.T) {
	f := newFixture(t, Options{IncludeSubtitles: true})
	f.transport.responses["videos/guid-1?"] = metadataPayload("Plain")
	f.transport.errors["texttracks"] = services.NewStatusError(http.StatusForbidden, nil)

	records := f.resolver.Resolve(context.Background(), []string{"guid-1"})
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	rows := f.reportRows(t)
	if len(rows) != 1 || rows[0].Status != report.StatusForbidden {
		t.Errorf("rows = %+v, want one FORBIDDEN", rows)
	}
}

func TestResolveSecondRunUsesCache(t *testing.T) {
	f := newFixture(t, Options{})
	f.transport.responses["videos/guid-1?"] = metadataPayload("Once")

	f.resolver.Resolve(context.Background(), []string{"guid-1"})
	firstCalls := len(f.transport.calls)

	f.resolver.Resolve(context.Background(), []string{"guid-1"})
	if len(f.transport.calls) != firstCalls {
		t.Errorf("second run issued network calls: %v", f.transport.calls[firstCalls:])
	}
}
