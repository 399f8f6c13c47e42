package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"streamfetch/internal/logging"
	"streamfetch/internal/textutil"
	"streamfetch/internal/video"
)

// hlsMimeType marks the playback variant whose URL points at an HLS
// manifest; other variants are never used, even as a fallback.
const hlsMimeType = "application/vnd.apple.mpegurl"

type metadataResponse struct {
	Name          string `json:"name"`
	PublishedDate string `json:"publishedDate"`
	Creator       struct {
		Name string `json:"name"`
		Mail string `json:"mail"`
	} `json:"creator"`
	Media struct {
		Duration string `json:"duration"`
	} `json:"media"`
	PlaybackURLs []playbackVariant `json:"playbackUrls"`
	PosterImage  struct {
		Medium struct {
			URL string `json:"url"`
		} `json:"medium"`
	} `json:"posterImage"`
}

type playbackVariant struct {
	MimeType    string `json:"mimeType"`
	PlaybackURL string `json:"playbackUrl"`
}

type textTracksResponse struct {
	Value []textTrack `json:"value"`
}

type textTrack struct {
	Language      string `json:"language"`
	AutoGenerated bool   `json:"autoGenerated"`
	URL           string `json:"url"`
}

// mapResponse derives a full Video record from the metadata payload,
// issuing the caption-track round trip when subtitles were requested.
func (r *Resolver) mapResponse(ctx context.Context, body []byte, id string, logger *slog.Logger) (video.Video, error) {
	var payload metadataResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return video.Video{}, fmt.Errorf("decode metadata response: %w", err)
	}

	duration, err := video.ParseISODuration(payload.Media.Duration)
	if err != nil {
		return video.Video{}, fmt.Errorf("parse media duration: %w", err)
	}

	published, err := time.Parse(time.RFC3339, payload.PublishedDate)
	if err != nil {
		return video.Video{}, fmt.Errorf("parse publish date: %w", err)
	}

	record := video.Video{
		UniqueID:       id,
		Title:          textutil.SanitizeFileName(payload.Name, ""),
		Duration:       duration.Clock(),
		PublishDate:    video.PublishDate(published),
		PublishTime:    video.PublishTime(published),
		Author:         payload.Creator.Name,
		AuthorEmail:    payload.Creator.Mail,
		TotalChunks:    duration.TotalChunks(),
		PlaybackURL:    selectPlaybackURL(payload.PlaybackURLs),
		PosterImageURL: payload.PosterImage.Medium.URL,
	}

	if r.opts.IncludeSubtitles {
		captionsURL, err := r.resolveCaptions(ctx, id, record.Title, logger)
		if err != nil {
			return video.Video{}, err
		}
		record.CaptionsURL = captionsURL
	}

	return record, nil
}

// selectPlaybackURL returns the first HLS manifest variant, or empty when
// none of the variants is an HLS manifest.
func selectPlaybackURL(variants []playbackVariant) string {
	for _, variant := range variants {
		if variant.MimeType == hlsMimeType {
			return variant.PlaybackURL
		}
	}
	return ""
}

// resolveCaptions lists caption tracks and picks one. A single track is
// taken automatically; multiple tracks delegate the choice to the
// prompter. No tracks means no captions, not an error.
func (r *Resolver) resolveCaptions(ctx context.Context, id, title string, logger *slog.Logger) (string, error) {
	body, err := r.transport.Request(ctx, "videos/"+id+"/texttracks", http.MethodGet)
	if err != nil {
		return "", fmt.Errorf("fetch caption tracks: %w", err)
	}

	var payload textTracksResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode caption tracks: %w", err)
	}

	tracks := payload.Value
	switch len(tracks) {
	case 0:
		return "", nil
	case 1:
		logger.Info("found subtitles",
			logging.String(logging.FieldVideoID, id),
			logging.String("title", title))
		return tracks[0].URL, nil
	}

	choices := make([]string, len(tracks))
	for i, track := range tracks {
		choices[i] = fmt.Sprintf("[%s] autogenerated: %t", track.Language, track.AutoGenerated)
	}

	index, err := r.prompt(choices)
	if err != nil {
		logger.Warn("caption selection failed, using first track",
			logging.String(logging.FieldVideoID, id),
			logging.Error(err))
		index = 0
	}
	return tracks[index].URL, nil
}

func (r *Resolver) prompt(choices []string) (int, error) {
	if r.prompter == nil {
		return 0, fmt.Errorf("no prompter configured")
	}
	index, err := r.prompter.Select(choices)
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= len(choices) {
		return 0, fmt.Errorf("selection %d out of range", index)
	}
	return index, nil
}
