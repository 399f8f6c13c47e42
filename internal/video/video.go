package video

// Video is one resolved remote asset. A record is either fully populated
// from the remote API (or the cache) or it does not exist; outPath stays
// empty until path assignment runs and no other field is written after
// creation.
type Video struct {
	UniqueID       string  `json:"uniqueId"`
	Title          string  `json:"title"`
	Duration       string  `json:"duration"`
	PublishDate    string  `json:"publishDate"`
	PublishTime    string  `json:"publishTime"`
	Author         string  `json:"author"`
	AuthorEmail    string  `json:"authorEmail"`
	OutPath        string  `json:"outPath"`
	TotalChunks    float64 `json:"totalChunks"`
	PlaybackURL    string  `json:"playbackUrl"`
	PosterImageURL string  `json:"posterImageUrl"`
	CaptionsURL    string  `json:"captionsUrl,omitempty"`
}

// TemplateFields returns the placeholder values available to naming
// templates, keyed by the public field names used in {field} placeholders.
func (v Video) TemplateFields() map[string]string {
	return map[string]string{
		"uniqueId":    v.UniqueID,
		"title":       v.Title,
		"duration":    v.Duration,
		"publishDate": v.PublishDate,
		"publishTime": v.PublishTime,
		"author":      v.Author,
		"authorEmail": v.AuthorEmail,
	}
}
