package organizer

import (
	"regexp"
	"strings"

	"streamfetch/internal/logging"
	"streamfetch/internal/video"
)

var placeholderPattern = regexp.MustCompile(`\{(.*?)\}`)

// expandTemplate substitutes every {field} placeholder with the named
// Video field's value, left to right. Unknown placeholders expand to the
// empty string with a warning; the pipeline always yields a usable name.
func (a *Assigner) expandTemplate(template string, v video.Video) string {
	fields := v.TemplateFields()

	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(match, "{"), "}")
		value, ok := fields[name]
		if !ok {
			a.logger.Warn("unknown template placeholder",
				logging.String("placeholder", match),
				logging.String(logging.FieldVideoID, v.UniqueID))
			return ""
		}
		return value
	})
}
