package textutil

import "strings"

// Characters rejected by at least one of the target filesystems (NTFS is
// the strictest). Each is replaced rather than removed so the visible name
// keeps its original length and word boundaries.
const unsafeChars = `<>:"/\|?*`

// Names NTFS reserves regardless of extension.
var reservedNames = map[string]struct{}{
	"con": {}, "prn": {}, "aux": {}, "nul": {},
	"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {},
	"com6": {}, "com7": {}, "com8": {}, "com9": {},
	"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {},
	"lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
}

// SanitizeFileName rewrites name so it is valid on Windows, macOS, and
// Linux, replacing every invalid character with the replacement string.
// Trailing dots and spaces are trimmed (NTFS strips them silently), and
// reserved device names are prefixed with the replacement.
func SanitizeFileName(name, replacement string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r < 0x20:
			b.WriteString(replacement)
		case strings.ContainsRune(unsafeChars, r):
			b.WriteString(replacement)
		default:
			b.WriteRune(r)
		}
	}

	out := strings.TrimRight(b.String(), ". ")

	base := out
	if idx := strings.IndexByte(out, '.'); idx >= 0 {
		base = out[:idx]
	}
	if _, reserved := reservedNames[strings.ToLower(base)]; reserved {
		out = replacement + out
	}

	return out
}
