// Package organizer assigns final output paths to resolved videos. It
// expands a user-supplied naming template, sanitizes the result for
// cross-platform safety, and suffixes a counter until the name is free in
// its target directory. Assignment is not atomic with file creation; the
// downstream downloader is expected to claim the path promptly.
package organizer
