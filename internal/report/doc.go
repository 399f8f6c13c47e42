// Package report maintains the append-only audit log of per-video
// outcomes. Each resolution or download attempt adds one row; nothing is
// ever rewritten, so the file doubles as a history of retries.
package report
