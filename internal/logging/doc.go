// Package logging provides slog-based loggers with a compact console
// format and a JSON format for machine consumption.
//
// Components receive loggers by injection and tag their output with a
// component attribute via NewComponentLogger. A nil logger is always
// acceptable wherever a logger is injected; it degrades to a no-op.
package logging
