// Package services defines the shared error taxonomy for external
// collaborators. Remote API failures travel as StatusError values so the
// resolver can classify them by their HTTP-like status code without
// depending on a concrete transport.
package services
