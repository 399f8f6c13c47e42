// Package resolver turns batches of opaque video identifiers into fully
// populated Video records. It is cache-first: the remote API is consulted
// only for identifiers the metadata cache has never seen, one at a time.
// Classified failures (not found, forbidden, anything else) are recorded
// in the status report and drop the identifier from the batch result
// instead of aborting the batch.
package resolver
