// Package metacache stores resolved video metadata in a single JSON file
// so repeated runs skip the remote API for identifiers they have already
// resolved. The store is append-only; corrections happen by editing or
// removing the file.
package metacache
