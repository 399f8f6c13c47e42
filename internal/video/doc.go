// Package video defines the Video record shared by the cache, resolver,
// and path assigner, along with the duration and timestamp derivations
// used when mapping remote API responses.
package video
