// Package stream implements the authenticated transport for the remote
// video-hosting API. The resolver depends only on the Request operation
// and on the status codes its errors carry.
package stream
