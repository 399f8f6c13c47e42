// Package textutil contains small text transformations shared by the
// naming and reporting layers.
package textutil
