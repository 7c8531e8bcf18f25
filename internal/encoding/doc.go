// Package encoding holds internal encoders for track blob sections that are not part of
// the public polyline codec.
//
// Use github.com/tirja/porygon/encoding for polyline text and the blob package for
// track containers; this package is an implementation detail of the latter.
package encoding
