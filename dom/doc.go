// Package dom implements a simple DOM-like tree for XML content.
//
// The tree represents arbitrary GPX extensions verbatim: GPX has no way
// to sensibly interpret vendor content, so it is captured as-is. The
// types mirror their xmlstream counterparts but are plain serializable
// values; explicit conversion functions map between the two
// representations without loss.
package dom
