// Package gpx reads and writes GPX documents, the GPS exchange format.
//
// Standard GPX 1.0 and 1.1 content is parsed into typed structs. Vendor
// extension regions, which GPX leaves schema-unconstrained, are captured
// verbatim as dom trees instead of being discarded; see the dom package.
package gpx
