package gpx

import (
	"time"

	"github.com/Kingdread/gpx/dom"
)

// Version identifies the GPX schema version of a document.
type Version string

const (
	Version10 Version = "1.0"
	Version11 Version = "1.1"
)

// GPX is a parsed document.
type GPX struct {
	Version Version
	Creator string
	// Metadata holds document-level information. For GPX 1.0 input the
	// top-level metadata fields are folded in here.
	Metadata   *Metadata
	Waypoints  []Waypoint
	Routes     []Route
	Tracks     []Track
	Extensions *dom.Element
}

// Metadata is information about a GPX document.
type Metadata struct {
	Name        string
	Description string
	Author      *Person
	Copyright   *Copyright
	Links       []Link
	Time        *time.Time
	Keywords    string
	Bounds      *Bounds
	Extensions  *dom.Element
}

// Person is the author of a document.
type Person struct {
	Name  string
	Email *Email
	Link  *Link
}

// Email is an address split at the @ sign, as GPX 1.1 stores it.
type Email struct {
	ID     string
	Domain string
}

// String returns the joined address.
func (e Email) String() string {
	return e.ID + "@" + e.Domain
}

// Link is a reference to external information.
type Link struct {
	Href string
	Text string
	Type string
}

// Copyright holds copyright and license information.
type Copyright struct {
	Author  string
	Year    string
	License string
}

// Bounds is the geographic extent covered by a document.
type Bounds struct {
	MinLatitude  float64
	MinLongitude float64
	MaxLatitude  float64
	MaxLongitude float64
}

// Fix is the kind of GPS fix a point was obtained with. Values outside
// the ones GPX names are kept as-is.
type Fix string

const (
	FixNone Fix = "none"
	Fix2D   Fix = "2d"
	Fix3D   Fix = "3d"
	FixDGPS Fix = "dgps"
	FixPPS  Fix = "pps"
)

// Waypoint is a single point: a waypoint, route point, or track point.
type Waypoint struct {
	Latitude  float64
	Longitude float64

	Elevation         *float64
	Speed             *float64 // GPX 1.0 only
	Time              *time.Time
	MagneticVariation *float64
	GeoidHeight       *float64

	Name        string
	Comment     string
	Description string
	Source      string
	Links       []Link
	Symbol      string
	Type        string

	Fix        Fix
	Satellites *uint64
	HDOP       *float64
	VDOP       *float64
	PDOP       *float64
	DGPSAge    *float64
	DGPSID     *uint64

	Extensions *dom.Element
}

// Route is an ordered list of waypoints leading to a destination.
type Route struct {
	Name        string
	Comment     string
	Description string
	Source      string
	Links       []Link
	Number      *uint64
	Type        string
	Points      []Waypoint
	Extensions  *dom.Element
}

// Track is a recorded trace, made of one or more segments.
type Track struct {
	Name        string
	Comment     string
	Description string
	Source      string
	Links       []Link
	Number      *uint64
	Type        string
	Segments    []TrackSegment
	Extensions  *dom.Element
}

// TrackSegment is a continuous span of track points.
type TrackSegment struct {
	Points     []Waypoint
	Extensions *dom.Element
}
