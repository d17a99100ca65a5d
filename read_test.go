package gpx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Kingdread/gpx/dom"
	gpxerrors "github.com/Kingdread/gpx/errors"
)

const sampleGPX11 = `<?xml version="1.0" encoding="UTF-8"?>
<gpx xmlns="http://www.topografix.com/GPX/1/1" version="1.1" creator="unit-test">
  <metadata>
    <name>morning run</name>
    <desc>a short test document</desc>
    <author>
      <name>Jane Roe</name>
      <email id="jane" domain="example.com"/>
    </author>
    <copyright author="Jane Roe">
      <year>2016</year>
      <license>https://creativecommons.org/licenses/by/4.0/</license>
    </copyright>
    <link href="https://example.com/run">
      <text>run page</text>
      <type>text/html</type>
    </link>
    <time>2016-03-27T18:57:53Z</time>
    <keywords>test, run</keywords>
    <bounds minlat="47.0" minlon="8.0" maxlat="48.0" maxlon="9.0"/>
  </metadata>
  <wpt lat="47.5" lon="8.5">
    <ele>612.3</ele>
    <time>2016-03-27T18:57:53Z</time>
    <name>summit</name>
    <cmt>windy</cmt>
    <sym>Flag</sym>
    <fix>3d</fix>
    <sat>7</sat>
    <hdop>1.2</hdop>
    <extensions><power>220</power></extensions>
  </wpt>
  <rte>
    <name>way home</name>
    <number>4</number>
    <rtept lat="47.1" lon="8.1"/>
    <rtept lat="47.15" lon="8.12"/>
  </rte>
  <trk>
    <name>morning</name>
    <trkseg>
      <trkpt lat="47.2" lon="8.2"><ele>600</ele></trkpt>
      <trkpt lat="47.3" lon="8.3"/>
      <extensions><pace>5:30</pace></extensions>
    </trkseg>
  </trk>
  <extensions><vendor>acme</vendor></extensions>
</gpx>
`

func TestReadFullDocument(t *testing.T) {
	doc, err := Read(strings.NewReader(sampleGPX11))
	require.NoError(t, err)

	require.Equal(t, Version11, doc.Version)
	require.Equal(t, "unit-test", doc.Creator)

	md := doc.Metadata
	require.NotNil(t, md)
	require.Equal(t, "morning run", md.Name)
	require.Equal(t, "a short test document", md.Description)
	require.Equal(t, "test, run", md.Keywords)
	require.NotNil(t, md.Author)
	require.Equal(t, "Jane Roe", md.Author.Name)
	require.NotNil(t, md.Author.Email)
	require.Equal(t, "jane@example.com", md.Author.Email.String())
	require.NotNil(t, md.Copyright)
	require.Equal(t, "Jane Roe", md.Copyright.Author)
	require.Equal(t, "2016", md.Copyright.Year)
	require.Len(t, md.Links, 1)
	require.Equal(t, Link{
		Href: "https://example.com/run",
		Text: "run page",
		Type: "text/html",
	}, md.Links[0])
	require.NotNil(t, md.Time)
	require.Equal(t, time.Date(2016, 3, 27, 18, 57, 53, 0, time.UTC), *md.Time)
	require.Equal(t, &Bounds{
		MinLatitude: 47, MinLongitude: 8,
		MaxLatitude: 48, MaxLongitude: 9,
	}, md.Bounds)

	require.Len(t, doc.Waypoints, 1)
	wp := doc.Waypoints[0]
	require.Equal(t, 47.5, wp.Latitude)
	require.Equal(t, 8.5, wp.Longitude)
	require.NotNil(t, wp.Elevation)
	require.Equal(t, 612.3, *wp.Elevation)
	require.Equal(t, "summit", wp.Name)
	require.Equal(t, "windy", wp.Comment)
	require.Equal(t, "Flag", wp.Symbol)
	require.Equal(t, Fix3D, wp.Fix)
	require.NotNil(t, wp.Satellites)
	require.Equal(t, uint64(7), *wp.Satellites)
	require.NotNil(t, wp.HDOP)
	require.Equal(t, 1.2, *wp.HDOP)
	require.NotNil(t, wp.Extensions)

	require.Len(t, doc.Routes, 1)
	rt := doc.Routes[0]
	require.Equal(t, "way home", rt.Name)
	require.NotNil(t, rt.Number)
	require.Equal(t, uint64(4), *rt.Number)
	require.Len(t, rt.Points, 2)
	require.Equal(t, 47.1, rt.Points[0].Latitude)

	require.Len(t, doc.Tracks, 1)
	tk := doc.Tracks[0]
	require.Equal(t, "morning", tk.Name)
	require.Len(t, tk.Segments, 1)
	require.Len(t, tk.Segments[0].Points, 2)
	require.NotNil(t, tk.Segments[0].Extensions)

	require.NotNil(t, doc.Extensions)
	require.Len(t, doc.Extensions.Children, 1)
	vendor, ok := doc.Extensions.Children[0].(*dom.Element)
	require.True(t, ok)
	require.Equal(t, "vendor", vendor.Name.Local)
	require.Equal(t, []dom.Node{dom.Text("acme")}, vendor.Children)
}

func TestReadGPX10(t *testing.T) {
	const input = `<?xml version="1.0"?>
<gpx version="1.0" creator="old-tool">
  <name>legacy</name>
  <desc>a 1.0 document</desc>
  <author>John Doe</author>
  <email>john@example.com</email>
  <url>https://example.com/legacy</url>
  <urlname>legacy page</urlname>
  <time>2002-02-10T12:00:00Z</time>
  <bounds minlat="-10" minlon="-20" maxlat="10" maxlon="20"/>
  <wpt lat="1.5" lon="2.5">
    <speed>3.25</speed>
    <url>https://example.com/point</url>
  </wpt>
</gpx>
`
	doc, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, Version10, doc.Version)
	md := doc.Metadata
	require.NotNil(t, md)
	require.Equal(t, "legacy", md.Name)
	require.Equal(t, "a 1.0 document", md.Description)
	require.NotNil(t, md.Author)
	require.Equal(t, "John Doe", md.Author.Name)
	require.NotNil(t, md.Author.Email)
	require.Equal(t, Email{ID: "john", Domain: "example.com"}, *md.Author.Email)
	require.Equal(t, []Link{{Href: "https://example.com/legacy", Text: "legacy page"}}, md.Links)
	require.NotNil(t, md.Bounds)

	require.Len(t, doc.Waypoints, 1)
	wp := doc.Waypoints[0]
	require.NotNil(t, wp.Speed)
	require.Equal(t, 3.25, *wp.Speed)
	require.Equal(t, []Link{{Href: "https://example.com/point"}}, wp.Links)
}

func TestReadUnknownElementsSkipped(t *testing.T) {
	const input = `<gpx version="1.1"><something><deep><deeper/></deep></something><wpt lat="1" lon="2"/></gpx>`
	doc, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, doc.Waypoints, 1)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  gpxerrors.ErrorCode
	}{
		{"empty input", ``, gpxerrors.ErrNoRoot},
		{"wrong root", `<foo/>`, gpxerrors.ErrNoRoot},
		{"missing version", `<gpx creator="x"></gpx>`, gpxerrors.ErrMissingAttribute},
		{"unknown version", `<gpx version="2.0"></gpx>`, gpxerrors.ErrUnsupportedVersion},
		{"unterminated root", `<gpx version="1.1">`, gpxerrors.ErrTruncated},
		{"unterminated track", `<gpx version="1.1"><trk>`, gpxerrors.ErrTruncated},
		{"content after end", `<gpx version="1.1"></gpx><gpx version="1.1"></gpx>`, gpxerrors.ErrInvalidValue},
		{"waypoint missing lat", `<gpx version="1.1"><wpt lon="2"/></gpx>`, gpxerrors.ErrMissingAttribute},
		{"latitude out of bounds", `<gpx version="1.1"><wpt lat="91" lon="2"/></gpx>`, gpxerrors.ErrCoordinateOutOfBounds},
		{"longitude out of bounds", `<gpx version="1.1"><wpt lat="1" lon="-181"/></gpx>`, gpxerrors.ErrCoordinateOutOfBounds},
		{"latitude not a number", `<gpx version="1.1"><wpt lat="north" lon="2"/></gpx>`, gpxerrors.ErrInvalidValue},
		{"elevation not a number", `<gpx version="1.1"><wpt lat="1" lon="2"><ele>high</ele></wpt></gpx>`, gpxerrors.ErrInvalidValue},
		{"bad time", `<gpx version="1.1"><metadata><time>yesterday</time></metadata></gpx>`, gpxerrors.ErrInvalidValue},
		{"bounds missing attr", `<gpx version="1.1"><metadata><bounds minlat="1"/></metadata></gpx>`, gpxerrors.ErrMissingAttribute},
		{"malformed markup", `<gpx version="1.1"><wpt lat="1" lon=</gpx>`, gpxerrors.ErrXMLRead},
		{"extension mismatch", `<gpx version="1.1"><wpt lat="1" lon="2"><extensions><a></b></extensions></wpt></gpx>`, gpxerrors.ErrExtensionMalformed},
		{"extension unterminated", `<gpx version="1.1"><extensions><a>`, gpxerrors.ErrExtensionUnterminated},
		{"extension duplicate root", `<gpx version="1.1"><extensions><extensions/></extensions></gpx>`, gpxerrors.ErrExtensionDuplicateRoot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			requireCode(t, err, tt.code)
		})
	}
}

func TestReadNilReader(t *testing.T) {
	_, err := Read(nil)
	require.Error(t, err)
}

func TestReadDepthOption(t *testing.T) {
	const input = `<gpx version="1.1"><wpt lat="1" lon="2"><extensions><a><b><c/></b></a></extensions></wpt></gpx>`

	_, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	_, err = Read(strings.NewReader(input), WithMaxDepth(3))
	requireCode(t, err, gpxerrors.ErrXMLRead)
}

func TestReadAttrOption(t *testing.T) {
	const input = `<gpx version="1.1" creator="x"></gpx>`
	_, err := Read(strings.NewReader(input), WithMaxAttrs(1))
	requireCode(t, err, gpxerrors.ErrXMLRead)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile("testdata/does-not-exist.gpx")
	require.Error(t, err)
}
