package gpx

import (
	"errors"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/Kingdread/gpx/dom"
	"github.com/Kingdread/gpx/pkg/xmlstream"
)

const gpx11Namespace = "http://www.topografix.com/GPX/1/1"

const defaultCreator = "github.com/Kingdread/gpx"

// Write serializes the document. Output always uses the GPX 1.1 layout;
// captured extension trees are written back with their original names,
// attributes, and namespace bindings.
func (g *GPX) Write(w io.Writer) error {
	if w == nil {
		return errors.New("gpx: nil writer")
	}
	d := &docWriter{w: xmlstream.NewWriter(w)}
	d.procInst("xml", `version="1.0" encoding="UTF-8"`)

	creator := g.Creator
	if creator == "" {
		creator = defaultCreator
	}
	d.startNS("gpx", gpx11Namespace,
		attr("version", string(Version11)),
		attr("creator", creator),
	)
	if g.Metadata != nil {
		d.metadata(g.Metadata)
	}
	for i := range g.Waypoints {
		d.waypoint("wpt", &g.Waypoints[i])
	}
	for i := range g.Routes {
		d.route(&g.Routes[i])
	}
	for i := range g.Tracks {
		d.track(&g.Tracks[i])
	}
	d.extensions(g.Extensions)
	d.end()
	if d.err != nil {
		return d.err
	}
	return d.w.Flush()
}

// WriteFile serializes the document to the file at path.
func (g *GPX) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func attr(local, value string) xmlstream.Attr {
	return xmlstream.Attr{Name: xmlstream.Name{Local: local}, Value: value}
}

// docWriter emits the GPX element structure, remembering the first error.
type docWriter struct {
	w   *xmlstream.Writer
	err error
}

func (d *docWriter) procInst(target, data string) {
	if d.err == nil {
		d.err = d.w.ProcInst(target, data)
	}
}

func (d *docWriter) startNS(local, space string, attrs ...xmlstream.Attr) {
	if d.err == nil {
		name := xmlstream.Name{Local: local, Space: space}
		d.err = d.w.StartElement(name, attrs, xmlstream.Namespace{"": space})
	}
}

func (d *docWriter) start(local string, attrs ...xmlstream.Attr) {
	if d.err == nil {
		d.err = d.w.StartElement(xmlstream.Name{Local: local, Space: gpx11Namespace}, attrs, nil)
	}
}

func (d *docWriter) end() {
	if d.err == nil {
		d.err = d.w.EndElement()
	}
}

func (d *docWriter) text(s string) {
	if d.err == nil {
		d.err = d.w.CharData(s)
	}
}

// element writes a leaf string element, skipping empty values.
func (d *docWriter) element(local, value string) {
	if value == "" {
		return
	}
	d.start(local)
	d.text(value)
	d.end()
}

func (d *docWriter) floatElement(local string, v *float64) {
	if v == nil {
		return
	}
	d.element(local, formatFloat(*v))
}

func (d *docWriter) uintElement(local string, v *uint64) {
	if v == nil {
		return
	}
	d.element(local, strconv.FormatUint(*v, 10))
}

func (d *docWriter) timeElement(local string, t *time.Time) {
	if t == nil {
		return
	}
	d.element(local, t.UTC().Format(time.RFC3339))
}

func (d *docWriter) link(l Link) {
	var attrs []xmlstream.Attr
	if l.Href != "" {
		attrs = append(attrs, attr("href", l.Href))
	}
	d.start("link", attrs...)
	d.element("text", l.Text)
	d.element("type", l.Type)
	d.end()
}

func (d *docWriter) metadata(md *Metadata) {
	d.start("metadata")
	d.element("name", md.Name)
	d.element("desc", md.Description)
	if md.Author != nil {
		d.start("author")
		d.element("name", md.Author.Name)
		if md.Author.Email != nil {
			d.start("email",
				attr("id", md.Author.Email.ID),
				attr("domain", md.Author.Email.Domain),
			)
			d.end()
		}
		if md.Author.Link != nil {
			d.link(*md.Author.Link)
		}
		d.end()
	}
	if md.Copyright != nil {
		d.start("copyright", attr("author", md.Copyright.Author))
		d.element("year", md.Copyright.Year)
		d.element("license", md.Copyright.License)
		d.end()
	}
	for _, l := range md.Links {
		d.link(l)
	}
	d.timeElement("time", md.Time)
	d.element("keywords", md.Keywords)
	if md.Bounds != nil {
		d.start("bounds",
			attr("minlat", formatFloat(md.Bounds.MinLatitude)),
			attr("minlon", formatFloat(md.Bounds.MinLongitude)),
			attr("maxlat", formatFloat(md.Bounds.MaxLatitude)),
			attr("maxlon", formatFloat(md.Bounds.MaxLongitude)),
		)
		d.end()
	}
	d.extensions(md.Extensions)
	d.end()
}

func (d *docWriter) waypoint(local string, wp *Waypoint) {
	d.start(local,
		attr("lat", formatFloat(wp.Latitude)),
		attr("lon", formatFloat(wp.Longitude)),
	)
	d.floatElement("ele", wp.Elevation)
	d.timeElement("time", wp.Time)
	d.floatElement("magvar", wp.MagneticVariation)
	d.floatElement("geoidheight", wp.GeoidHeight)
	d.floatElement("speed", wp.Speed)
	d.element("name", wp.Name)
	d.element("cmt", wp.Comment)
	d.element("desc", wp.Description)
	d.element("src", wp.Source)
	for _, l := range wp.Links {
		d.link(l)
	}
	d.element("sym", wp.Symbol)
	d.element("type", wp.Type)
	d.element("fix", string(wp.Fix))
	d.uintElement("sat", wp.Satellites)
	d.floatElement("hdop", wp.HDOP)
	d.floatElement("vdop", wp.VDOP)
	d.floatElement("pdop", wp.PDOP)
	d.floatElement("ageofdgpsdata", wp.DGPSAge)
	d.uintElement("dgpsid", wp.DGPSID)
	d.extensions(wp.Extensions)
	d.end()
}

func (d *docWriter) route(rt *Route) {
	d.start("rte")
	d.element("name", rt.Name)
	d.element("cmt", rt.Comment)
	d.element("desc", rt.Description)
	d.element("src", rt.Source)
	for _, l := range rt.Links {
		d.link(l)
	}
	d.uintElement("number", rt.Number)
	d.element("type", rt.Type)
	d.extensions(rt.Extensions)
	for i := range rt.Points {
		d.waypoint("rtept", &rt.Points[i])
	}
	d.end()
}

func (d *docWriter) track(tk *Track) {
	d.start("trk")
	d.element("name", tk.Name)
	d.element("cmt", tk.Comment)
	d.element("desc", tk.Description)
	d.element("src", tk.Source)
	for _, l := range tk.Links {
		d.link(l)
	}
	d.uintElement("number", tk.Number)
	d.element("type", tk.Type)
	d.extensions(tk.Extensions)
	for i := range tk.Segments {
		seg := &tk.Segments[i]
		d.start("trkseg")
		for j := range seg.Points {
			d.waypoint("trkpt", &seg.Points[j])
		}
		d.extensions(seg.Extensions)
		d.end()
	}
	d.end()
}

// extensions writes a captured extension tree back out. The wrapper shell
// carries only a local name, so the wrapper tag itself is written as a
// regular GPX element and only the children keep their captured identity.
// The tree depth is bounded by the reader's depth limit, so recursion is
// safe here.
func (d *docWriter) extensions(e *dom.Element) {
	if e == nil {
		return
	}
	d.start(extensionsTag)
	for _, child := range e.Children {
		d.node(child)
	}
	d.end()
}

func (d *docWriter) node(n dom.Node) {
	if d.err != nil {
		return
	}
	switch v := n.(type) {
	case *dom.Element:
		ev := v.StartEvent()
		d.err = d.w.StartElement(ev.Name, ev.Attrs, ev.NS)
		for _, child := range v.Children {
			d.node(child)
		}
		d.end()
	case dom.Text:
		d.err = d.w.CharData(string(v))
	case dom.Comment:
		d.err = d.w.Comment(string(v))
	case dom.ProcInst:
		d.err = d.w.ProcInst(v.Target, v.Data)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
