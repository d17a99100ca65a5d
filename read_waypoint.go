package gpx

import (
	"errors"
	"io"
	"strings"

	"github.com/Kingdread/gpx/pkg/xmlstream"
)

// readWaypoint parses a wpt, trkpt, or rtept element.
func readWaypoint(r *xmlstream.Reader, start xmlstream.Event) (*Waypoint, error) {
	lat, err := requireFloatAttr(start, "lat")
	if err != nil {
		return nil, err
	}
	if err := checkLatitude(lat, start); err != nil {
		return nil, err
	}
	lon, err := requireFloatAttr(start, "lon")
	if err != nil {
		return nil, err
	}
	if err := checkLongitude(lon, start); err != nil {
		return nil, err
	}

	wp := &Waypoint{Latitude: lat, Longitude: lon}
	for {
		ev, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, truncated(start.Name.Local)
			}
			return nil, readError(err)
		}
		switch ev.Kind {
		case xmlstream.EventStartElement:
			switch ev.Name.Local {
			case "ele":
				wp.Elevation, err = readFloatPtr(r, ev)
			case "speed":
				wp.Speed, err = readFloatPtr(r, ev)
			case "time":
				wp.Time, err = readTime(r, ev)
			case "magvar":
				wp.MagneticVariation, err = readFloatPtr(r, ev)
			case "geoidheight":
				wp.GeoidHeight, err = readFloatPtr(r, ev)
			case "name":
				err = readStringInto(r, ev, &wp.Name)
			case "cmt":
				err = readStringInto(r, ev, &wp.Comment)
			case "desc":
				err = readStringInto(r, ev, &wp.Description)
			case "src":
				err = readStringInto(r, ev, &wp.Source)
			case "link":
				var link Link
				link, err = readLink(r, ev)
				wp.Links = append(wp.Links, link)
			case "sym":
				err = readStringInto(r, ev, &wp.Symbol)
			case "type":
				err = readStringInto(r, ev, &wp.Type)
			case "fix":
				var s string
				s, err = readString(r, ev)
				wp.Fix = Fix(s)
			case "sat":
				wp.Satellites, err = readUintPtr(r, ev)
			case "hdop":
				wp.HDOP, err = readFloatPtr(r, ev)
			case "vdop":
				wp.VDOP, err = readFloatPtr(r, ev)
			case "pdop":
				wp.PDOP, err = readFloatPtr(r, ev)
			case "ageofdgpsdata":
				wp.DGPSAge, err = readFloatPtr(r, ev)
			case "dgpsid":
				wp.DGPSID, err = readUintPtr(r, ev)
			case "url":
				// GPX 1.0 link form
				var s string
				s, err = readString(r, ev)
				if err == nil {
					wp.Links = append(wp.Links, Link{Href: strings.TrimSpace(s)})
				}
			case "urlname":
				var s string
				s, err = readString(r, ev)
				if err == nil {
					if len(wp.Links) > 0 {
						wp.Links[len(wp.Links)-1].Text = s
					} else {
						wp.Links = append(wp.Links, Link{Text: s})
					}
				}
			case extensionsTag:
				wp.Extensions, err = resumeExtensions(r, ev)
			default:
				err = skipElement(r, ev)
			}
			if err != nil {
				return nil, err
			}
		case xmlstream.EventEndElement:
			if ev.Name.Local != start.Name.Local {
				return nil, unexpectedClose(ev, start.Name.Local)
			}
			return wp, nil
		}
	}
}
