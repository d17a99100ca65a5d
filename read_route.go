package gpx

import (
	"errors"
	"io"

	"github.com/Kingdread/gpx/pkg/xmlstream"
)

func readRoute(r *xmlstream.Reader, start xmlstream.Event) (*Route, error) {
	rt := &Route{}
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
			case "name":
				err = readStringInto(r, ev, &rt.Name)
			case "cmt":
				err = readStringInto(r, ev, &rt.Comment)
			case "desc":
				err = readStringInto(r, ev, &rt.Description)
			case "src":
				err = readStringInto(r, ev, &rt.Source)
			case "link":
				var link Link
				link, err = readLink(r, ev)
				rt.Links = append(rt.Links, link)
			case "number":
				rt.Number, err = readUintPtr(r, ev)
			case "type":
				err = readStringInto(r, ev, &rt.Type)
			case "rtept":
				var wp *Waypoint
				wp, err = readWaypoint(r, ev)
				if err == nil {
					rt.Points = append(rt.Points, *wp)
				}
			case extensionsTag:
				rt.Extensions, err = resumeExtensions(r, ev)
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
			return rt, nil
		}
	}
}
