package gpx

import (
	"errors"
	"io"

	"github.com/Kingdread/gpx/pkg/xmlstream"
)

func readTrack(r *xmlstream.Reader, start xmlstream.Event) (*Track, error) {
	tk := &Track{}
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
				err = readStringInto(r, ev, &tk.Name)
			case "cmt":
				err = readStringInto(r, ev, &tk.Comment)
			case "desc":
				err = readStringInto(r, ev, &tk.Description)
			case "src":
				err = readStringInto(r, ev, &tk.Source)
			case "link":
				var link Link
				link, err = readLink(r, ev)
				tk.Links = append(tk.Links, link)
			case "number":
				tk.Number, err = readUintPtr(r, ev)
			case "type":
				err = readStringInto(r, ev, &tk.Type)
			case "trkseg":
				var seg *TrackSegment
				seg, err = readSegment(r, ev)
				if err == nil {
					tk.Segments = append(tk.Segments, *seg)
				}
			case extensionsTag:
				tk.Extensions, err = resumeExtensions(r, ev)
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
			return tk, nil
		}
	}
}

func readSegment(r *xmlstream.Reader, start xmlstream.Event) (*TrackSegment, error) {
	seg := &TrackSegment{}
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
			case "trkpt":
				var wp *Waypoint
				wp, err = readWaypoint(r, ev)
				if err == nil {
					seg.Points = append(seg.Points, *wp)
				}
			case extensionsTag:
				seg.Extensions, err = resumeExtensions(r, ev)
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
			return seg, nil
		}
	}
}
