package gpx

import (
	"errors"
	"io"

	"github.com/Kingdread/gpx/pkg/xmlstream"
)

func readMetadata(r *xmlstream.Reader, start xmlstream.Event) (*Metadata, error) {
	md := &Metadata{}
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
				err = readStringInto(r, ev, &md.Name)
			case "desc":
				err = readStringInto(r, ev, &md.Description)
			case "keywords":
				err = readStringInto(r, ev, &md.Keywords)
			case "author":
				md.Author, err = readPerson(r, ev)
			case "copyright":
				md.Copyright, err = readCopyright(r, ev)
			case "link":
				var link Link
				link, err = readLink(r, ev)
				md.Links = append(md.Links, link)
			case "time":
				md.Time, err = readTime(r, ev)
			case "bounds":
				md.Bounds, err = readBounds(r, ev)
			case extensionsTag:
				md.Extensions, err = resumeExtensions(r, ev)
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
			return md, nil
		}
	}
}

func readPerson(r *xmlstream.Reader, start xmlstream.Event) (*Person, error) {
	p := &Person{}
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
				err = readStringInto(r, ev, &p.Name)
			case "email":
				p.Email, err = readEmail(r, ev)
			case "link":
				var link Link
				link, err = readLink(r, ev)
				p.Link = &link
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
			return p, nil
		}
	}
}

// readEmail handles both forms GPX uses: 1.1 splits the address into id
// and domain attributes, 1.0 stores it as element content.
func readEmail(r *xmlstream.Reader, start xmlstream.Event) (*Email, error) {
	id, hasID := attrValue(start, "id")
	domain, hasDomain := attrValue(start, "domain")
	if hasID || hasDomain {
		if err := skipElement(r, start); err != nil {
			return nil, err
		}
		return &Email{ID: id, Domain: domain}, nil
	}
	s, err := readString(r, start)
	if err != nil {
		return nil, err
	}
	return splitEmail(s), nil
}

func readLink(r *xmlstream.Reader, start xmlstream.Event) (Link, error) {
	link := Link{}
	link.Href, _ = attrValue(start, "href")
	for {
		ev, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Link{}, truncated(start.Name.Local)
			}
			return Link{}, readError(err)
		}
		switch ev.Kind {
		case xmlstream.EventStartElement:
			switch ev.Name.Local {
			case "text":
				err = readStringInto(r, ev, &link.Text)
			case "type":
				err = readStringInto(r, ev, &link.Type)
			default:
				err = skipElement(r, ev)
			}
			if err != nil {
				return Link{}, err
			}
		case xmlstream.EventEndElement:
			if ev.Name.Local != start.Name.Local {
				return Link{}, unexpectedClose(ev, start.Name.Local)
			}
			return link, nil
		}
	}
}

func readCopyright(r *xmlstream.Reader, start xmlstream.Event) (*Copyright, error) {
	c := &Copyright{}
	c.Author, _ = attrValue(start, "author")
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
			case "year":
				err = readStringInto(r, ev, &c.Year)
			case "license":
				err = readStringInto(r, ev, &c.License)
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
			return c, nil
		}
	}
}

func readBounds(r *xmlstream.Reader, start xmlstream.Event) (*Bounds, error) {
	b := &Bounds{}
	var err error
	if b.MinLatitude, err = requireFloatAttr(start, "minlat"); err != nil {
		return nil, err
	}
	if b.MinLongitude, err = requireFloatAttr(start, "minlon"); err != nil {
		return nil, err
	}
	if b.MaxLatitude, err = requireFloatAttr(start, "maxlat"); err != nil {
		return nil, err
	}
	if b.MaxLongitude, err = requireFloatAttr(start, "maxlon"); err != nil {
		return nil, err
	}
	for _, lat := range []float64{b.MinLatitude, b.MaxLatitude} {
		if err := checkLatitude(lat, start); err != nil {
			return nil, err
		}
	}
	for _, lon := range []float64{b.MinLongitude, b.MaxLongitude} {
		if err := checkLongitude(lon, start); err != nil {
			return nil, err
		}
	}
	if err := skipElement(r, start); err != nil {
		return nil, err
	}
	return b, nil
}
