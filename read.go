package gpx

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	gpxerrors "github.com/Kingdread/gpx/errors"
	"github.com/Kingdread/gpx/pkg/xmlstream"
)

// Read parses a GPX document from r.
func Read(r io.Reader, opts ...ReadOption) (*GPX, error) {
	if r == nil {
		return nil, gpxerrors.NewParse(gpxerrors.ErrXMLRead, "nil reader", "")
	}
	o := buildReadOptions(opts...)
	sr, err := xmlstream.NewReader(r, o.stream()...)
	if err != nil {
		return nil, readError(err)
	}
	return readDocument(sr)
}

// ReadFile parses the GPX document at path.
func ReadFile(path string, opts ...ReadOption) (*GPX, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, opts...)
}

func readDocument(r *xmlstream.Reader) (*GPX, error) {
	doc := &GPX{}
	seenRoot := false
	rootClosed := false

	for {
		ev, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				switch {
				case !seenRoot:
					return nil, gpxerrors.NewParse(gpxerrors.ErrNoRoot, "no gpx root element", "")
				case !rootClosed:
					return nil, truncated("gpx")
				}
				return doc, nil
			}
			return nil, readError(err)
		}

		switch ev.Kind {
		case xmlstream.EventStartElement:
			switch {
			case rootClosed:
				return nil, &gpxerrors.Parse{
					Code:    gpxerrors.ErrInvalidValue,
					Message: fmt.Sprintf("unexpected element %s after document end", ev.Name),
					Line:    ev.Line,
					Column:  ev.Column,
				}
			case !seenRoot:
				if ev.Name.Local != "gpx" {
					return nil, &gpxerrors.Parse{
						Code:    gpxerrors.ErrNoRoot,
						Message: fmt.Sprintf("expected gpx root element, found %s", ev.Name),
						Line:    ev.Line,
						Column:  ev.Column,
					}
				}
				if err := applyRootAttrs(doc, ev); err != nil {
					return nil, err
				}
				seenRoot = true
			default:
				if err := readRootChild(r, doc, ev); err != nil {
					return nil, err
				}
			}

		case xmlstream.EventEndElement:
			if seenRoot && !rootClosed && ev.Name.Local == "gpx" {
				rootClosed = true
			}

		default:
			// prolog, whitespace, and trailing comments
		}
	}
}

func applyRootAttrs(doc *GPX, ev xmlstream.Event) error {
	version, ok := attrValue(ev, "version")
	if !ok {
		return &gpxerrors.Parse{
			Code:    gpxerrors.ErrMissingAttribute,
			Message: "gpx requires attribute version",
			Element: "gpx",
			Line:    ev.Line,
			Column:  ev.Column,
		}
	}
	switch Version(strings.TrimSpace(version)) {
	case Version10:
		doc.Version = Version10
	case Version11:
		doc.Version = Version11
	default:
		return &gpxerrors.Parse{
			Code:    gpxerrors.ErrUnsupportedVersion,
			Message: fmt.Sprintf("unsupported GPX version %q", version),
			Element: "gpx",
			Line:    ev.Line,
			Column:  ev.Column,
		}
	}
	doc.Creator, _ = attrValue(ev, "creator")
	return nil
}

// meta returns the document metadata, creating it on first use. GPX 1.0
// keeps metadata fields directly under the root element.
func meta(doc *GPX) *Metadata {
	if doc.Metadata == nil {
		doc.Metadata = &Metadata{}
	}
	return doc.Metadata
}

func readRootChild(r *xmlstream.Reader, doc *GPX, ev xmlstream.Event) error {
	switch ev.Name.Local {
	case "metadata":
		md, err := readMetadata(r, ev)
		if err != nil {
			return err
		}
		doc.Metadata = md
	case "wpt":
		wp, err := readWaypoint(r, ev)
		if err != nil {
			return err
		}
		doc.Waypoints = append(doc.Waypoints, *wp)
	case "rte":
		rt, err := readRoute(r, ev)
		if err != nil {
			return err
		}
		doc.Routes = append(doc.Routes, *rt)
	case "trk":
		tk, err := readTrack(r, ev)
		if err != nil {
			return err
		}
		doc.Tracks = append(doc.Tracks, *tk)
	case extensionsTag:
		ext, err := resumeExtensions(r, ev)
		if err != nil {
			return err
		}
		doc.Extensions = ext

	// GPX 1.0 top-level metadata fields
	case "name":
		return readStringInto(r, ev, &meta(doc).Name)
	case "desc":
		return readStringInto(r, ev, &meta(doc).Description)
	case "keywords":
		return readStringInto(r, ev, &meta(doc).Keywords)
	case "author":
		s, err := readString(r, ev)
		if err != nil {
			return err
		}
		meta(doc).Author = &Person{Name: s}
	case "email":
		s, err := readString(r, ev)
		if err != nil {
			return err
		}
		if meta(doc).Author == nil {
			meta(doc).Author = &Person{}
		}
		meta(doc).Author.Email = splitEmail(s)
	case "url":
		s, err := readString(r, ev)
		if err != nil {
			return err
		}
		meta(doc).Links = append(meta(doc).Links, Link{Href: s})
	case "urlname":
		s, err := readString(r, ev)
		if err != nil {
			return err
		}
		links := meta(doc).Links
		if len(links) > 0 {
			links[len(links)-1].Text = s
		} else {
			meta(doc).Links = append(links, Link{Text: s})
		}
	case "time":
		t, err := readTime(r, ev)
		if err != nil {
			return err
		}
		meta(doc).Time = t
	case "bounds":
		b, err := readBounds(r, ev)
		if err != nil {
			return err
		}
		meta(doc).Bounds = b

	default:
		return skipElement(r, ev)
	}
	return nil
}

func readStringInto(r *xmlstream.Reader, ev xmlstream.Event, dst *string) error {
	s, err := readString(r, ev)
	if err != nil {
		return err
	}
	*dst = s
	return nil
}

func splitEmail(s string) *Email {
	id, domain, found := strings.Cut(s, "@")
	if !found {
		return &Email{ID: s}
	}
	return &Email{ID: id, Domain: domain}
}
