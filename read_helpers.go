package gpx

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	gpxerrors "github.com/Kingdread/gpx/errors"
	"github.com/Kingdread/gpx/pkg/xmlstream"
)

// readError wraps a reader failure. Classified errors from nested
// consumers pass through untouched.
func readError(err error) error {
	if _, ok := gpxerrors.AsParse(err); ok {
		return err
	}
	return &gpxerrors.Parse{
		Code:    gpxerrors.ErrXMLRead,
		Message: "reading XML",
		Err:     err,
	}
}

func truncated(element string) error {
	return gpxerrors.NewParse(gpxerrors.ErrTruncated, "input ended before "+element+" closed", element)
}

func unexpectedClose(ev xmlstream.Event, open string) error {
	return &gpxerrors.Parse{
		Code:    gpxerrors.ErrInvalidValue,
		Message: fmt.Sprintf("closing tag %s does not match open element %s", ev.Name, open),
		Element: open,
		Line:    ev.Line,
		Column:  ev.Column,
	}
}

// skipElement consumes the remainder of the element opened by start,
// nested content included.
func skipElement(r *xmlstream.Reader, start xmlstream.Event) error {
	depth := 0
	for {
		ev, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return truncated(start.Name.Local)
			}
			return readError(err)
		}
		switch ev.Kind {
		case xmlstream.EventStartElement:
			depth++
		case xmlstream.EventEndElement:
			if depth > 0 {
				depth--
				continue
			}
			if ev.Name.Local != start.Name.Local {
				return unexpectedClose(ev, start.Name.Local)
			}
			return nil
		}
	}
}

// readString consumes an element holding character content and returns
// the trimmed text. Nested elements are skipped.
func readString(r *xmlstream.Reader, start xmlstream.Event) (string, error) {
	var b strings.Builder
	for {
		ev, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", truncated(start.Name.Local)
			}
			return "", readError(err)
		}
		switch ev.Kind {
		case xmlstream.EventCharData:
			b.WriteString(ev.Text)
		case xmlstream.EventStartElement:
			if err := skipElement(r, ev); err != nil {
				return "", err
			}
		case xmlstream.EventEndElement:
			if ev.Name.Local != start.Name.Local {
				return "", unexpectedClose(ev, start.Name.Local)
			}
			return strings.TrimSpace(b.String()), nil
		}
	}
}

func invalidValue(element, value string, cause error) error {
	return &gpxerrors.Parse{
		Code:    gpxerrors.ErrInvalidValue,
		Message: fmt.Sprintf("invalid %s value %q", element, value),
		Element: element,
		Err:     cause,
	}
}

func readFloat(r *xmlstream.Reader, start xmlstream.Event) (float64, error) {
	s, err := readString(r, start)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, invalidValue(start.Name.Local, s, err)
	}
	return v, nil
}

func readFloatPtr(r *xmlstream.Reader, start xmlstream.Event) (*float64, error) {
	v, err := readFloat(r, start)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func readUintPtr(r *xmlstream.Reader, start xmlstream.Event) (*uint64, error) {
	s, err := readString(r, start)
	if err != nil {
		return nil, err
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, invalidValue(start.Name.Local, s, err)
	}
	return &v, nil
}

func readTime(r *xmlstream.Reader, start xmlstream.Event) (*time.Time, error) {
	s, err := readString(r, start)
	if err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, invalidValue(start.Name.Local, s, err)
	}
	return &t, nil
}

// attrValue returns the value of the named unqualified attribute.
func attrValue(ev xmlstream.Event, local string) (string, bool) {
	for _, a := range ev.Attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func requireFloatAttr(ev xmlstream.Event, local string) (float64, error) {
	s, ok := attrValue(ev, local)
	if !ok {
		return 0, &gpxerrors.Parse{
			Code:    gpxerrors.ErrMissingAttribute,
			Message: fmt.Sprintf("%s requires attribute %s", ev.Name.Local, local),
			Element: ev.Name.Local,
			Line:    ev.Line,
			Column:  ev.Column,
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, invalidValue(ev.Name.Local, s, err)
	}
	return v, nil
}

func checkLatitude(v float64, ev xmlstream.Event) error {
	if v < -90 || v > 90 {
		return coordinateOutOfBounds("latitude", v, ev)
	}
	return nil
}

func checkLongitude(v float64, ev xmlstream.Event) error {
	if v < -180 || v > 180 {
		return coordinateOutOfBounds("longitude", v, ev)
	}
	return nil
}

func coordinateOutOfBounds(kind string, v float64, ev xmlstream.Event) error {
	return &gpxerrors.Parse{
		Code:    gpxerrors.ErrCoordinateOutOfBounds,
		Message: fmt.Sprintf("%s %v is out of bounds", kind, v),
		Element: ev.Name.Local,
		Line:    ev.Line,
		Column:  ev.Column,
	}
}
