package gpx

import (
	"errors"
	"fmt"
	"io"

	"github.com/Kingdread/gpx/dom"
	gpxerrors "github.com/Kingdread/gpx/errors"
	"github.com/Kingdread/gpx/pkg/xmlstream"
)

// extensionsTag is the wrapper tag bounding extension content.
const extensionsTag = "extensions"

// consumeExtensions materializes the extension region bounded by rootTag
// into a dom tree. The reader must be positioned before the region's
// opening tag; on success it is left immediately after the closing tag.
//
// The first violation aborts consumption: no partial tree is returned.
func consumeExtensions(r *xmlstream.Reader, rootTag string) (*dom.Element, error) {
	return buildExtensions(r, rootTag, false)
}

// resumeExtensions continues consumption after the caller already pulled
// the region's opening tag off the stream.
func resumeExtensions(r *xmlstream.Reader, start xmlstream.Event) (*dom.Element, error) {
	return buildExtensions(r, start.Name.Local, true)
}

func buildExtensions(r *xmlstream.Reader, rootTag string, started bool) (*dom.Element, error) {
	// The bottom of the stack is the root shell; it carries only the
	// wrapper's local name.
	stack := []*dom.Element{dom.NewElementLocal(rootTag)}

	for {
		ev, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, &gpxerrors.Parse{
					Code:    gpxerrors.ErrExtensionUnterminated,
					Message: fmt.Sprintf("input ended before %s closed", rootTag),
					Element: rootTag,
				}
			}
			return nil, &gpxerrors.Parse{
				Code:    gpxerrors.ErrXMLRead,
				Message: "reading extension content",
				Element: rootTag,
				Err:     err,
			}
		}

		switch ev.Kind {
		case xmlstream.EventStartElement:
			if ev.Name.Local == rootTag {
				if started {
					return nil, &gpxerrors.Parse{
						Code:    gpxerrors.ErrExtensionDuplicateRoot,
						Message: fmt.Sprintf("%s opened twice", rootTag),
						Element: rootTag,
						Line:    ev.Line,
						Column:  ev.Column,
					}
				}
				started = true
				continue
			}
			stack = append(stack, dom.ElementFromStart(ev))

		case xmlstream.EventEndElement:
			if ev.Name.Local == rootTag {
				// The reader does not enforce tag balance, so a wrapper
				// closed over still-open children is reachable from input.
				if len(stack) != 1 {
					return nil, &gpxerrors.Parse{
						Code:    gpxerrors.ErrExtensionMalformed,
						Message: fmt.Sprintf("%s closed while %d inner elements remain open", rootTag, len(stack)-1),
						Element: rootTag,
						Line:    ev.Line,
						Column:  ev.Column,
					}
				}
				return stack[0], nil
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.Name != dom.NameFromStream(ev.Name) {
				return nil, &gpxerrors.Parse{
					Code:    gpxerrors.ErrExtensionMalformed,
					Message: fmt.Sprintf("closing tag %s does not match open element %s", ev.Name, top.Name),
					Element: rootTag,
					Line:    ev.Line,
					Column:  ev.Column,
				}
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, top)

		case xmlstream.EventCharData:
			top := stack[len(stack)-1]
			top.Children = append(top.Children, dom.Text(ev.Text))

		case xmlstream.EventComment:
			top := stack[len(stack)-1]
			top.Children = append(top.Children, dom.Comment(ev.Text))

		case xmlstream.EventProcInst:
			top := stack[len(stack)-1]
			top.Children = append(top.Children, dom.ProcInst{Target: ev.Target, Data: ev.Text})

		default:
			// directives and anything else are not part of the tree
		}
	}
}
