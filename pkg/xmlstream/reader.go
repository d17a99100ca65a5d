package xmlstream

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

const readerBufferSize = 64 * 1024

var errNilReader = errors.New("nil XML reader")

// Reader provides a streaming XML event interface with namespace tracking.
//
// Reader deliberately consumes raw tokens: names keep their lexical
// prefixes and closing tags are not checked against opening tags, so a
// mismatch surfaces as an ordinary end-element event rather than a
// syntax error.
type Reader struct {
	dec        *xml.Decoder
	src        *posReader
	opts       options
	ns         nsStack
	depth      int
	pendingPop bool
}

// NewReader creates a new streaming reader for r.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	if r == nil {
		return nil, errNilReader
	}
	src := newPosReader(r)
	return &Reader{
		dec:  xml.NewDecoder(src),
		src:  src,
		opts: buildOptions(opts...),
	}, nil
}

// Next returns the next XML event. It returns io.EOF at end of input.
func (r *Reader) Next() (Event, error) {
	if r == nil || r.dec == nil {
		return Event{}, errNilReader
	}
	for {
		if r.pendingPop {
			r.ns.pop()
			r.pendingPop = false
		}
		line, column := r.src.pos()
		tok, err := r.dec.RawToken()
		if err != nil {
			return Event{}, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			ev, err := r.startElement(t, line, column)
			if err != nil {
				return Event{}, err
			}
			return ev, nil

		case xml.EndElement:
			name, err := r.ns.resolveElementName(t.Name)
			if err != nil {
				return Event{}, err
			}
			// The scope opened by the matching start tag stays visible
			// for this event; it is dropped on the next call.
			r.pendingPop = true
			if r.depth > 0 {
				r.depth--
			}
			return Event{Kind: EventEndElement, Name: name, Line: line, Column: column}, nil

		case xml.CharData:
			return Event{Kind: EventCharData, Text: string(t), Line: line, Column: column}, nil

		case xml.Comment:
			if !r.opts.emitComments {
				continue
			}
			return Event{Kind: EventComment, Text: string(t), Line: line, Column: column}, nil

		case xml.ProcInst:
			if !r.opts.emitProcInst {
				continue
			}
			return Event{Kind: EventProcInst, Target: t.Target, Text: string(t.Inst), Line: line, Column: column}, nil

		case xml.Directive:
			if !r.opts.emitDirectives {
				continue
			}
			return Event{Kind: EventDirective, Text: string(t), Line: line, Column: column}, nil
		}
	}
}

func (r *Reader) startElement(t xml.StartElement, line, column int) (Event, error) {
	if r.opts.maxAttrs > 0 && len(t.Attr) > r.opts.maxAttrs {
		return Event{}, fmt.Errorf("xmlstream: element %s has %d attributes, limit is %d", t.Name.Local, len(t.Attr), r.opts.maxAttrs)
	}
	r.ns.push(collectScope(t.Attr))
	r.depth++
	if r.opts.maxDepth > 0 && r.depth > r.opts.maxDepth {
		return Event{}, fmt.Errorf("xmlstream: element nesting exceeds depth limit %d", r.opts.maxDepth)
	}

	name, err := r.ns.resolveElementName(t.Name)
	if err != nil {
		return Event{}, err
	}

	var attrs []Attr
	for _, raw := range t.Attr {
		if isNamespaceDecl(raw.Name) {
			continue
		}
		attrName, err := r.ns.resolveAttrName(raw.Name)
		if err != nil {
			return Event{}, err
		}
		attrs = append(attrs, Attr{Name: attrName, Value: raw.Value})
	}

	return Event{
		Kind:   EventStartElement,
		Name:   name,
		Attrs:  attrs,
		NS:     r.ns.inScope(),
		Line:   line,
		Column: column,
	}, nil
}

// posReader tracks line and column of the byte stream handed to the
// decoder. The decoder pulls single bytes, so the position snapshot taken
// before each token points at (or next to) the token's first byte.
type posReader struct {
	br     *bufio.Reader
	line   int
	column int
}

func newPosReader(r io.Reader) *posReader {
	return &posReader{br: bufio.NewReaderSize(r, readerBufferSize), line: 1, column: 1}
}

func (p *posReader) ReadByte() (byte, error) {
	c, err := p.br.ReadByte()
	if err != nil {
		return 0, err
	}
	p.advance(c)
	return c, nil
}

func (p *posReader) Read(b []byte) (int, error) {
	n, err := p.br.Read(b)
	for _, c := range b[:n] {
		p.advance(c)
	}
	return n, err
}

func (p *posReader) advance(c byte) {
	if c == '\n' {
		p.line++
		p.column = 1
		return
	}
	p.column++
}

func (p *posReader) pos() (line, column int) {
	return p.line, p.column
}
