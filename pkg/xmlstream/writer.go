package xmlstream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

var (
	errNilWriter     = errors.New("nil XML writer")
	errNoOpenElement = errors.New("no open element")
)

// Writer emits XML events as bytes. Namespace bindings carried on start
// events are re-declared only where they differ from the enclosing scope,
// so a tree read by Reader writes back with the same prefixes and URIs.
type Writer struct {
	w    *bufio.Writer
	ns   nsStack
	open []Name
}

// NewWriter creates a writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Flush writes any buffered output to the underlying writer.
func (w *Writer) Flush() error {
	if w == nil || w.w == nil {
		return errNilWriter
	}
	return w.w.Flush()
}

// EncodeEvent writes a single event.
func (w *Writer) EncodeEvent(ev Event) error {
	if w == nil || w.w == nil {
		return errNilWriter
	}
	switch ev.Kind {
	case EventStartElement:
		return w.StartElement(ev.Name, ev.Attrs, ev.NS)
	case EventEndElement:
		return w.EndElement()
	case EventCharData:
		return w.CharData(ev.Text)
	case EventComment:
		return w.Comment(ev.Text)
	case EventProcInst:
		return w.ProcInst(ev.Target, ev.Text)
	case EventDirective:
		return w.Directive(ev.Text)
	default:
		return fmt.Errorf("xmlstream: cannot encode event kind %v", ev.Kind)
	}
}

// StartElement opens an element. The ns mapping describes the bindings
// that must be in scope for the element's content; bindings already
// active are not re-declared.
func (w *Writer) StartElement(name Name, attrs []Attr, ns Namespace) error {
	if w == nil || w.w == nil {
		return errNilWriter
	}
	decls := w.newDeclarations(name, attrs, ns)

	w.w.WriteByte('<')
	w.w.WriteString(name.String())

	prefixes := make([]string, 0, len(decls))
	for prefix := range decls {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	for _, prefix := range prefixes {
		if prefix == "" {
			w.w.WriteString(` xmlns="`)
		} else {
			w.w.WriteString(" xmlns:")
			w.w.WriteString(prefix)
			w.w.WriteString(`="`)
		}
		writeEscaped(w.w, decls[prefix], true)
		w.w.WriteByte('"')
	}

	for _, attr := range attrs {
		w.w.WriteByte(' ')
		w.w.WriteString(attr.Name.String())
		w.w.WriteString(`="`)
		writeEscaped(w.w, attr.Value, true)
		w.w.WriteByte('"')
	}
	w.w.WriteByte('>')

	scope := nsScope{}
	for prefix, uri := range decls {
		if prefix == "" {
			scope.defaultNS = uri
			scope.defaultSet = true
			continue
		}
		if scope.prefixes == nil {
			scope.prefixes = make(map[string]string, len(decls))
		}
		scope.prefixes[prefix] = uri
	}
	w.ns.push(scope)
	w.open = append(w.open, name)
	return nil
}

// EndElement closes the most recently opened element.
func (w *Writer) EndElement() error {
	if w == nil || w.w == nil {
		return errNilWriter
	}
	if len(w.open) == 0 {
		return errNoOpenElement
	}
	name := w.open[len(w.open)-1]
	w.open = w.open[:len(w.open)-1]
	w.ns.pop()
	w.w.WriteString("</")
	w.w.WriteString(name.String())
	w.w.WriteByte('>')
	return nil
}

// CharData writes escaped character content.
func (w *Writer) CharData(s string) error {
	if w == nil || w.w == nil {
		return errNilWriter
	}
	writeEscaped(w.w, s, false)
	return nil
}

// Comment writes a comment. Double hyphens are not permitted inside XML
// comments and are rejected.
func (w *Writer) Comment(s string) error {
	if w == nil || w.w == nil {
		return errNilWriter
	}
	if strings.Contains(s, "--") {
		return fmt.Errorf("xmlstream: comment contains %q", "--")
	}
	w.w.WriteString("<!--")
	w.w.WriteString(s)
	w.w.WriteString("-->")
	return nil
}

// ProcInst writes a processing instruction.
func (w *Writer) ProcInst(target, data string) error {
	if w == nil || w.w == nil {
		return errNilWriter
	}
	if target == "" {
		return errors.New("xmlstream: processing instruction needs a target")
	}
	w.w.WriteString("<?")
	w.w.WriteString(target)
	if data != "" {
		w.w.WriteByte(' ')
		w.w.WriteString(data)
	}
	w.w.WriteString("?>")
	return nil
}

// Directive writes a markup directive such as a DOCTYPE.
func (w *Writer) Directive(s string) error {
	if w == nil || w.w == nil {
		return errNilWriter
	}
	w.w.WriteString("<!")
	w.w.WriteString(s)
	w.w.WriteByte('>')
	return nil
}

// newDeclarations computes the xmlns declarations needed on this start
// tag: every binding in ns that differs from the active scope, plus any
// binding required by the element or attribute prefixes that the mapping
// left out.
func (w *Writer) newDeclarations(name Name, attrs []Attr, ns Namespace) map[string]string {
	decls := make(map[string]string)
	for prefix, uri := range ns {
		cur, ok := w.ns.lookup(prefix)
		if !ok || cur != uri {
			decls[prefix] = uri
		}
	}

	need := func(prefix, uri string) {
		if prefix == "xml" || prefix == "xmlns" {
			return
		}
		if declared, ok := decls[prefix]; ok && declared == uri {
			return
		}
		cur, ok := w.ns.lookup(prefix)
		if ok && cur == uri {
			return
		}
		decls[prefix] = uri
	}
	need(name.Prefix, name.Space)
	for _, attr := range attrs {
		if attr.Name.Prefix != "" {
			need(attr.Name.Prefix, attr.Name.Space)
		}
	}
	if len(decls) == 0 {
		return nil
	}
	return decls
}

func writeEscaped(w *bufio.Writer, s string, inAttr bool) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '&':
			w.WriteString("&amp;")
		case '<':
			w.WriteString("&lt;")
		case '>':
			w.WriteString("&gt;")
		case '"':
			if inAttr {
				w.WriteString("&quot;")
			} else {
				w.WriteByte(c)
			}
		case '\r':
			w.WriteString("&#13;")
		case '\n', '\t':
			if inAttr {
				fmt.Fprintf(w, "&#%d;", c)
			} else {
				w.WriteByte(c)
			}
		default:
			w.WriteByte(c)
		}
	}
}
