package xmlstream

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func newTestWriter() (*Writer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWriter(&buf), &buf
}

func flushed(t *testing.T, w *Writer, buf *bytes.Buffer) string {
	t.Helper()
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush error = %v", err)
	}
	return buf.String()
}

func TestWriterElementAndText(t *testing.T) {
	w, buf := newTestWriter()
	if err := w.StartElement(Name{Local: "r"}, nil, nil); err != nil {
		t.Fatalf("StartElement error = %v", err)
	}
	if err := w.CharData("a<b & c"); err != nil {
		t.Fatalf("CharData error = %v", err)
	}
	if err := w.EndElement(); err != nil {
		t.Fatalf("EndElement error = %v", err)
	}
	want := `<r>a&lt;b &amp; c</r>`
	if got := flushed(t, w, buf); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestWriterAttrEscaping(t *testing.T) {
	w, buf := newTestWriter()
	w.StartElement(Name{Local: "r"}, []Attr{{Name: Name{Local: "k"}, Value: `a"b` + "\n"}}, nil)
	w.EndElement()
	want := `<r k="a&quot;b&#10;"></r>`
	if got := flushed(t, w, buf); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestWriterNamespaceDeclarations(t *testing.T) {
	w, buf := newTestWriter()
	name := Name{Local: "x", Space: "urn:a", Prefix: "a"}
	attrs := []Attr{{Name: Name{Local: "y", Space: "urn:a", Prefix: "a"}, Value: "v"}}
	w.StartElement(name, attrs, Namespace{"a": "urn:a"})
	w.EndElement()
	want := `<a:x xmlns:a="urn:a" a:y="v"></a:x>`
	if got := flushed(t, w, buf); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestWriterDefaultNamespace(t *testing.T) {
	w, buf := newTestWriter()
	w.StartElement(Name{Local: "g", Space: "urn:d"}, nil, Namespace{"": "urn:d"})
	w.StartElement(Name{Local: "c", Space: "urn:d"}, nil, Namespace{"": "urn:d"})
	w.EndElement()
	w.EndElement()
	want := `<g xmlns="urn:d"><c></c></g>`
	if got := flushed(t, w, buf); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestWriterNoRedundantDeclarations(t *testing.T) {
	w, buf := newTestWriter()
	ns := Namespace{"p": "urn:p"}
	w.StartElement(Name{Local: "a", Space: "urn:p", Prefix: "p"}, nil, ns)
	w.StartElement(Name{Local: "b", Space: "urn:p", Prefix: "p"}, nil, ns)
	w.EndElement()
	w.EndElement()
	got := flushed(t, w, buf)
	if strings.Count(got, "xmlns:p") != 1 {
		t.Fatalf("output = %q, want a single xmlns:p declaration", got)
	}
}

func TestWriterDeclaresMissingPrefix(t *testing.T) {
	// The binding is demanded by the element name even though the ns
	// mapping does not carry it.
	w, buf := newTestWriter()
	w.StartElement(Name{Local: "a", Space: "urn:p", Prefix: "p"}, nil, nil)
	w.EndElement()
	want := `<p:a xmlns:p="urn:p"></p:a>`
	if got := flushed(t, w, buf); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestWriterCommentRejectsDoubleHyphen(t *testing.T) {
	w, _ := newTestWriter()
	if err := w.Comment("a--b"); err == nil {
		t.Fatal("Comment(a--b) error = nil, want error")
	}
}

func TestWriterEndWithoutStart(t *testing.T) {
	w, _ := newTestWriter()
	if err := w.EndElement(); !errors.Is(err, errNoOpenElement) {
		t.Fatalf("EndElement error = %v, want %v", err, errNoOpenElement)
	}
}

func TestWriterProcInst(t *testing.T) {
	w, buf := newTestWriter()
	if err := w.ProcInst("xml", `version="1.0"`); err != nil {
		t.Fatalf("ProcInst error = %v", err)
	}
	want := `<?xml version="1.0"?>`
	if got := flushed(t, w, buf); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	input := `<root xmlns:v="urn:v"><v:a v:b="1">txt</v:a><!--c--><?p d?></root>`

	events := readAll(t, input)

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, ev := range events {
		if err := w.EncodeEvent(ev); err != nil {
			t.Fatalf("EncodeEvent(%+v) error = %v", ev, err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush error = %v", err)
	}
	if buf.String() != input {
		t.Fatalf("written = %q, want %q", buf.String(), input)
	}

	again := readAll(t, buf.String())
	if len(again) != len(events) {
		t.Fatalf("reparse produced %d events, want %d", len(again), len(events))
	}
	for i := range events {
		a, b := events[i], again[i]
		a.Line, a.Column, b.Line, b.Column = 0, 0, 0, 0
		if !eventsEqual(a, b) {
			t.Fatalf("event %d = %+v, want %+v", i, b, a)
		}
	}
}

func readAll(t *testing.T, input string) []Event {
	t.Helper()
	r := mustReader(t, input)
	var events []Event
	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return events
		}
		if err != nil {
			t.Fatalf("Next error = %v", err)
		}
		events = append(events, ev)
	}
}

func eventsEqual(a, b Event) bool {
	if a.Kind != b.Kind || a.Name != b.Name || a.Text != b.Text || a.Target != b.Target {
		return false
	}
	if len(a.Attrs) != len(b.Attrs) {
		return false
	}
	for i := range a.Attrs {
		if a.Attrs[i] != b.Attrs[i] {
			return false
		}
	}
	if !a.NS.Equal(b.NS) {
		return false
	}
	return true
}
