package dom

import "github.com/Kingdread/gpx/pkg/xmlstream"

// NameFromStream converts a streaming-reader name. The conversion is
// lossless: NameFromStream(n).Stream() == n.
func NameFromStream(n xmlstream.Name) Name {
	return Name{Local: n.Local, Space: n.Space, Prefix: n.Prefix}
}

// Stream converts the name back to its streaming representation.
func (n Name) Stream() xmlstream.Name {
	return xmlstream.Name{Local: n.Local, Space: n.Space, Prefix: n.Prefix}
}

// AttrFromStream converts a streaming-reader attribute.
func AttrFromStream(a xmlstream.Attr) Attr {
	return Attr{Name: NameFromStream(a.Name), Value: a.Value}
}

// Stream converts the attribute back to its streaming representation.
func (a Attr) Stream() xmlstream.Attr {
	return xmlstream.Attr{Name: a.Name.Stream(), Value: a.Value}
}

// NamespaceFromStream copies a streaming-reader namespace mapping.
func NamespaceFromStream(ns xmlstream.Namespace) Namespace {
	if ns == nil {
		return nil
	}
	out := make(Namespace, len(ns))
	for prefix, uri := range ns {
		out[prefix] = uri
	}
	return out
}

// Stream copies the mapping into its streaming representation.
func (ns Namespace) Stream() xmlstream.Namespace {
	if ns == nil {
		return nil
	}
	out := make(xmlstream.Namespace, len(ns))
	for prefix, uri := range ns {
		out[prefix] = uri
	}
	return out
}

// ElementFromStart builds an element shell from a start-element event.
func ElementFromStart(ev xmlstream.Event) *Element {
	e := &Element{
		Name:      NameFromStream(ev.Name),
		Namespace: NamespaceFromStream(ev.NS),
	}
	if len(ev.Attrs) > 0 {
		e.Attrs = make([]Attr, 0, len(ev.Attrs))
		for _, a := range ev.Attrs {
			e.Attrs = append(e.Attrs, AttrFromStream(a))
		}
	}
	return e
}

// StartEvent converts the element's identity back into a start-element
// event carrying the same names, attribute values, and bindings.
func (e *Element) StartEvent() xmlstream.Event {
	ev := xmlstream.Event{
		Kind: xmlstream.EventStartElement,
		Name: e.Name.Stream(),
		NS:   e.Namespace.Stream(),
	}
	if len(e.Attrs) > 0 {
		ev.Attrs = make([]xmlstream.Attr, 0, len(e.Attrs))
		for _, a := range e.Attrs {
			ev.Attrs = append(ev.Attrs, a.Stream())
		}
	}
	return ev
}
