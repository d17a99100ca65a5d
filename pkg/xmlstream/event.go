package xmlstream

// EventKind identifies the kind of streaming XML event.
type EventKind int

const (
	EventStartElement EventKind = iota
	EventEndElement
	EventCharData
	EventComment
	EventProcInst
	EventDirective
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventStartElement:
		return "start-element"
	case EventEndElement:
		return "end-element"
	case EventCharData:
		return "char-data"
	case EventComment:
		return "comment"
	case EventProcInst:
		return "processing-instruction"
	case EventDirective:
		return "directive"
	default:
		return "unknown"
	}
}

// Name is a fully qualified XML name.
// Space holds the resolved namespace URI; Prefix keeps the lexical prefix
// as written in the document.
type Name struct {
	Local  string
	Space  string
	Prefix string
}

// String returns the name as written in the document, prefix included.
func (n Name) String() string {
	if n.Prefix == "" {
		return n.Local
	}
	return n.Prefix + ":" + n.Local
}

// Attr is a single attribute with a resolved name.
type Attr struct {
	Name  Name
	Value string
}

// Namespace maps prefixes to namespace URIs.
// The empty prefix holds the default namespace.
type Namespace map[string]string

// Clone returns an independent copy of the mapping.
func (ns Namespace) Clone() Namespace {
	if ns == nil {
		return nil
	}
	out := make(Namespace, len(ns))
	for prefix, uri := range ns {
		out[prefix] = uri
	}
	return out
}

// Equal reports whether two mappings contain the same bindings. A nil
// mapping equals an empty one.
func (ns Namespace) Equal(other Namespace) bool {
	if len(ns) != len(other) {
		return false
	}
	for prefix, uri := range ns {
		if other[prefix] != uri {
			return false
		}
	}
	return true
}

// Event represents a single streaming XML token.
type Event struct {
	Kind   EventKind
	Name   Name      // start and end elements
	Attrs  []Attr    // start elements; namespace declarations are excluded
	NS     Namespace // start elements; full in-scope prefix mapping
	Text   string    // char data, comments, processing-instruction data, directives
	Target string    // processing-instruction target
	Line   int
	Column int
}
