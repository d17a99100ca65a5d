package dom

// Name is the serializable counterpart of xmlstream.Name.
type Name struct {
	// Local is the local ("tag") name.
	Local string `json:"local"`
	// Space is the resolved namespace URI, if any.
	Space string `json:"namespace,omitempty"`
	// Prefix is the namespace prefix as written in the document.
	Prefix string `json:"prefix,omitempty"`
}

// LocalName returns a Name with just the local part set.
func LocalName(local string) Name {
	return Name{Local: local}
}

// String returns the name as written in the document, prefix included.
func (n Name) String() string {
	if n.Prefix == "" {
		return n.Local
	}
	return n.Prefix + ":" + n.Local
}

// Attr is the serializable counterpart of xmlstream.Attr.
type Attr struct {
	Name  Name   `json:"name"`
	Value string `json:"value"`
}

// Namespace is the serializable counterpart of xmlstream.Namespace: a
// mapping from prefix to namespace URI. The empty prefix holds the
// default namespace. Entry order carries no meaning.
type Namespace map[string]string

// NewNamespace creates an empty namespace mapping.
func NewNamespace() Namespace {
	return make(Namespace)
}

// Equal reports whether two mappings contain the same bindings.
func (ns Namespace) Equal(other Namespace) bool {
	if len(ns) != len(other) {
		return false
	}
	for prefix, uri := range ns {
		if got, ok := other[prefix]; !ok || got != uri {
			return false
		}
	}
	return true
}
