package dom

// Node is any XML node: one of *Element, Text, Comment, or ProcInst.
// The set is closed; consumers switch over the concrete types.
type Node interface {
	node()
}

// Element is an XML element. Children appear in document order.
// Its JSON encoding is defined in json.go.
type Element struct {
	Name      Name
	Attrs     []Attr
	Namespace Namespace
	Children  []Node
}

// NewElement creates an empty element with the given name.
func NewElement(name Name) *Element {
	return &Element{Name: name}
}

// NewElementLocal creates an empty element with only a local name set.
func NewElementLocal(local string) *Element {
	return NewElement(LocalName(local))
}

// Text is raw character content. Whitespace is preserved verbatim.
type Text string

// Comment is an XML comment.
type Comment string

// ProcInst is a processing instruction.
type ProcInst struct {
	// Target of the processing instruction.
	Target string `json:"target"`
	// Data is the opaque remainder of the instruction, if any.
	Data string `json:"data,omitempty"`
}

func (*Element) node() {}
func (Text) node()     {}
func (Comment) node()  {}
func (ProcInst) node() {}
