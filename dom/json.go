package dom

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// JSON node kind discriminators.
const (
	kindElement  = "element"
	kindText     = "text"
	kindComment  = "comment"
	kindProcInst = "pi"
)

type nodeJSON struct {
	Kind     string    `json:"kind"`
	Element  *Element  `json:"element,omitempty"`
	Text     *string   `json:"text,omitempty"`
	Comment  *string   `json:"comment,omitempty"`
	ProcInst *ProcInst `json:"pi,omitempty"`
}

type elementJSON struct {
	Name      Name       `json:"name"`
	Attrs     []Attr     `json:"attributes,omitempty"`
	Namespace Namespace  `json:"namespace,omitempty"`
	Children  []nodeJSON `json:"children,omitempty"`
}

// MarshalJSON encodes the element tree. Child nodes are wrapped in an
// envelope with a "kind" discriminator so the union survives decoding.
func (e *Element) MarshalJSON() ([]byte, error) {
	out := elementJSON{
		Name:      e.Name,
		Attrs:     e.Attrs,
		Namespace: e.Namespace,
	}
	if len(e.Children) > 0 {
		out.Children = make([]nodeJSON, 0, len(e.Children))
		for _, child := range e.Children {
			env, err := envelopeNode(child)
			if err != nil {
				return nil, err
			}
			out.Children = append(out.Children, env)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an element tree produced by MarshalJSON.
func (e *Element) UnmarshalJSON(data []byte) error {
	var raw elementJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Name = raw.Name
	e.Attrs = raw.Attrs
	e.Namespace = raw.Namespace
	e.Children = nil
	for _, env := range raw.Children {
		node, err := env.node()
		if err != nil {
			return err
		}
		e.Children = append(e.Children, node)
	}
	return nil
}

func envelopeNode(n Node) (nodeJSON, error) {
	switch v := n.(type) {
	case *Element:
		return nodeJSON{Kind: kindElement, Element: v}, nil
	case Text:
		s := string(v)
		return nodeJSON{Kind: kindText, Text: &s}, nil
	case Comment:
		s := string(v)
		return nodeJSON{Kind: kindComment, Comment: &s}, nil
	case ProcInst:
		pi := v
		return nodeJSON{Kind: kindProcInst, ProcInst: &pi}, nil
	default:
		return nodeJSON{}, fmt.Errorf("dom: cannot encode node of type %T", n)
	}
}

func (env nodeJSON) node() (Node, error) {
	switch env.Kind {
	case kindElement:
		if env.Element == nil {
			return nil, fmt.Errorf("dom: %s node without element payload", env.Kind)
		}
		return env.Element, nil
	case kindText:
		if env.Text == nil {
			return nil, fmt.Errorf("dom: %s node without text payload", env.Kind)
		}
		return Text(*env.Text), nil
	case kindComment:
		if env.Comment == nil {
			return nil, fmt.Errorf("dom: %s node without comment payload", env.Kind)
		}
		return Comment(*env.Comment), nil
	case kindProcInst:
		if env.ProcInst == nil {
			return nil, fmt.Errorf("dom: %s node without pi payload", env.Kind)
		}
		return *env.ProcInst, nil
	default:
		return nil, fmt.Errorf("dom: unknown node kind %q", env.Kind)
	}
}
