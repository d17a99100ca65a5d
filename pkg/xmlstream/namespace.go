package xmlstream

import (
	"encoding/xml"
	"errors"
	"fmt"
)

// Common XML namespaces.
const (
	XMLNamespace   = "http://www.w3.org/XML/1998/namespace"
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"
)

var errUnboundPrefix = errors.New("unbound namespace prefix")

type nsScope struct {
	prefixes   map[string]string
	defaultNS  string
	defaultSet bool
}

type nsStack struct {
	scopes []nsScope
}

func (s *nsStack) push(scope nsScope) {
	s.scopes = append(s.scopes, scope)
}

func (s *nsStack) pop() {
	if len(s.scopes) == 0 {
		return
	}
	s.scopes = s.scopes[:len(s.scopes)-1]
}

func (s *nsStack) lookup(prefix string) (string, bool) {
	if prefix == "xml" {
		return XMLNamespace, true
	}
	if prefix == "" {
		for i := len(s.scopes) - 1; i >= 0; i-- {
			if s.scopes[i].defaultSet {
				return s.scopes[i].defaultNS, true
			}
		}
		return "", true
	}
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if uri, ok := s.scopes[i].prefixes[prefix]; ok {
			return uri, true
		}
	}
	return "", false
}

// inScope returns the full active prefix mapping, innermost bindings
// winning. The empty prefix is present only when a default namespace has
// been declared.
func (s *nsStack) inScope() Namespace {
	ns := make(Namespace)
	for _, scope := range s.scopes {
		for prefix, uri := range scope.prefixes {
			ns[prefix] = uri
		}
		if scope.defaultSet {
			ns[""] = scope.defaultNS
		}
	}
	if len(ns) == 0 {
		return nil
	}
	return ns
}

// collectScope extracts the namespace declarations of a raw start tag.
// Raw attribute names carry the lexical prefix in Name.Space.
func collectScope(attrs []xml.Attr) nsScope {
	scope := nsScope{}
	for _, attr := range attrs {
		switch {
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			scope.defaultNS = attr.Value
			scope.defaultSet = true
		case attr.Name.Space == "xmlns":
			if attr.Name.Local == "xml" || attr.Name.Local == "xmlns" {
				continue
			}
			if scope.prefixes == nil {
				scope.prefixes = make(map[string]string, 1)
			}
			scope.prefixes[attr.Name.Local] = attr.Value
		}
	}
	return scope
}

func isNamespaceDecl(name xml.Name) bool {
	return name.Space == "xmlns" || (name.Space == "" && name.Local == "xmlns")
}

func (s *nsStack) resolveElementName(raw xml.Name) (Name, error) {
	uri, ok := s.lookup(raw.Space)
	if !ok {
		return Name{}, fmt.Errorf("element %s:%s: %w", raw.Space, raw.Local, errUnboundPrefix)
	}
	return Name{Local: raw.Local, Space: uri, Prefix: raw.Space}, nil
}

// resolveAttrName resolves an attribute name. Unprefixed attributes have
// no namespace; the default namespace does not apply to attributes.
func (s *nsStack) resolveAttrName(raw xml.Name) (Name, error) {
	if raw.Space == "" {
		return Name{Local: raw.Local}, nil
	}
	if raw.Space == "xml" {
		return Name{Local: raw.Local, Space: XMLNamespace, Prefix: "xml"}, nil
	}
	uri, ok := s.lookup(raw.Space)
	if !ok {
		return Name{}, fmt.Errorf("attribute %s:%s: %w", raw.Space, raw.Local, errUnboundPrefix)
	}
	return Name{Local: raw.Local, Space: uri, Prefix: raw.Space}, nil
}
