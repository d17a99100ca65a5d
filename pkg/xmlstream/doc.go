// Package xmlstream provides a namespace-aware streaming XML event layer.
// The reader resolves prefixes against the active namespace scope while
// keeping the lexical prefix on every name, and it does not enforce tag
// balance, so consumers can classify mismatched closing tags themselves.
// The writer mirrors events back to bytes, re-declaring only the namespace
// bindings that differ from the enclosing scope.
package xmlstream
