// Package errors defines the classified errors reported by GPX parsing.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a parse failure.
type ErrorCode string

const (
	// ErrXMLRead indicates the underlying XML reader reported an error.
	ErrXMLRead ErrorCode = "xml-read-error"
	// ErrNoRoot indicates the document has no gpx root element.
	ErrNoRoot ErrorCode = "gpx-no-root"
	// ErrTruncated indicates the input ended before the document closed.
	ErrTruncated ErrorCode = "gpx-truncated"
	// ErrUnsupportedVersion indicates a version other than 1.0 or 1.1.
	ErrUnsupportedVersion ErrorCode = "gpx-unsupported-version"
	// ErrMissingAttribute indicates a required attribute is absent.
	ErrMissingAttribute ErrorCode = "gpx-missing-attribute"
	// ErrInvalidValue indicates element or attribute content that does not
	// parse as its expected type.
	ErrInvalidValue ErrorCode = "gpx-invalid-value"
	// ErrCoordinateOutOfBounds indicates a latitude or longitude outside
	// its valid range.
	ErrCoordinateOutOfBounds ErrorCode = "gpx-coordinate-out-of-bounds"

	// ErrExtensionDuplicateRoot indicates the extension wrapper tag was
	// opened a second time before the first was closed.
	ErrExtensionDuplicateRoot ErrorCode = "extension-duplicate-root"
	// ErrExtensionMalformed indicates a closing tag that does not match
	// the most recently opened element inside an extension region.
	ErrExtensionMalformed ErrorCode = "extension-malformed"
	// ErrExtensionUnterminated indicates the stream ended before the
	// extension wrapper closed.
	ErrExtensionUnterminated ErrorCode = "extension-unterminated"
)

// Parse describes a classified parse error with optional element and
// position context.
//
//nolint:errname // public API name uses the parsing domain term.
type Parse struct {
	Code    ErrorCode
	Message string
	Element string
	Line    int
	Column  int
	Err     error
}

// NewParse creates a parse error with element context.
func NewParse(code ErrorCode, message, element string) *Parse {
	return &Parse{Code: code, Message: message, Element: element}
}

// Error returns a compact single-line description.
func (e *Parse) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	var ctx []string
	if e.Element != "" {
		ctx = append(ctx, "element "+e.Element)
	}
	if e.Line > 0 {
		ctx = append(ctx, fmt.Sprintf("line %d, column %d", e.Line, e.Column))
	}
	if len(ctx) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(ctx, ", "))
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause, if any.
func (e *Parse) Unwrap() error {
	return e.Err
}

// AsParse returns the first Parse error in err's chain.
func AsParse(err error) (*Parse, bool) {
	var p *Parse
	if errors.As(err, &p) {
		return p, true
	}
	return nil, false
}

// CodeOf returns the classification code carried by err, or the empty
// code when err has none.
func CodeOf(err error) ErrorCode {
	if p, ok := AsParse(err); ok {
		return p.Code
	}
	return ""
}
