package gpx

import "github.com/Kingdread/gpx/pkg/xmlstream"

type readOptions struct {
	maxDepth int
	maxAttrs int
}

// ReadOption configures parsing.
type ReadOption func(*readOptions)

func buildReadOptions(opts ...ReadOption) readOptions {
	var o readOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithMaxDepth limits element nesting depth, extension content included.
// Zero keeps the xmlstream default; a negative value disables the limit.
func WithMaxDepth(n int) ReadOption {
	return func(o *readOptions) { o.maxDepth = n }
}

// WithMaxAttrs limits the number of attributes on a single element.
// Zero keeps the xmlstream default; a negative value disables the limit.
func WithMaxAttrs(n int) ReadOption {
	return func(o *readOptions) { o.maxAttrs = n }
}

func (o readOptions) stream() []xmlstream.Option {
	var opts []xmlstream.Option
	if o.maxDepth != 0 {
		opts = append(opts, xmlstream.MaxDepth(o.maxDepth))
	}
	if o.maxAttrs != 0 {
		opts = append(opts, xmlstream.MaxAttrs(o.maxAttrs))
	}
	return opts
}
