package xmlstream

const (
	defaultMaxDepth = 256
	defaultMaxAttrs = 256
)

type options struct {
	maxDepth       int
	maxAttrs       int
	emitComments   bool
	emitProcInst   bool
	emitDirectives bool
}

// Option configures the xmlstream reader.
type Option func(*options)

func buildOptions(opts ...Option) options {
	o := options{
		maxDepth:     defaultMaxDepth,
		maxAttrs:     defaultMaxAttrs,
		emitComments: true,
		emitProcInst: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// MaxDepth limits element nesting depth. Zero keeps the default; a
// negative value disables the limit.
func MaxDepth(n int) Option {
	return func(o *options) {
		if n != 0 {
			o.maxDepth = n
		}
	}
}

// MaxAttrs limits the number of attributes on a single element. Zero keeps
// the default; a negative value disables the limit.
func MaxAttrs(n int) Option {
	return func(o *options) {
		if n != 0 {
			o.maxAttrs = n
		}
	}
}

// EmitComments controls whether comment events are produced.
func EmitComments(v bool) Option {
	return func(o *options) { o.emitComments = v }
}

// EmitProcInst controls whether processing-instruction events are produced.
func EmitProcInst(v bool) Option {
	return func(o *options) { o.emitProcInst = v }
}

// EmitDirectives controls whether directive events (DOCTYPE and friends)
// are produced.
func EmitDirectives(v bool) Option {
	return func(o *options) { o.emitDirectives = v }
}
