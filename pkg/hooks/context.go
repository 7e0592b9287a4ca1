package hooks

// Context is the single mutable value passed through every handler
// registered at a Point (§4.8.2). Data is the handler-mutable payload
// (shape depends on Point); Metadata is read-only context a handler may
// inspect but must not rely on being observed by later handlers.
type Context struct {
	Point    Point
	Data     map[string]any
	Metadata map[string]any
	Abort    bool

	// AbortedBy records which handler set Abort, for diagnostics and for
	// the Storage-error "hook identifier" requirement on before_*_save
	// abort (§7).
	AbortedBy string
}

// NewContext builds an empty context for the given point.
func NewContext(point Point) *Context {
	return &Context{
		Point:    point,
		Data:     make(map[string]any),
		Metadata: make(map[string]any),
	}
}

// Clone returns a shallow copy of ctx, used by the runtime to restore
// pre-handler state after a recovered handler panic (P7: hook isolation
// must behave as though the failing handler were never registered).
func (c *Context) Clone() *Context {
	data := make(map[string]any, len(c.Data))
	for k, v := range c.Data {
		data[k] = v
	}
	meta := make(map[string]any, len(c.Metadata))
	for k, v := range c.Metadata {
		meta[k] = v
	}
	return &Context{Point: c.Point, Data: data, Metadata: meta, Abort: c.Abort, AbortedBy: c.AbortedBy}
}
