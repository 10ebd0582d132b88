package documents

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Component bundles the document routes with their configuration.
type Component struct {
	opts Options
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return NewOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns a standalone handler serving the component at the root.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

// RegisterRoutes registers the component routes under basePath on router.
func (c *Component) RegisterRoutes(router gin.IRouter, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(router, basePath)
	}
	return RegisterRoutesWithOptions(router, basePath, c.opts)
}
