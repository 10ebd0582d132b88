package documents

import (
	"net/http"

	"github.com/ieglobal/go-docgen/internal/logger"
	"github.com/ieglobal/go-docgen/pkg/orchestrator"
)

const (
	defaultRoutePath     = "/documents"
	defaultTypesPath     = "/document-types"
	defaultRendererParam = "renderer"
	defaultMaxBodyBytes  = 64 << 10
)

// GuardFunc authorises a request before it reaches a handler. Returning an
// HTTPError selects the response status; any other error maps to 403.
type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath     string
	TypesPath     string
	RendererParam string
	MaxBodyBytes  int64
	Guard         GuardFunc

	Generator *orchestrator.Generator
	Logger    *logger.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:     defaultRoutePath,
		TypesPath:     defaultTypesPath,
		RendererParam: defaultRendererParam,
		MaxBodyBytes:  defaultMaxBodyBytes,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.TypesPath == "" {
		opts.TypesPath = defaultTypesPath
	}
	if opts.RendererParam == "" {
		opts.RendererParam = defaultRendererParam
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.Generator == nil {
		opts.Generator = orchestrator.New()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithTypesPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.TypesPath = path
	}
}

func WithRendererParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RendererParam = name
	}
}

// WithMaxBodyBytes caps the size of request bodies. Larger bodies get 413.
func WithMaxBodyBytes(n int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = n
	}
}

func WithGuard(fn GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = fn
	}
}

func WithGenerator(gen *orchestrator.Generator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Generator = gen
	}
}

func WithLogger(l *logger.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = l
	}
}
