package documents

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MountPath returns the full documents route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// Handler builds a standalone gin engine serving the component at the root.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a standalone gin engine from a pre-constructed
// Options value.
func HandlerWithOptions(opts Options) http.Handler {
	engine := gin.New()
	engine.Use(gin.Recovery())
	_, _ = RegisterRoutesWithOptions(engine, "", opts)
	return engine
}

// RegisterRoutes registers the document routes under basePath on router and
// returns the documents route pattern.
func RegisterRoutes(router gin.IRouter, basePath string, fns ...OptionFn) (string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(router, basePath, opts)
}

// RegisterRoutesWithOptions registers routes using a pre-built Options value.
// Callers are expected to pass an Options value produced by NewOptions (or
// equivalent) so defaults apply.
func RegisterRoutesWithOptions(router gin.IRouter, basePath string, opts Options) (string, error) {
	if router == nil {
		return "", fmt.Errorf("documents: missing router")
	}
	h := newHandler(opts)
	documentsPath := mountPath(basePath, h.opts.RoutePath)
	typesPath := mountPath(basePath, h.opts.TypesPath)

	router.GET(typesPath, h.logRequest, h.guard, h.listTypes)
	router.GET(typesPath+"/:type/schema", h.logRequest, h.guard, h.schema)
	router.POST(documentsPath+"/:type", h.logRequest, h.guard, h.generate)
	router.POST(documentsPath+"/:type/validate", h.logRequest, h.guard, h.validate)
	return documentsPath, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}
	routePath = strings.TrimRight(routePath, "/")
	if routePath == "" {
		routePath = "/"
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	if routePath == "/" {
		return basePath
	}
	return basePath + routePath
}
