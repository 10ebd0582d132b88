package docgen

import (
	"io/fs"

	"github.com/ieglobal/go-docgen/pkg/templates"
)

// EmbeddedDefinitions exposes the built-in agreement definitions so callers
// can copy and adapt them before loading them with templates.LoadFS.
func EmbeddedDefinitions() fs.FS {
	return templates.EmbeddedFS()
}
