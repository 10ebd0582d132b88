package render

import "errors"

// ErrRendererNotFound is returned (wrapped) when no renderer is registered
// under the requested name.
var ErrRendererNotFound = errors.New("renderer not found")

// ErrUnsupportedText is returned (wrapped) when a renderer cannot represent
// some characters of the document, e.g. CJK text in a core-font PDF.
var ErrUnsupportedText = errors.New("text not supported by renderer")
