package documents

import (
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ieglobal/go-docgen/pkg/agreement"
	"github.com/ieglobal/go-docgen/pkg/document"
	"github.com/ieglobal/go-docgen/pkg/orchestrator"
	"github.com/ieglobal/go-docgen/pkg/validation"
)

// Response headers describing a generated document.
const (
	HeaderDocumentID        = "X-Document-Id"
	HeaderDocumentReference = "X-Document-Reference"
	HeaderDocumentPages     = "X-Document-Pages"
)

// TypeInfo describes one supported document type.
type TypeInfo struct {
	Type       document.Type   `json:"type"`
	Label      string          `json:"label"`
	Family     document.Family `json:"family"`
	Title      string          `json:"title"`
	Signatures bool            `json:"signatures"`
	Party      string          `json:"party,omitempty"`
	Tokens     []string        `json:"tokens"`
}

type typesResponse struct {
	Data []TypeInfo `json:"data"`
}

type handler struct {
	opts Options
}

func newHandler(opts Options) *handler {
	return &handler{opts: NewOptions(func(o *Options) { *o = opts })}
}

func (h *handler) logRequest(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.opts.Logger.Info("http request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"duration", time.Since(start).String(),
	)
}

func (h *handler) guard(c *gin.Context) {
	if h.opts.Guard == nil {
		c.Next()
		return
	}
	if err := h.opts.Guard(c.Request); err != nil {
		writeGuardError(c, err)
		return
	}
	c.Next()
}

func (h *handler) listTypes(c *gin.Context) {
	registry := h.opts.Generator.Templates()
	out := make([]TypeInfo, 0, len(registry.Types()))
	for _, t := range registry.Types() {
		def, err := registry.Lookup(t)
		if err != nil {
			h.fail(c, err)
			return
		}
		out = append(out, TypeInfo{
			Type:       t,
			Label:      t.Label(),
			Family:     t.Family(),
			Title:      def.Title,
			Signatures: def.Signatures.Required,
			Party:      string(def.Signatures.Party),
			Tokens:     def.Tokens(),
		})
	}
	c.JSON(http.StatusOK, typesResponse{Data: out})
}

func (h *handler) schema(c *gin.Context) {
	t, ok := h.documentType(c)
	if !ok {
		return
	}
	data, err := validation.SchemaJSON(t)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/schema+json", data)
}

func (h *handler) validate(c *gin.Context) {
	t, ok := h.documentType(c)
	if !ok {
		return
	}
	body, ok := h.body(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, validation.ValidateJSON(t, body))
}

func (h *handler) generate(c *gin.Context) {
	t, ok := h.documentType(c)
	if !ok {
		return
	}
	body, ok := h.body(c)
	if !ok {
		return
	}
	record, err := agreement.DecodeJSON(t, body)
	if err != nil {
		h.fail(c, StatusError{Code: http.StatusBadRequest, Err: err})
		return
	}

	result, err := h.opts.Generator.Generate(c.Request.Context(), orchestrator.Request{
		Type:     t,
		Record:   record,
		Renderer: c.Query(h.opts.RendererParam),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.opts.Logger.Info("document generated",
		"type", t,
		"document_id", result.DocumentID,
		"pages", result.Pages,
		"bytes", len(result.Data),
	)

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.Filename}))
	c.Header(HeaderDocumentID, result.DocumentID)
	c.Header(HeaderDocumentReference, result.Reference())
	c.Header(HeaderDocumentPages, strconv.Itoa(result.Pages))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

func (h *handler) documentType(c *gin.Context) (document.Type, bool) {
	t, err := document.ParseType(c.Param("type"))
	if err != nil {
		h.fail(c, err)
		return "", false
	}
	return t, true
}

func (h *handler) body(c *gin.Context) ([]byte, bool) {
	if c.Request.Body == nil {
		return nil, true
	}
	reader := http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxBodyBytes)
	data, err := io.ReadAll(reader)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return data, true
}

func (h *handler) fail(c *gin.Context, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.opts.Logger.Error("request failed", "path", c.FullPath(), "error", err)
	} else {
		h.opts.Logger.Debug("request rejected", "path", c.FullPath(), "status", status, "error", err)
	}
	respondError(c, status, code, err)
}
