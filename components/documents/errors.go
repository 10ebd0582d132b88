package documents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ieglobal/go-docgen/pkg/document"
	"github.com/ieglobal/go-docgen/pkg/render"
	"github.com/ieglobal/go-docgen/pkg/substitute"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

// statusFor maps pipeline errors onto response codes.
func statusFor(err error) (int, string) {
	var httpErr HTTPError
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "body_too_large"
	case errors.As(err, &httpErr):
		return httpErr.StatusCode(), "request_failed"
	case errors.Is(err, document.ErrUnsupportedType):
		return http.StatusNotFound, "unsupported_type"
	case errors.Is(err, render.ErrRendererNotFound):
		return http.StatusBadRequest, "unknown_renderer"
	case errors.Is(err, substitute.ErrRecordMismatch):
		return http.StatusUnprocessableEntity, "record_mismatch"
	case errors.Is(err, render.ErrUnsupportedText):
		return http.StatusUnprocessableEntity, "unsupported_text"
	default:
		return http.StatusInternalServerError, "generation_failed"
	}
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil && status < http.StatusInternalServerError {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, errorEnvelope{Error: apiError{Message: msg, Code: code}})
}

func writeGuardError(c *gin.Context, err error) {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	c.AbortWithStatusJSON(code, errorEnvelope{Error: apiError{Message: http.StatusText(code), Code: "forbidden"}})
}
