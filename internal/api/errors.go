package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// FieldError is a single backend validation failure.
type FieldError struct {
	ObjectName string
	Field      string
	Message    string
}

// Error is a non-2xx answer from the backend. Problem details are read from
// the RFC 7807 body when the backend sends one.
type Error struct {
	Method      string
	Path        string
	StatusCode  int
	Title       string
	Detail      string
	Message     string
	FieldErrors []FieldError
	Body        string
}

func (e *Error) Error() string {
	reason := e.Title
	if e.Detail != "" {
		reason = e.Detail
	}
	if reason == "" {
		reason = http.StatusText(e.StatusCode)
	}
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, reason)
	if e.Message != "" {
		msg += " (" + e.Message + ")"
	}
	return msg
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsBadRequest reports whether err is a 400 from the backend, which is how
// it rejects invalid payloads.
func IsBadRequest(err error) bool {
	return hasStatus(err, http.StatusBadRequest)
}

func hasStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

func newError(method, path string, status int, body []byte) *Error {
	e := &Error{
		Method:     method,
		Path:       path,
		StatusCode: status,
		Body:       string(body),
	}
	if !gjson.ValidBytes(body) {
		return e
	}

	problem := gjson.ParseBytes(body)
	e.Title = problem.Get("title").String()
	e.Detail = problem.Get("detail").String()
	e.Message = problem.Get("message").String()
	problem.Get("fieldErrors").ForEach(func(_, fe gjson.Result) bool {
		e.FieldErrors = append(e.FieldErrors, FieldError{
			ObjectName: fe.Get("objectName").String(),
			Field:      fe.Get("field").String(),
			Message:    fe.Get("message").String(),
		})
		return true
	})
	return e
}
