package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/internship-faqbot/pkg/errors"
)

// HTTPError is the transport form of a failed request.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError builds an HTTPError.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func badRequest(err error) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err)
}

// faqError maps FAQ service failures onto response codes.
func faqError(err error) *HTTPError {
	switch apperrors.CodeOf(err) {
	case "invalid_input":
		return badRequest(err)
	case "no_match":
		return NewHTTPError(http.StatusNotFound, "no_match", errMessage(err), err)
	default:
		return NewHTTPError(http.StatusInternalServerError, "faq_failed", errMessage(err), err)
	}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	if apperrors.CodeOf(err) != "" {
		return faqError(err)
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
