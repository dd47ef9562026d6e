// Package web defines common components for a web application.
package web

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/errorspkg"
)

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken          string `json:"access_token,omitempty"`
	AccessTokenExpiresAt string `json:"access_token_expires_at,omitempty"`
	Data                 any    `json:"data,omitempty"`
	Error                string `json:"error,omitempty"`
}

// Error wraps a given err into json frinedly struct.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// GetErrorMsg returns the message suffix for the failed validation rule of fe.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "min":
		return " must be at least " + fe.Param()
	case "max":
		return " must be at most " + fe.Param()
	case "sortorder":
		return " must be a property name optionally followed by ,asc or ,desc"
	}

	return " is invalid"
}

// BindError converts a gin binding error into a response.
//
// Validation failures name the first offending field, anything else
// (malformed JSON, non-numeric path params) is reported as a malformed request.
func BindError(err error) Response {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return Response{Error: field.Field() + GetErrorMsg(field)}
	}

	return Error(errorspkg.ErrMalformedRequest)
}
