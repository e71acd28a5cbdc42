package ana

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the service answers HTTP 404.
	ErrNotFound = errors.New("ana: resource not found")
	// ErrNoDataAvailable is matched by ServiceError, the in-band ErrorTable signal.
	ErrNoDataAvailable = errors.New("ana: no data available")
	// ErrMissingParameter is matched by ParameterError.
	ErrMissingParameter = errors.New("ana: missing mandatory parameter")
	// ErrInvalidParameter reports a filter token outside the service vocabulary.
	ErrInvalidParameter = errors.New("ana: invalid parameter")
	// ErrMissingField is matched by FieldError.
	ErrMissingField = errors.New("ana: missing field")
	// ErrMissingIndex reports a row without the table's index column.
	ErrMissingIndex = errors.New("ana: row missing index column")
	// ErrInvalidDate reports a date column whose text is not a known layout.
	ErrInvalidDate = errors.New("ana: invalid date")
	// ErrMalformedResponse reports a body that is not parseable XML.
	ErrMalformedResponse = errors.New("ana: malformed response")
	// ErrTransport wraps network failures from the HTTP client.
	ErrTransport = errors.New("ana: transport failure")
)

// ServiceError carries the message of an ErrorTable/Error element.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("ana: no data available: %s", e.Message)
}

func (e *ServiceError) Unwrap() error { return ErrNoDataAvailable }

// ParameterError names a mandatory parameter that was left empty.
type ParameterError struct {
	Name string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("ana: mandatory parameter %q is empty", e.Name)
}

func (e *ParameterError) Unwrap() error { return ErrMissingParameter }

// FieldError names a child element absent from a matched row element.
type FieldError struct {
	Element string
	Field   string
	Row     int
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("ana: %s[%d] has no %q child", e.Element, e.Row, e.Field)
}

func (e *FieldError) Unwrap() error { return ErrMissingField }

// StatusError is returned for HTTP failures other than 404.
type StatusError struct {
	StatusCode int
	Snippet    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ana: service returned status %d body: %s", e.StatusCode, e.Snippet)
}
