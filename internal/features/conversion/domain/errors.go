package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the coarse error taxonomy used to pick a transport response.
type ErrorKind string

const (
	KindValidation          ErrorKind = "VALIDATION_ERROR"
	KindUpstreamUnavailable ErrorKind = "UPSTREAM_UNAVAILABLE"
	KindMalformedUpstream   ErrorKind = "MALFORMED_UPSTREAM_RESPONSE"
	KindInternal            ErrorKind = "INTERNAL_ERROR"
)

// Reason narrows an ErrorKind for logs and metrics.
type Reason string

const (
	ReasonInvalidURL        Reason = "invalid_url"
	ReasonMissingInput      Reason = "missing_input"
	ReasonMissingCredential Reason = "missing_credential"
	ReasonTimeout           Reason = "timeout"
	ReasonConnection        Reason = "connection"
	ReasonHTTPStatus        Reason = "http_status"
	ReasonRemoteError       Reason = "remote_error"
	ReasonMalformed         Reason = "malformed"
	ReasonEmptyOutput       Reason = "empty_output"
	ReasonUnexpected        Reason = "unexpected"
)

// ConversionError is the error half of every conversion result.
type ConversionError struct {
	Kind    ErrorKind
	Reason  Reason
	Message string
	Err     error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Details returns the underlying cause as text, or an empty string.
func (e *ConversionError) Details() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func NewValidationError(reason Reason, message string) *ConversionError {
	return &ConversionError{Kind: KindValidation, Reason: reason, Message: message}
}

func NewUpstreamError(reason Reason, message string, err error) *ConversionError {
	return &ConversionError{Kind: KindUpstreamUnavailable, Reason: reason, Message: message, Err: err}
}

func NewMalformedError(message string, err error) *ConversionError {
	return &ConversionError{Kind: KindMalformedUpstream, Reason: ReasonMalformed, Message: message, Err: err}
}

func NewInternalError(reason Reason, message string, err error) *ConversionError {
	return &ConversionError{Kind: KindInternal, Reason: reason, Message: message, Err: err}
}

// AsConversionError unwraps err into a *ConversionError. Errors that are not
// already classified become INTERNAL_ERROR.
func AsConversionError(err error) *ConversionError {
	if err == nil {
		return nil
	}
	var convErr *ConversionError
	if errors.As(err, &convErr) {
		return convErr
	}
	return NewInternalError(ReasonUnexpected, "Internal server error during conversion", err)
}

// KindOf reports the ErrorKind of err.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	return AsConversionError(err).Kind
}

// ReasonOf reports the Reason of err.
func ReasonOf(err error) Reason {
	if err == nil {
		return ""
	}
	return AsConversionError(err).Reason
}
