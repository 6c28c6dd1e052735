package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures of the request pipeline.
type ErrorKind uint8

const (
	KindInvalidURL ErrorKind = iota + 1
	KindInvalidResponse
	KindHTTP
	KindServer
	KindNetwork
	KindEncoding
	KindDecoding
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid_url"
	case KindInvalidResponse:
		return "invalid_response"
	case KindHTTP:
		return "http_error"
	case KindServer:
		return "server_error"
	case KindNetwork:
		return "network_error"
	case KindEncoding:
		return "encoding_error"
	case KindDecoding:
		return "decoding_error"
	default:
		return "unknown"
	}
}

// APIError is returned by every failed pipeline call.
//
// StatusCode is set for KindHTTP and KindServer. Message carries the server's
// own text for KindServer and the transport description for KindNetwork.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindInvalidURL:
		return "invalid URL"
	case KindInvalidResponse:
		return "invalid server response"
	case KindHTTP:
		return fmt.Sprintf("HTTP error: %d", e.StatusCode)
	case KindServer:
		return e.Message
	case KindNetwork:
		return "network error: " + e.Message
	case KindEncoding:
		return "failed to encode request body"
	case KindDecoding:
		return "failed to decode response body"
	default:
		return "unknown API error"
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// Is matches any other *APIError of the same kind, so the sentinels below work
// with errors.Is regardless of status code or message.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidURL      = &APIError{Kind: KindInvalidURL}
	ErrInvalidResponse = &APIError{Kind: KindInvalidResponse}
	ErrHTTP            = &APIError{Kind: KindHTTP}
	ErrServer          = &APIError{Kind: KindServer}
	ErrNetwork         = &APIError{Kind: KindNetwork}
	ErrEncoding        = &APIError{Kind: KindEncoding}
	ErrDecoding        = &APIError{Kind: KindDecoding}
)

func NewHTTPError(status int) *APIError {
	return &APIError{Kind: KindHTTP, StatusCode: status}
}

func NewServerError(status int, message string) *APIError {
	return &APIError{Kind: KindServer, StatusCode: status, Message: message}
}

func NewNetworkError(err error) *APIError {
	return &APIError{Kind: KindNetwork, Message: err.Error(), Err: err}
}

// AsAPIError extracts the *APIError from err's chain, or returns nil.
func AsAPIError(err error) *APIError {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// Token store failures.
var (
	ErrDataConversion = errors.New("token data conversion failed")
	ErrTokenSave      = errors.New("token store rejected the write")
)

// Client-side gates applied before a request is sent.
var (
	ErrIdentityChannel = errors.New("exactly one of email or phone with country code is required")
	ErrCodeIncomplete  = errors.New("verification code must be 4 digits")
	ErrCooldownActive  = errors.New("code was sent recently, wait before requesting another")
	ErrPageNotLoaded   = errors.New("page is not open")
)
