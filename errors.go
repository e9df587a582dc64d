// go-qrcode
// Copyright 2014 Tom Harwood

package qrcode

import "fmt"

// EncodingErrorReason classifies an EncodingError.
type EncodingErrorReason int

const (
	// TextTooLong means no version in the requested range holds the text at
	// the requested recovery level.
	TextTooLong EncodingErrorReason = iota + 1

	// InvalidVersionRange means the version bounds are outside 1-40 or
	// inverted.
	InvalidVersionRange

	// UnsupportedCharacterSet means the text cannot be represented by any
	// supported data mode.
	UnsupportedCharacterSet
)

func (r EncodingErrorReason) String() string {
	switch r {
	case TextTooLong:
		return "text too long"
	case InvalidVersionRange:
		return "invalid version range"
	case UnsupportedCharacterSet:
		return "unsupported character set"
	}

	return fmt.Sprintf("EncodingErrorReason(%d)", int(r))
}

// EncodingError is returned by Encode when a request cannot be turned into a
// symbol. The caller can recover by changing the request.
type EncodingError struct {
	Reason EncodingErrorReason
	Detail string

	// Err is the underlying cause, if any.
	Err error
}

// Sentinels for errors.Is.
var (
	ErrTextTooLong             = &EncodingError{Reason: TextTooLong}
	ErrInvalidVersionRange     = &EncodingError{Reason: InvalidVersionRange}
	ErrUnsupportedCharacterSet = &EncodingError{Reason: UnsupportedCharacterSet}
)

func (e *EncodingError) Error() string {
	if e.Detail == "" {
		return "qrcode: " + e.Reason.String()
	}

	return fmt.Sprintf("qrcode: %s: %s", e.Reason, e.Detail)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an EncodingError with the same reason.
func (e *EncodingError) Is(target error) bool {
	t, ok := target.(*EncodingError)
	return ok && t.Reason == e.Reason
}

// ConfigurationError reports an invalid request or style field. Invalid
// configuration is rejected and never corrected silently.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
