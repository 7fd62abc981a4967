package offerwire

import (
	"errors"
	"fmt"
)

var (
	// ErrFeeTxIDNotSet is returned by Encode when the record is missing its
	// fee payment transaction id. Publishing without a confirmed fee payment
	// is a caller bug and must be caught before transmission.
	ErrFeeTxIDNotSet = errors.New(
		"offer fee payment tx id must be set before encoding for network storage",
	)
)

// DecodeError reports malformed, truncated or semantically invalid wire
// bytes. A DecodeError is a local, recoverable condition: a single bad record
// must never abort the processing of others.
type DecodeError struct {
	reason string
}

func (e *DecodeError) Error() string {
	return "offerwire: " + e.reason
}

func decodeErrorf(format string, args ...interface{}) *DecodeError {
	return &DecodeError{reason: fmt.Sprintf(format, args...)}
}

// IsDecodeError returns whether err is a DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
