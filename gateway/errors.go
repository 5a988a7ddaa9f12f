package gateway

import (
	"errors"
	"fmt"
)

// Kind classifies the failures produced by the refresh-and-retry policy.
type Kind int

const (
	// InvalidRefreshToken means the session can no longer be used: no refresh
	// token, or the API rejected the token again after a refresh. Callers sign out.
	InvalidRefreshToken Kind = iota + 1
	// UnexpectedError means the refresh call itself failed.
	UnexpectedError
)

func (k Kind) String() string {
	switch k {
	case InvalidRefreshToken:
		return "invalid refresh token"
	case UnexpectedError:
		return "unexpected error"
	default:
		return fmt.Sprintf("gateway kind %d", int(k))
	}
}

// Error is the tagged failure returned by Client.Do. Err is the transport error
// that triggered it and may be nil when there was nothing to carry.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return 0
}

// IsInvalidRefreshToken reports whether the caller should force a sign-out.
func IsInvalidRefreshToken(err error) bool {
	return KindOf(err) == InvalidRefreshToken
}

// IsUnexpected reports whether the refresh call itself failed.
func IsUnexpected(err error) bool {
	return KindOf(err) == UnexpectedError
}

func asStatusError(err error, target **StatusError) bool {
	return errors.As(err, target)
}
