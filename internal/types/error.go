package types

import "errors"

var ErrNotFound = errors.New("not found")
var ErrNoRows = errors.New("no records found")

// ErrorKind classifies a failure during post dispatch so callers can branch
// on the class instead of matching error message text.
type ErrorKind int

const (
	// Transient covers network and provider errors scoped to a single post.
	Transient ErrorKind = iota
	// CredentialExpired means the account's tokens are unusable until the
	// user reconnects; every pending post of that account would fail the
	// same way.
	CredentialExpired
	// Validation covers rejected input.
	Validation
)

type DispatchError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *DispatchError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

func NewDispatchError(kind ErrorKind, message string, err error) *DispatchError {
	return &DispatchError{Kind: kind, Message: message, Err: err}
}

// KindOf returns the error's dispatch kind, defaulting to Transient for
// errors that carry no classification.
func KindOf(err error) ErrorKind {
	var de *DispatchError
	if errors.As(err, &de) {
		return de.Kind
	}
	return Transient
}
