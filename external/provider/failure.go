package provider

import (
	stderrors "errors"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

type Kind string

const (
	KindUnauthorized      Kind = "unauthorized"
	KindRateLimited       Kind = "rate_limited"
	KindTimeout           Kind = "timeout"
	KindServerError       Kind = "server_error"
	KindMalformedResponse Kind = "malformed_response"
	KindUnknown           Kind = "unknown"
)

var (
	// ErrProviderFailure is the root of every *Failure.
	ErrProviderFailure = stderrors.New("provider failure")

	// errTransient marks failures that count against the circuit breaker.
	errTransient = crerr.New("provider transient failure")
)

// Failure is the only error type returned by Client.
type Failure struct {
	Kind     Kind
	Provider string
	Endpoint string
	Status   int
	Attempts int
	Detail   string
}

func (f *Failure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", f.Provider, f.Kind)
	if f.Status > 0 {
		fmt.Fprintf(&b, " status=%d", f.Status)
	}
	if f.Endpoint != "" {
		fmt.Fprintf(&b, " endpoint=%s", f.Endpoint)
	}
	if f.Attempts > 1 {
		fmt.Fprintf(&b, " attempts=%d", f.Attempts)
	}
	if f.Detail != "" {
		b.WriteString(": " + f.Detail)
	}
	return b.String()
}

func (f *Failure) Unwrap() error {
	return ErrProviderFailure
}

// Is matches another *Failure by kind, so errors.Is(err, &Failure{Kind: KindTimeout}) works.
func (f *Failure) Is(target error) bool {
	other, ok := target.(*Failure)
	if !ok {
		return false
	}
	return other.Kind == "" || other.Kind == f.Kind
}

func (f *Failure) Transient() bool {
	switch f.Kind {
	case KindRateLimited, KindTimeout, KindServerError, KindUnknown:
		return true
	default:
		return false
	}
}

// AsFailure extracts the *Failure carried by err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if stderrors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// KindOf returns the failure kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	if f, ok := AsFailure(err); ok {
		return f.Kind
	}
	return KindUnknown
}

// IsTransient reports whether err was marked as a transient provider failure.
func IsTransient(err error) bool {
	return err != nil && crerr.Is(err, errTransient)
}

func mark(f *Failure) error {
	if f.Transient() {
		return crerr.Mark(f, errTransient)
	}
	return f
}
