package gateway

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a FetchError.
type ErrorKind int

// Error kinds.
const (
	KindUnknown ErrorKind = iota
	KindNetwork
	KindHTTPStatus
	KindDecode
	KindUnauthenticated
	KindEmptyResult
	KindMissingDependency
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http_status"
	case KindDecode:
		return "decode"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindEmptyResult:
		return "empty_result"
	case KindMissingDependency:
		return "missing_dependency"
	default:
		return "unknown"
	}
}

// Sentinel errors matched by FetchError.Is.
var (
	ErrNetwork           = errors.New("network error")
	ErrHTTPStatus        = errors.New("unexpected http status")
	ErrDecode            = errors.New("decode error")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrEmptyResult       = errors.New("empty result")
	ErrMissingDependency = errors.New("missing dependency")
)

// FetchError is the typed failure of every provider fetch.
type FetchError struct {
	Provider   string
	Kind       ErrorKind
	StatusCode int // set for KindHTTPStatus and KindUnauthenticated
	Err        error
}

// NewError builds a FetchError.
func NewError(provider string, kind ErrorKind, err error) *FetchError {
	return &FetchError{Provider: provider, Kind: kind, Err: err}
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrHTTPStatus:
		return e.Kind == KindHTTPStatus
	case ErrDecode:
		return e.Kind == KindDecode
	case ErrUnauthenticated:
		return e.Kind == KindUnauthenticated
	case ErrEmptyResult:
		return e.Kind == KindEmptyResult
	case ErrMissingDependency:
		return e.Kind == KindMissingDependency
	}
	return false
}

// KindOf returns the kind of err, or KindUnknown if err is not a FetchError.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}
