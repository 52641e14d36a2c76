package scorer

import "fmt"

// Kind tags which branch of a remote call an Outcome took
type Kind uint8

const (
	// KindSuccess means a 2xx response whose body decoded
	KindSuccess Kind = iota + 1
	// KindRejected means the scorer answered with a non-2xx status
	KindRejected
	// KindTransportError covers network failures, timeouts, open circuits and undecodable bodies
	KindTransportError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindRejected:
		return "rejected"
	case KindTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of one remote call; callers switch on Kind and never receive a Go error
type Outcome[T any] struct {
	Kind    Kind
	Payload T
	Status  int
	Err     error
}

// Success wraps a decoded payload
func Success[T any](status int, p T) Outcome[T] {
	return Outcome[T]{Kind: KindSuccess, Status: status, Payload: p}
}

// Rejected records a non-2xx status
func Rejected[T any](status int) Outcome[T] {
	return Outcome[T]{Kind: KindRejected, Status: status, Err: fmt.Errorf("scorer rejected with status %d", status)}
}

// TransportError records why no usable response arrived
func TransportError[T any](err error) Outcome[T] {
	return Outcome[T]{Kind: KindTransportError, Err: err}
}

// OK reports a success outcome
func (o Outcome[T]) OK() bool { return o.Kind == KindSuccess }

// String is used in logs
func (o Outcome[T]) String() string {
	switch o.Kind {
	case KindSuccess:
		return fmt.Sprintf("success(%d)", o.Status)
	case KindRejected:
		return fmt.Sprintf("rejected(%d)", o.Status)
	case KindTransportError:
		return fmt.Sprintf("transport_error(%v)", o.Err)
	default:
		return "unknown"
	}
}
