// Package client wraps the remote studio functions the authoring wizard calls.
// Every wrapper validates locally, tracks the state of its latest request and
// returns a tagged Outcome instead of an error.
package client

import "sync"

// Status tags how a wrapper call ended.
type Status string

const (
	StatusOK     Status = "ok"
	StatusEmpty  Status = "empty"
	StatusFailed Status = "failed"
)

// Kind classifies a failed call for the user-facing message.
type Kind string

const (
	KindNone            Kind = ""
	KindValidation      Kind = "validation"
	KindRemote          Kind = "remote"
	KindRateLimit       Kind = "rate_limit"
	KindPaymentRequired Kind = "payment_required"
)

// Outcome is what every wrapper call returns. Message is set for failures and
// for empty results.
type Outcome[T any] struct {
	Status  Status
	Data    T
	Message string
	Kind    Kind
}

func (o Outcome[T]) OK() bool { return o.Status == StatusOK }

func (o Outcome[T]) Failed() bool { return o.Status == StatusFailed }

func succeeded[T any](data T) Outcome[T] {
	return Outcome[T]{Status: StatusOK, Data: data}
}

func failed[T any](kind Kind, message string, data T) Outcome[T] {
	return Outcome[T]{Status: StatusFailed, Kind: kind, Message: message, Data: data}
}

// State is a snapshot of a wrapper's latest request. Error and Data never both
// carry a value for the same request.
type State[T any] struct {
	Data      T
	IsLoading bool
	Error     string
}

// tracker guards a State with a request sequence. Only the latest issued token
// may commit, so a slow earlier call can't overwrite a newer result.
type tracker[T any] struct {
	mu    sync.Mutex
	state State[T]
	seq   uint64
}

func (t *tracker[T]) snapshot() State[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// begin issues a token and marks the request in flight.
func (t *tracker[T]) begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.state.IsLoading = true
	t.state.Error = ""
	return t.seq
}

// succeed commits data for token. It reports false when token is stale.
func (t *tracker[T]) succeed(token uint64, data T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if token != t.seq {
		return false
	}
	t.state = State[T]{Data: data}
	return true
}

// fail commits message for token, clearing data.
func (t *tracker[T]) fail(token uint64, message string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if token != t.seq {
		return false
	}
	var zero T
	t.state = State[T]{Data: zero, Error: message}
	return true
}

// settle records a result that never went remote. Earlier in-flight calls
// become stale.
func (t *tracker[T]) settle(data T, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.state = State[T]{Data: data, Error: message}
}

func (t *tracker[T]) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.state = State[T]{}
}
