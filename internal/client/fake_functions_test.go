package client

import (
	"context"
	"encoding/json"
	"sync"
)

type invocation struct {
	name    string
	payload map[string]interface{}
}

// fakeFunctions answers by function name through a JSON round trip, like the
// HTTP transport would.
type fakeFunctions struct {
	mu       sync.Mutex
	calls    []invocation
	handlers map[string]func(payload map[string]interface{}) (interface{}, error)
}

func newFakeFunctions() *fakeFunctions {
	return &fakeFunctions{handlers: make(map[string]func(map[string]interface{}) (interface{}, error))}
}

func (f *fakeFunctions) on(name string, h func(payload map[string]interface{}) (interface{}, error)) {
	f.handlers[name] = h
}

func (f *fakeFunctions) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeFunctions) Invoke(ctx context.Context, name string, payload interface{}, out interface{}) error {
	raw, _ := json.Marshal(payload)
	var decoded map[string]interface{}
	_ = json.Unmarshal(raw, &decoded)

	f.mu.Lock()
	f.calls = append(f.calls, invocation{name: name, payload: decoded})
	h := f.handlers[name]
	f.mu.Unlock()

	if h == nil {
		return &RemoteError{Function: name, Message: "function not found"}
	}
	resp, err := h(decoded)
	if err != nil {
		return err
	}
	body, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return ErrMalformedResponse
	}
	return nil
}
