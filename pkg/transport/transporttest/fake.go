// Package transporttest provides an in-memory transport.Client for tests of
// code built on the transport package.
package transporttest

import (
	"context"
	"net/http"
	"sync"

	"github.com/JaimeStill/agent-lab-client/pkg/transport"
)

// Call records one request received by a Fake.
type Call struct {
	Method string
	Path   string
	Body   []byte
}

type response struct {
	body []byte
	err  error
}

// Fake answers requests from canned responses keyed by method and path.
// Unregistered requests fail with a 404 *transport.Error.
type Fake struct {
	mu        sync.Mutex
	responses map[string]response
	calls     []Call
	hook      func(Call)
}

var _ transport.Client = (*Fake)(nil)

func New() *Fake {
	return &Fake{responses: make(map[string]response)}
}

// On registers body as the response to method path.
func (f *Fake) On(method, path, body string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method+" "+path] = response{body: []byte(body)}
	return f
}

// Fail registers an HTTP failure for method path. A zero status simulates a
// network failure.
func (f *Fake) Fail(method, path string, status int, message string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method+" "+path] = response{
		err: &transport.Error{Method: method, Path: path, Status: status, Message: message},
	}
	return f
}

// Hook installs fn to run at the start of every request, outside the lock.
func (f *Fake) Hook(fn func(Call)) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hook = fn
	return f
}

// Calls returns every request received so far.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Count returns how many times method path was requested.
func (f *Fake) Count(method, path string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// Last returns the most recent request to method path.
func (f *Fake) Last(method, path string) (Call, bool) {
	calls := f.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method == method && calls[i].Path == path {
			return calls[i], true
		}
	}
	return Call{}, false
}

func (f *Fake) Get(ctx context.Context, path string) ([]byte, error) {
	return f.do(ctx, http.MethodGet, path, nil)
}

func (f *Fake) Post(ctx context.Context, path string, body []byte) ([]byte, error) {
	return f.do(ctx, http.MethodPost, path, body)
}

func (f *Fake) Put(ctx context.Context, path string, body []byte) ([]byte, error) {
	return f.do(ctx, http.MethodPut, path, body)
}

func (f *Fake) Delete(ctx context.Context, path string) error {
	_, err := f.do(ctx, http.MethodDelete, path, nil)
	return err
}

func (f *Fake) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	call := Call{Method: method, Path: path, Body: append([]byte(nil), body...)}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	hook := f.hook
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	if err := ctx.Err(); err != nil {
		return nil, &transport.Error{Method: method, Path: path, Message: err.Error()}
	}

	f.mu.Lock()
	resp, ok := f.responses[method+" "+path]
	f.mu.Unlock()

	if !ok {
		return nil, &transport.Error{Method: method, Path: path, Status: http.StatusNotFound, Message: "not found"}
	}
	if resp.err != nil {
		return nil, resp.err
	}
	return append([]byte(nil), resp.body...), nil
}
