package devkit

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Jatinprajapati7869/gitpulse/core"
)

// TransportScript is one canned exchange for the fake adapter. Scripts are
// consumed in order; the last one repeats once exhausted.
type TransportScript struct {
	Response core.TransportResponse
	Err      error
}

// JSONScript scripts a JSON response body with the given status, the common
// case for GraphQL exchanges.
func JSONScript(status int, body string) TransportScript {
	return TransportScript{
		Response: core.TransportResponse{
			StatusCode: status,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       []byte(body),
		},
	}
}

// ErrorScript scripts a transport-level failure.
func ErrorScript(err error) TransportScript {
	return TransportScript{Err: err}
}

// FakeTransportAdapter records every request and replays scripted responses,
// letting tests exercise the fetch flow without a network. With no scripts it
// answers every request with an empty 200.
type FakeTransportAdapter struct {
	mu       sync.Mutex
	kind     string
	scripts  []TransportScript
	requests []core.TransportRequest
}

func NewFakeTransportAdapter(kind string, scripts ...TransportScript) *FakeTransportAdapter {
	return &FakeTransportAdapter{
		kind:    strings.TrimSpace(strings.ToLower(kind)),
		scripts: append([]TransportScript(nil), scripts...),
	}
}

func (a *FakeTransportAdapter) Kind() string {
	if a == nil {
		return ""
	}
	return a.kind
}

func (a *FakeTransportAdapter) Do(_ context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	if a == nil {
		return core.TransportResponse{}, fmt.Errorf("devkit: fake transport adapter is nil")
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	a.requests = append(a.requests, cloneTransportRequest(req))
	script, ok := a.scriptForCall(len(a.requests) - 1)
	if !ok {
		return core.TransportResponse{
			StatusCode: 200,
			Headers:    map[string]string{},
			Metadata:   map[string]any{"kind": a.kind},
		}, nil
	}
	return cloneTransportResponse(script.Response), script.Err
}

// scriptForCall picks the script for the nth call; the last script repeats
// once the list is exhausted.
func (a *FakeTransportAdapter) scriptForCall(index int) (TransportScript, bool) {
	if len(a.scripts) == 0 {
		return TransportScript{}, false
	}
	if index >= len(a.scripts) {
		index = len(a.scripts) - 1
	}
	return a.scripts[index], true
}

// Requests returns a copy of every request seen so far.
func (a *FakeTransportAdapter) Requests() []core.TransportRequest {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]core.TransportRequest, 0, len(a.requests))
	for _, item := range a.requests {
		out = append(out, cloneTransportRequest(item))
	}
	return out
}

// LastRequest returns the most recent request, if any.
func (a *FakeTransportAdapter) LastRequest() (core.TransportRequest, bool) {
	if a == nil {
		return core.TransportRequest{}, false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.requests) == 0 {
		return core.TransportRequest{}, false
	}
	return cloneTransportRequest(a.requests[len(a.requests)-1]), true
}

func cloneTransportRequest(in core.TransportRequest) core.TransportRequest {
	out := core.TransportRequest{
		Method:               in.Method,
		URL:                  in.URL,
		Headers:              map[string]string{},
		Body:                 append([]byte(nil), in.Body...),
		Metadata:             map[string]any{},
		Timeout:              in.Timeout,
		MaxResponseBodyBytes: in.MaxResponseBodyBytes,
	}
	for key, value := range in.Headers {
		out.Headers[key] = value
	}
	for key, value := range in.Metadata {
		out.Metadata[key] = value
	}
	return out
}

func cloneTransportResponse(in core.TransportResponse) core.TransportResponse {
	out := core.TransportResponse{
		StatusCode: in.StatusCode,
		Headers:    map[string]string{},
		Body:       append([]byte(nil), in.Body...),
		Metadata:   map[string]any{},
	}
	for key, value := range in.Headers {
		out.Headers[key] = value
	}
	for key, value := range in.Metadata {
		out.Metadata[key] = value
	}
	return out
}

var _ core.TransportAdapter = (*FakeTransportAdapter)(nil)
