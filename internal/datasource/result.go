package datasource

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by the typed accessors when the resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrUnavailable is returned by the typed accessors when neither the live
	// API nor the static snapshots could produce a response
	ErrUnavailable = errors.New("resource unavailable")
)

// Status is the outcome of a FetchResource call
type Status int

const (
	// StatusOK means Data holds the resource
	StatusOK Status = iota

	// StatusNotFound means the lookup succeeded but no such item exists,
	// e.g. a batch year nobody was appointed in
	StatusNotFound

	// StatusUnavailable means the resource could not be produced at all
	StatusUnavailable
)

// String returns the lowercase status name used in logs and metrics
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not_found"
	case StatusUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Origin tells where a result was produced
type Origin string

const (
	OriginAPI    Origin = "api"
	OriginStatic Origin = "static"

	// OriginNone is used when the request was rejected before reaching either source
	OriginNone Origin = "none"
)

// Result is the response to a FetchResource call
type Result struct {
	// Endpoint is the endpoint as requested
	Endpoint string
	Status   Status
	Origin   Origin

	// Data is the JSON body; set only when Status is StatusOK
	Data json.RawMessage

	// Err explains a StatusUnavailable result
	Err error
}

// OK reports whether the result carries data
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// AsError maps the result onto ErrNotFound or ErrUnavailable, or nil when OK
func (r Result) AsError() error {
	switch r.Status {
	case StatusOK:
		return nil
	case StatusNotFound:
		return fmt.Errorf("%s: %w", r.Endpoint, ErrNotFound)
	default:
		if r.Err != nil {
			return fmt.Errorf("%s: %w: %w", r.Endpoint, ErrUnavailable, r.Err)
		}
		return fmt.Errorf("%s: %w", r.Endpoint, ErrUnavailable)
	}
}

// Decode unmarshals Data into v. It returns AsError for results without data.
func (r Result) Decode(v any) error {
	if err := r.AsError(); err != nil {
		return err
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", r.Endpoint, err)
	}
	return nil
}
