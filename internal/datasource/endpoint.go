package datasource

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ErrUnknownEndpoint is returned for endpoints outside the fixed portal set
var ErrUnknownEndpoint = errors.New("unknown endpoint")

// Kind identifies a logical portal endpoint
type Kind int

const (
	KindStats Kind = iota
	KindEntrants
	KindEntrant
	KindBatches
	KindBatch
	KindMinistries
	KindPositions
	KindSearch
	KindTimeline

	// kindCount must stay last
	kindCount
)

var kindNames = [kindCount]string{
	KindStats:      "stats",
	KindEntrants:   "entrants",
	KindEntrant:    "entrants/{id}",
	KindBatches:    "batches",
	KindBatch:      "batches/{year}",
	KindMinistries: "ministries",
	KindPositions:  "positions",
	KindSearch:     "search",
	KindTimeline:   "timeline",
}

// String returns the endpoint template, e.g. "batches/{year}"
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Endpoint is a parsed logical endpoint
type Endpoint struct {
	Kind Kind

	// ID is set for KindEntrant
	ID int64

	// Year is set for KindBatch
	Year int

	// Query holds parameters embedded in the endpoint string ("search?q=x")
	Query url.Values
}

// ParseEndpoint parses an endpoint such as "stats", "/entrants/12" or
// "search?q=finance". A leading slash is optional.
func ParseEndpoint(raw string) (Endpoint, error) {
	path, rawQuery, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(raw), "/"), "?")
	path = strings.TrimSuffix(path, "/")

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return Endpoint{}, fmt.Errorf("%w %q: invalid query: %w", ErrUnknownEndpoint, raw, err)
	}

	ep := Endpoint{Query: query}
	head, tail, nested := strings.Cut(path, "/")

	switch {
	case head == "stats" && !nested:
		ep.Kind = KindStats
	case head == "entrants" && !nested:
		ep.Kind = KindEntrants
	case head == "entrants":
		id, err := strconv.ParseInt(tail, 10, 64)
		if err != nil {
			return Endpoint{}, fmt.Errorf("%w %q: entrant id must be an integer", ErrUnknownEndpoint, raw)
		}
		ep.Kind = KindEntrant
		ep.ID = id
	case head == "batches" && !nested:
		ep.Kind = KindBatches
	case head == "batches":
		year, err := strconv.Atoi(tail)
		if err != nil {
			return Endpoint{}, fmt.Errorf("%w %q: batch year must be an integer", ErrUnknownEndpoint, raw)
		}
		ep.Kind = KindBatch
		ep.Year = year
	case head == "ministries" && !nested:
		ep.Kind = KindMinistries
	case head == "positions" && !nested:
		ep.Kind = KindPositions
	case head == "search" && !nested:
		ep.Kind = KindSearch
	case head == "timeline" && !nested:
		ep.Kind = KindTimeline
	default:
		return Endpoint{}, fmt.Errorf("%w %q", ErrUnknownEndpoint, raw)
	}

	return ep, nil
}

// Path returns the concrete endpoint path without a leading slash, e.g. "batches/2021"
func (e Endpoint) Path() string {
	switch e.Kind {
	case KindEntrant:
		return "entrants/" + strconv.FormatInt(e.ID, 10)
	case KindBatch:
		return "batches/" + strconv.Itoa(e.Year)
	default:
		return e.Kind.String()
	}
}

// Params are request parameters with string or number values, e.g.
// {"limit": 6} or {"q": "finance"}
type Params map[string]any

// mergeQuery combines parameters embedded in the endpoint with explicit
// params; explicit params win
func mergeQuery(embedded url.Values, params Params) (url.Values, error) {
	query := url.Values{}
	for k, vs := range embedded {
		for _, v := range vs {
			query.Add(k, v)
		}
	}

	for k, v := range params {
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", k, err)
		}
		query.Set(k, s)
	}

	return query, nil
}
