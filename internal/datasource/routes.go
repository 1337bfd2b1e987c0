package datasource

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/lateral-entry-portal/portal/internal/entrants"
	"github.com/lateral-entry-portal/portal/internal/sources"
)

// resolveFunc derives a resource from the raw content of a static document.
// found is false when the document is readable but holds no such item.
type resolveFunc func(ep Endpoint, query url.Values, data []byte) (value any, found bool, err error)

// staticRoute maps an endpoint kind onto the static document answering it
type staticRoute struct {
	document sources.Document
	resolve  resolveFunc
}

// staticRoutes is indexed by Kind; every kind must have an entry
var staticRoutes = [kindCount]staticRoute{
	KindStats:      {document: sources.DocumentStats, resolve: passthrough},
	KindBatches:    {document: sources.DocumentBatches, resolve: passthrough},
	KindEntrants:   {document: sources.DocumentEntrants, resolve: withEntrants(resolveEntrants)},
	KindEntrant:    {document: sources.DocumentEntrants, resolve: withEntrants(resolveEntrant)},
	KindBatch:      {document: sources.DocumentEntrants, resolve: withEntrants(resolveBatch)},
	KindMinistries: {document: sources.DocumentEntrants, resolve: withEntrants(resolveMinistries)},
	KindPositions:  {document: sources.DocumentEntrants, resolve: withEntrants(resolvePositions)},
	KindSearch:     {document: sources.DocumentEntrants, resolve: withEntrants(resolveSearch)},
	KindTimeline:   {document: sources.DocumentEntrants, resolve: withEntrants(resolveTimeline)},
}

func passthrough(_ Endpoint, _ url.Values, data []byte) (any, bool, error) {
	if !json.Valid(data) {
		return nil, false, fmt.Errorf("document is not valid JSON")
	}
	return json.RawMessage(data), true, nil
}

type entrantsResolver func(ep Endpoint, query url.Values, records *entrants.Records) (any, bool, error)

// withEntrants decodes the entrants document, in either shape, before resolving.
// Entrants are written back in their stored form so that fields the portal
// does not model survive.
func withEntrants(fn entrantsResolver) resolveFunc {
	return func(ep Endpoint, query url.Values, data []byte) (any, bool, error) {
		records, err := entrants.DecodeRecords(data)
		if err != nil {
			return nil, false, err
		}
		return fn(ep, query, records)
	}
}

// batchDocument is a BatchSummary with its entrants in stored form
type batchDocument struct {
	*entrants.BatchSummary
	Entrants []json.RawMessage `json:"entrants"`
}

// timelineDocument is a TimelineEntry with its entrants in stored form
type timelineDocument struct {
	entrants.TimelineEntry
	Entrants []json.RawMessage `json:"entrants"`
}

func inBatch(year int) func(entrants.Entrant) bool {
	return func(e entrants.Entrant) bool { return e.BatchYear == year }
}

func resolveEntrants(_ Endpoint, query url.Values, records *entrants.Records) (any, bool, error) {
	list := records.Raw
	if n, ok := parseLimit(query); ok {
		list = entrants.Limit(list, n)
	}
	return list, true, nil
}

func resolveEntrant(ep Endpoint, _ url.Values, records *entrants.Records) (any, bool, error) {
	matches := records.Select(func(e entrants.Entrant) bool { return e.ID == ep.ID })
	if len(matches) == 0 {
		return nil, false, nil
	}
	return matches[0], true, nil
}

func resolveBatch(ep Endpoint, _ url.Values, records *entrants.Records) (any, bool, error) {
	summary, ok := entrants.SummarizeBatch(records.List, ep.Year)
	if !ok {
		return nil, false, nil
	}
	return batchDocument{
		BatchSummary: summary,
		Entrants:     records.Select(inBatch(ep.Year)),
	}, true, nil
}

func resolveMinistries(_ Endpoint, _ url.Values, records *entrants.Records) (any, bool, error) {
	return entrants.Ministries(records.List), true, nil
}

func resolvePositions(_ Endpoint, _ url.Values, records *entrants.Records) (any, bool, error) {
	return entrants.Positions(records.List), true, nil
}

func resolveSearch(_ Endpoint, query url.Values, records *entrants.Records) (any, bool, error) {
	q := query.Get("q")
	return records.Select(func(e entrants.Entrant) bool { return entrants.Matches(e, q) }), true, nil
}

func resolveTimeline(_ Endpoint, _ url.Values, records *entrants.Records) (any, bool, error) {
	timeline := entrants.Timeline(records.List)
	docs := make([]timelineDocument, 0, len(timeline))
	for _, entry := range timeline {
		docs = append(docs, timelineDocument{
			TimelineEntry: entry,
			Entrants:      records.Select(inBatch(entry.BatchYear)),
		})
	}
	return docs, true, nil
}

// parseLimit reads the "limit" parameter as a decimal integer from its
// leading digits, so "10", "010" and "10abc" are all 10. ok is false when
// the parameter is missing or has no leading digits.
func parseLimit(query url.Values) (n int, ok bool) {
	raw := strings.TrimSpace(query.Get("limit"))

	sign := ""
	if strings.HasPrefix(raw, "-") || strings.HasPrefix(raw, "+") {
		sign, raw = raw[:1], raw[1:]
	}
	end := strings.IndexFunc(raw, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(raw)
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(sign + raw[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
