package entrants

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrMalformedDocument is returned when an entrants document is neither a
// JSON array nor an object holding an "entrants" array
var ErrMalformedDocument = errors.New("malformed entrants document")

// listKey is the wrapper field some exports use around the entrant array
const listKey = "entrants"

// ListJSON returns the raw entrant array held by an entrants document.
// The document may be a bare array or an object with an "entrants" array;
// an object without that field yields an empty array.
func ListJSON(data []byte) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedDocument)
	}

	root := gjson.ParseBytes(data)
	switch {
	case root.IsArray():
		return []byte(root.Raw), nil
	case root.IsObject():
		list := root.Get(listKey)
		if !list.Exists() || list.Type == gjson.Null {
			return []byte("[]"), nil
		}
		if !list.IsArray() {
			return nil, fmt.Errorf("%w: %q is not an array", ErrMalformedDocument, listKey)
		}
		return []byte(list.Raw), nil
	default:
		return nil, fmt.Errorf("%w: unexpected top-level %s", ErrMalformedDocument, root.Type)
	}
}

// Records is a decoded entrants document. Raw holds each entrant exactly as
// stored, including fields and nulls Entrant does not model, and is parallel
// to List.
type Records struct {
	List []Entrant
	Raw  []json.RawMessage
}

// DecodeRecords parses an entrants document in either supported shape,
// keeping the stored form of every entrant next to its decoded fields
func DecodeRecords(data []byte) (*Records, error) {
	raw, err := ListJSON(data)
	if err != nil {
		return nil, err
	}

	items := gjson.ParseBytes(raw).Array()
	records := &Records{
		List: make([]Entrant, 0, len(items)),
		Raw:  make([]json.RawMessage, 0, len(items)),
	}
	for i, item := range items {
		var e Entrant
		if err := json.Unmarshal([]byte(item.Raw), &e); err != nil {
			return nil, fmt.Errorf("%w: entrant %d: %w", ErrMalformedDocument, i, err)
		}
		records.List = append(records.List, e)
		records.Raw = append(records.Raw, json.RawMessage(item.Raw))
	}
	return records, nil
}

// Select returns the stored form of the entrants keep accepts, in order
func (r *Records) Select(keep func(Entrant) bool) []json.RawMessage {
	selected := make([]json.RawMessage, 0)
	for i, e := range r.List {
		if keep(e) {
			selected = append(selected, r.Raw[i])
		}
	}
	return selected
}

// DecodeList parses an entrants document in either supported shape
func DecodeList(data []byte) ([]Entrant, error) {
	records, err := DecodeRecords(data)
	if err != nil {
		return nil, err
	}
	return records.List, nil
}
