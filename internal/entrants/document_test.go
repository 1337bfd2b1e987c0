package entrants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeList(t *testing.T) {
	t.Parallel()

	const items = `[{"id":1,"name":"A","batch_year":2020,"position":"P"},{"id":2,"name":"B","batch_year":2021,"position":"Q","ministry":null}]`

	tests := []struct {
		name    string
		data    string
		wantIDs []int64
		wantErr bool
	}{
		{name: "bare array", data: items, wantIDs: []int64{1, 2}},
		{name: "wrapped array", data: `{"entrants":` + items + `,"total":2}`, wantIDs: []int64{1, 2}},
		{name: "object without entrants", data: `{"total":0}`, wantIDs: []int64{}},
		{name: "null entrants", data: `{"entrants":null}`, wantIDs: []int64{}},
		{name: "entrants not an array", data: `{"entrants":{"id":1}}`, wantErr: true},
		{name: "scalar document", data: `42`, wantErr: true},
		{name: "invalid json", data: `[{"id":`, wantErr: true},
		{name: "wrong field type", data: `[{"id":1,"batch_year":"2020"}]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			list, err := DecodeList([]byte(tt.data))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedDocument)
				return
			}
			require.NoError(t, err)

			ids := make([]int64, 0, len(list))
			for _, e := range list {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestDecodeList_ShapesAreEquivalent(t *testing.T) {
	t.Parallel()

	const items = `[{"id":7,"name":"Same","ministry":"Finance","batch_year":2019,"position":"Director","date_of_appointment":"2019-09-01"}]`

	bare, err := DecodeList([]byte(items))
	require.NoError(t, err)
	wrapped, err := DecodeList([]byte(`{"entrants":` + items + `}`))
	require.NoError(t, err)

	assert.Equal(t, bare, wrapped)
	assert.Equal(t, "2019-09-01", bare[0].DateOfAppointment)
}

func TestDecodeRecords_KeepsStoredForm(t *testing.T) {
	t.Parallel()

	const items = `[
		{"id":1,"name":"A","position":"X","batch_year":2020,"linkedin_url":"https://example.org/a","extension_date":null},
		{"id":2,"name":"B","position":"Y","batch_year":2021,"appointment_type":"contract"}
	]`

	records, err := DecodeRecords([]byte(`{"entrants":` + items + `}`))
	require.NoError(t, err)
	require.Len(t, records.List, 2)
	require.Len(t, records.Raw, 2)

	assert.Equal(t, int64(1), records.List[0].ID)
	assert.JSONEq(t,
		`{"id":1,"name":"A","position":"X","batch_year":2020,"linkedin_url":"https://example.org/a","extension_date":null}`,
		string(records.Raw[0]))

	selected := records.Select(func(e Entrant) bool { return e.BatchYear == 2021 })
	require.Len(t, selected, 1)
	assert.JSONEq(t, `{"id":2,"name":"B","position":"Y","batch_year":2021,"appointment_type":"contract"}`, string(selected[0]))

	assert.Empty(t, records.Select(func(Entrant) bool { return false }))
}
