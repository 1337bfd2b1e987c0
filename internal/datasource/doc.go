// Package datasource resolves logical portal endpoints such as "stats",
// "entrants" or "batches/2021" into JSON documents.
//
// A DataSource first asks the live portal API when one is configured. The
// first live failure switches the DataSource to static snapshots for the
// rest of its lifetime; the failed request is answered from the snapshots
// too. Static snapshots are stats.json, batches.json and entrants.json,
// and every other endpoint is derived from entrants.json locally.
//
// Results are tagged: StatusOK carries data, StatusNotFound means the
// lookup worked but the item does not exist, and StatusUnavailable means
// neither source could answer.
package datasource
