package entrants

import (
	"cmp"
	"slices"
	"strings"
)

// FilterByYear returns the entrants of a batch year in their original order
func FilterByYear(list []Entrant, year int) []Entrant {
	filtered := make([]Entrant, 0)
	for _, e := range list {
		if e.BatchYear == year {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// SummarizeBatch computes the BatchSummary for a batch year.
// The second return value is false when no entrant belongs to the year.
func SummarizeBatch(list []Entrant, year int) (*BatchSummary, bool) {
	members := FilterByYear(list, year)
	if len(members) == 0 {
		return nil, false
	}

	ministries := make(map[string]struct{})
	positions := make(map[string]struct{})

	// Empty positions are still grouped so that the counts add up to the total
	index := make(map[string]int)
	byPosition := make([]PositionCount, 0)

	for _, e := range members {
		if e.Ministry != "" {
			ministries[e.Ministry] = struct{}{}
		}
		if e.Position != "" {
			positions[e.Position] = struct{}{}
		}

		i, seen := index[e.Position]
		if !seen {
			i = len(byPosition)
			index[e.Position] = i
			byPosition = append(byPosition, PositionCount{Position: e.Position})
		}
		byPosition[i].Count++
	}

	return &BatchSummary{
		BatchYear: year,
		Statistics: BatchStatistics{
			Total:      len(members),
			Ministries: len(ministries),
			Positions:  len(positions),
		},
		ByPosition: byPosition,
		Entrants:   members,
	}, true
}

// FindByID returns the entrant with the given id
func FindByID(list []Entrant, id int64) (Entrant, bool) {
	for _, e := range list {
		if e.ID == id {
			return e, true
		}
	}
	return Entrant{}, false
}

// Limit returns the first n elements. A negative n drops that many from the
// end, so -1 keeps all but the last; an n beyond either end is clamped.
func Limit[T any](list []T, n int) []T {
	if n < 0 {
		n += len(list)
	}
	return list[:max(0, min(n, len(list)))]
}

// Matches reports whether the entrant's name, ministry, department or
// position contains query, ignoring case. A blank query matches nothing.
func Matches(e Entrant, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	for _, field := range []string{e.Name, e.Ministry, e.Department, e.Position} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Search returns the entrants matching query, in their original order
func Search(list []Entrant, query string) []Entrant {
	matches := make([]Entrant, 0)
	for _, e := range list {
		if Matches(e, query) {
			matches = append(matches, e)
		}
	}
	return matches
}

// Ministries returns the distinct non-empty ministries, most populated first
func Ministries(list []Entrant) []NamedCount {
	return countNonEmpty(list, func(e Entrant) string { return e.Ministry })
}

// Positions returns the distinct non-empty positions, most populated first
func Positions(list []Entrant) []NamedCount {
	return countNonEmpty(list, func(e Entrant) string { return e.Position })
}

// Timeline groups entrants per batch year, oldest batch first
func Timeline(list []Entrant) []TimelineEntry {
	index := make(map[int]int)
	timeline := make([]TimelineEntry, 0)

	for _, e := range list {
		i, seen := index[e.BatchYear]
		if !seen {
			i = len(timeline)
			index[e.BatchYear] = i
			timeline = append(timeline, TimelineEntry{BatchYear: e.BatchYear, Entrants: make([]Entrant, 0)})
		}
		timeline[i].Entrants = append(timeline[i].Entrants, e)
		timeline[i].Count++
	}

	slices.SortStableFunc(timeline, func(a, b TimelineEntry) int {
		return cmp.Compare(a.BatchYear, b.BatchYear)
	})
	return timeline
}

// countNonEmpty counts the distinct non-empty values of key, sorted by count
// descending and then by value
func countNonEmpty(list []Entrant, key func(Entrant) string) []NamedCount {
	return slices.DeleteFunc(countAll(list, key), func(c NamedCount) bool {
		return c.Name == ""
	})
}
