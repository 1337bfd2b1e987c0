package entrants

import (
	"cmp"
	"slices"
)

// BatchMetadata describes the recruitment round behind a batch year
type BatchMetadata struct {
	Advertisement string
	Phase         string
	Description   string
}

// KnownBatches holds the published metadata for each recruitment round
var KnownBatches = map[int]BatchMetadata{
	2019: {
		Advertisement: "Advertisement No. 17/2018",
		Phase:         "1st Phase (2018)",
		Description:   "Pioneer batch of lateral entry appointees",
	},
	2021: {
		Advertisement: "Advertisement No. 47/2020",
		Phase:         "2nd Phase (2021)",
		Description:   "Largest cohort of lateral entry appointments",
	},
	2023: {
		Advertisement: "Advertisement No. 52 & 53/2023",
		Phase:         "3rd Phase (2023)",
		Description:   "Third phase of lateral entry appointments",
	},
}

// BuildStats computes the stats.json document
func BuildStats(list []Entrant) Stats {
	stats := Stats{
		TotalAppointees: len(list),
		ByBatch:         countByBatch(list),
		ByMinistry:      make([]MinistryCount, 0),
		ByPosition:      make([]PositionCount, 0),
		ByDepartment:    make([]DepartmentCount, 0),
	}

	for _, c := range countNonEmpty(list, func(e Entrant) string { return e.Ministry }) {
		stats.ByMinistry = append(stats.ByMinistry, MinistryCount{Ministry: c.Name, Count: c.Count})
	}
	for _, c := range countAll(list, func(e Entrant) string { return e.Position }) {
		stats.ByPosition = append(stats.ByPosition, PositionCount{Position: c.Name, Count: c.Count})
	}
	for _, c := range countNonEmpty(list, func(e Entrant) string { return e.Department }) {
		stats.ByDepartment = append(stats.ByDepartment, DepartmentCount{Department: c.Name, Count: c.Count})
	}

	return stats
}

// BuildBatches computes the batches.json document, oldest batch first,
// enriched with KnownBatches metadata
func BuildBatches(list []Entrant) []BatchInfo {
	counts := countByBatch(list)
	batches := make([]BatchInfo, 0, len(counts))
	for _, c := range counts {
		info := BatchInfo{BatchYear: c.BatchYear, Count: c.Count}
		if meta, ok := KnownBatches[c.BatchYear]; ok {
			info.Advertisement = meta.Advertisement
			info.Phase = meta.Phase
			info.Description = meta.Description
		}
		batches = append(batches, info)
	}
	return batches
}

func countByBatch(list []Entrant) []BatchCount {
	counts := make(map[int]int)
	for _, e := range list {
		counts[e.BatchYear]++
	}

	result := make([]BatchCount, 0, len(counts))
	for year, count := range counts {
		result = append(result, BatchCount{BatchYear: year, Count: count})
	}
	slices.SortFunc(result, func(a, b BatchCount) int {
		return cmp.Compare(a.BatchYear, b.BatchYear)
	})
	return result
}

// countAll is countNonEmpty without dropping empty values; positions are
// reported as-is in stats.json
func countAll(list []Entrant, key func(Entrant) string) []NamedCount {
	counts := make(map[string]int)
	for _, e := range list {
		counts[key(e)]++
	}

	result := make([]NamedCount, 0, len(counts))
	for name, count := range counts {
		result = append(result, NamedCount{Name: name, Count: count})
	}
	slices.SortFunc(result, func(a, b NamedCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return result
}
