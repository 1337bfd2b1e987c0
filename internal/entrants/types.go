// Package entrants holds the lateral entrant data model and the aggregations
// derived from a flat list of entrants.
package entrants

// Entrant is a single person record in the portal dataset.
type Entrant struct {
	ID                    int64  `json:"id"`
	Name                  string `json:"name"`
	Ministry              string `json:"ministry,omitempty"`
	Department            string `json:"department,omitempty"`
	Position              string `json:"position"`
	BatchYear             int    `json:"batch_year"`
	DateOfAppointment     string `json:"date_of_appointment,omitempty"`
	State                 string `json:"state,omitempty"`
	ProfileSummary        string `json:"profile_summary,omitempty"`
	EducationalBackground string `json:"educational_background,omitempty"`
	PreviousExperience    string `json:"previous_experience,omitempty"`
	CurrentStatus         string `json:"current_status,omitempty"`
	VerifiedSource        string `json:"verified_source,omitempty"`
}

// BatchStatistics counts entrants and distinct non-empty values in a batch
type BatchStatistics struct {
	Total      int `json:"total"`
	Ministries int `json:"ministries"`
	Positions  int `json:"positions"`
}

// PositionCount is the number of entrants holding a position
type PositionCount struct {
	Position string `json:"position"`
	Count    int    `json:"count"`
}

// BatchSummary is computed from the entrants of a single batch year.
// It is never persisted.
type BatchSummary struct {
	BatchYear  int             `json:"batch_year"`
	Statistics BatchStatistics `json:"statistics"`
	ByPosition []PositionCount `json:"by_position"`
	Entrants   []Entrant       `json:"entrants"`
}

// BatchCount is the number of entrants appointed in a batch year
type BatchCount struct {
	BatchYear int `json:"batch_year"`
	Count     int `json:"count"`
}

// MinistryCount is the number of entrants placed in a ministry
type MinistryCount struct {
	Ministry string `json:"ministry"`
	Count    int    `json:"count"`
}

// DepartmentCount is the number of entrants placed in a department
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// Stats is the shape of the stats.json document
type Stats struct {
	TotalAppointees int               `json:"total_appointees"`
	ByBatch         []BatchCount      `json:"by_batch"`
	ByMinistry      []MinistryCount   `json:"by_ministry"`
	ByPosition      []PositionCount   `json:"by_position"`
	ByDepartment    []DepartmentCount `json:"by_department"`
}

// BatchInfo is a single element of the batches.json document
type BatchInfo struct {
	BatchYear     int    `json:"batch_year"`
	Count         int    `json:"count"`
	Advertisement string `json:"advertisement,omitempty"`
	Phase         string `json:"phase,omitempty"`
	Description   string `json:"description,omitempty"`
}

// NamedCount is a distinct value with the number of entrants carrying it.
// Used for the ministries and positions views.
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TimelineEntry groups the entrants of one batch year
type TimelineEntry struct {
	BatchYear int       `json:"batch_year"`
	Count     int       `json:"count"`
	Entrants  []Entrant `json:"entrants"`
}
