// Package export generates the static snapshot documents from the portal database.
package export

import (
	"context"
	"fmt"

	"github.com/lateral-entry-portal/portal/database"
	"github.com/lateral-entry-portal/portal/internal/entrants"
)

// Store reads entrants from the portal database
type Store interface {
	// ListEntrants returns every entrant ordered by batch year (newest
	// first), then by name
	ListEntrants(ctx context.Context) ([]entrants.Entrant, error)

	// Close releases the database connection
	Close() error
}

// listEntrantsQuery is valid on both SQLite and PostgreSQL
const listEntrantsQuery = `
SELECT id, name, ministry, department, position, batch_year, date_of_appointment,
       state, profile_summary, educational_background, previous_experience,
       current_status, verified_source
FROM lateral_entrants
ORDER BY batch_year DESC, name ASC`

// rowScanner is satisfied by *sql.Rows and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanEntrant reads one row of listEntrantsQuery; NULL text columns become ""
func scanEntrant(row rowScanner) (entrants.Entrant, error) {
	var (
		e                                         entrants.Entrant
		ministry, department, position, appointed *string
		state, profile, education, experience     *string
		status, source                            *string
	)

	err := row.Scan(
		&e.ID, &e.Name, &ministry, &department, &position, &e.BatchYear, &appointed,
		&state, &profile, &education, &experience, &status, &source,
	)
	if err != nil {
		return entrants.Entrant{}, fmt.Errorf("failed to scan entrant: %w", err)
	}

	e.Ministry = deref(ministry)
	e.Department = deref(department)
	e.Position = deref(position)
	e.DateOfAppointment = deref(appointed)
	e.State = deref(state)
	e.ProfileSummary = deref(profile)
	e.EducationalBackground = deref(education)
	e.PreviousExperience = deref(experience)
	e.CurrentStatus = deref(status)
	e.VerifiedSource = deref(source)

	return e, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NewStore opens the database at dsn: a postgres:// or postgresql:// URL
// selects PostgreSQL, anything else is a SQLite file path
func NewStore(ctx context.Context, dsn string) (Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database is required")
	}
	if database.IsPostgres(dsn) {
		return NewPostgresStore(ctx, dsn)
	}
	return NewSQLiteStore(ctx, dsn)
}
