package entity

import "github.com/google/uuid"

// SupperCourt is a court complex: the venue owning sub-courts and the
// price schedule.
type SupperCourt struct {
	Base
	OwnerID     uuid.UUID `db:"owner_id"`
	Name        string    `db:"name"`
	Address     string    `db:"address"`
	Description *string   `db:"description"`
}

// SubCourt is one individually bookable unit within a supper court.
type SubCourt struct {
	Base
	SupperCourtID uuid.UUID `db:"supper_court_id"`
	Name          string    `db:"name"`
}
