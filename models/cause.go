package models

import "github.com/uptrace/bun"

// Cause is one contributing factor recorded against a crash, classified by a
// three-level taxonomy (category > subcategory > cause). VehicleID is nil
// when the factor is not attributable to a specific vehicle; joining back to
// vehicles requires matching both ID and VehicleID, joining to crashes only
// ID. A crash routinely has several cause rows, so crash counts by category
// must deduplicate on (cause_category, id) before counting.
type Cause struct {
	bun.BaseModel `bun:"table:causes,alias:ca"`

	ID               int    `bun:"id,notnull" json:"id"`
	VehicleID        *int   `bun:"vehicle_id" json:"vehicleID,omitempty"`
	CauseCategory    string `bun:"cause_category,notnull" json:"causeCategory"`
	CauseSubcategory string `bun:"cause_subcategory,notnull" json:"causeSubcategory"`
	Cause            string `bun:"cause,notnull" json:"cause"`
}
