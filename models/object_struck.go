package models

import "github.com/uptrace/bun"

// ObjectStruck records one object struck during a crash. A crash may strike
// several objects, so this table fans out on ID.
type ObjectStruck struct {
	bun.BaseModel `bun:"table:objects_struck,alias:o"`

	ID     int    `bun:"id,notnull" json:"id"`
	Object string `bun:"object,notnull" json:"object"`
}
