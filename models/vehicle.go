package models

import "github.com/uptrace/bun"

// Vehicle is one vehicle involved in a crash. VehicleID distinguishes
// vehicles within a crash, so (ID, VehicleID) is unique across the table.
type Vehicle struct {
	bun.BaseModel `bun:"table:vehicles,alias:v"`

	ID        int    `bun:"id,notnull" json:"id"`
	VehicleID int    `bun:"vehicle_id,notnull" json:"vehicleID"`
	Vehicle   string `bun:"vehicle,notnull" json:"vehicle"`
}
