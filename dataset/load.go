package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/padraicbc/nzcrash/models"
)

// The four source files as shipped. The CSVs carry text throughout; nulls
// are empty fields, and all typing happens here so a bad value fails the
// load instead of sliding through as a zero.
const (
	crashesFile       = "crashes.csv"
	causesFile        = "causes.csv"
	vehiclesFile      = "vehicles.csv"
	objectsStruckFile = "objects_struck.csv"

	datetimeLayout = "2006-01-02 15:04"
)

type crashRecord struct {
	ID         string `csv:"id"`
	Date       string `csv:"date"`
	Time       string `csv:"time"`
	Datetime   string `csv:"datetime"`
	Severity   string `csv:"severity"`
	Fatalities string `csv:"fatalities"`
	Easting    string `csv:"easting"`
	Northing   string `csv:"northing"`
}

type causeRecord struct {
	ID               string `csv:"id"`
	VehicleID        string `csv:"vehicle_id"`
	CauseCategory    string `csv:"cause_category"`
	CauseSubcategory string `csv:"cause_subcategory"`
	Cause            string `csv:"cause"`
}

type vehicleRecord struct {
	ID        string `csv:"id"`
	VehicleID string `csv:"vehicle_id"`
	Vehicle   string `csv:"vehicle"`
}

type objectStruckRecord struct {
	ID     string `csv:"id"`
	Object string `csv:"object"`
}

// Load reads the four tables from dir and validates every structural
// invariant. Any missing file, empty table, type mismatch, duplicate key, or
// invariant breach returns a *LoadError; no partial dataset comes back.
func Load(dir string) (*Dataset, error) {
	crashRecs, err := readTable[crashRecord](dir, crashesFile, "crashes")
	if err != nil {
		return nil, err
	}
	causeRecs, err := readTable[causeRecord](dir, causesFile, "causes")
	if err != nil {
		return nil, err
	}
	vehicleRecs, err := readTable[vehicleRecord](dir, vehiclesFile, "vehicles")
	if err != nil {
		return nil, err
	}
	objectRecs, err := readTable[objectStruckRecord](dir, objectsStruckFile, "objects_struck")
	if err != nil {
		return nil, err
	}

	d := &Dataset{}
	if d.Crashes, err = convertCrashes(crashRecs); err != nil {
		return nil, err
	}
	if d.Causes, err = convertCauses(causeRecs); err != nil {
		return nil, err
	}
	if d.Vehicles, err = convertVehicles(vehicleRecs); err != nil {
		return nil, err
	}
	if d.ObjectsStruck, err = convertObjectsStruck(objectRecs); err != nil {
		return nil, err
	}
	return d, nil
}

func readTable[T any](dir, file, table string) ([]T, error) {
	f, err := os.Open(filepath.Join(dir, file))
	if err != nil {
		return nil, &LoadError{Table: table, Err: err}
	}
	defer f.Close()

	var recs []T
	if err := gocsv.UnmarshalFile(f, &recs); err != nil {
		return nil, &LoadError{Table: table, Err: err}
	}
	if len(recs) == 0 {
		return nil, &LoadError{Table: table, Err: fmt.Errorf("table is empty")}
	}
	return recs, nil
}

func convertCrashes(recs []crashRecord) ([]models.Crash, error) {
	out := make([]models.Crash, 0, len(recs))
	seen := make(map[int]bool, len(recs))
	for i, rec := range recs {
		c, err := convertCrash(rec)
		if err != nil {
			return nil, &LoadError{Table: "crashes", Row: i + 1, Err: err}
		}
		if seen[c.ID] {
			return nil, &LoadError{Table: "crashes", Row: i + 1, Err: fmt.Errorf("duplicate crash id %d", c.ID)}
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out, nil
}

func convertCrash(rec crashRecord) (models.Crash, error) {
	var c models.Crash
	var err error

	if c.ID, err = parseInt("id", rec.ID); err != nil {
		return c, err
	}
	if c.Date, err = models.ParseDate(rec.Date); err != nil {
		return c, fmt.Errorf("column date: %w", err)
	}
	if rec.Time != "" {
		tod, err := models.ParseTimeOfDay(rec.Time)
		if err != nil {
			return c, fmt.Errorf("column time: %w", err)
		}
		c.Time = &tod
	}
	if rec.Datetime != "" {
		dt, err := time.ParseInLocation(datetimeLayout, rec.Datetime, models.Auckland)
		if err != nil {
			return c, fmt.Errorf("column datetime: invalid value %q: %w", rec.Datetime, err)
		}
		c.DateTime = &dt
	}
	if c.Severity, err = models.ParseSeverity(rec.Severity); err != nil {
		return c, fmt.Errorf("column severity: %w", err)
	}
	if c.Fatalities, err = parseInt("fatalities", rec.Fatalities); err != nil {
		return c, err
	}
	if c.Fatalities < 0 {
		return c, fmt.Errorf("column fatalities: negative count %d", c.Fatalities)
	}
	if c.Easting, c.Northing, err = parseCoords(rec.Easting, rec.Northing); err != nil {
		return c, err
	}

	// datetime is pure denormalization: null exactly when time is null,
	// and always the recombination of date and time otherwise.
	switch {
	case (c.Time == nil) != (c.DateTime == nil):
		return c, fmt.Errorf("time and datetime must be null together")
	case c.Time != nil:
		if want := models.CombineDateTime(c.Date, *c.Time); !c.DateTime.Equal(want) {
			return c, fmt.Errorf("datetime %s does not recombine date and time (want %s)",
				c.DateTime.Format(datetimeLayout), want.Format(datetimeLayout))
		}
	}

	if c.Fatalities > 0 && c.Severity != models.SeverityFatal {
		return c, fmt.Errorf("%d fatalities but severity %q", c.Fatalities, c.Severity)
	}
	return c, nil
}

func convertCauses(recs []causeRecord) ([]models.Cause, error) {
	out := make([]models.Cause, 0, len(recs))
	for i, rec := range recs {
		var ca models.Cause
		var err error
		if ca.ID, err = parseInt("id", rec.ID); err != nil {
			return nil, &LoadError{Table: "causes", Row: i + 1, Err: err}
		}
		if rec.VehicleID != "" {
			vid, err := parseInt("vehicle_id", rec.VehicleID)
			if err != nil {
				return nil, &LoadError{Table: "causes", Row: i + 1, Err: err}
			}
			ca.VehicleID = &vid
		}
		ca.CauseCategory = rec.CauseCategory
		ca.CauseSubcategory = rec.CauseSubcategory
		ca.Cause = rec.Cause
		out = append(out, ca)
	}
	return out, nil
}

func convertVehicles(recs []vehicleRecord) ([]models.Vehicle, error) {
	out := make([]models.Vehicle, 0, len(recs))
	type vkey struct{ id, vehicleID int }
	seen := make(map[vkey]bool, len(recs))
	for i, rec := range recs {
		var v models.Vehicle
		var err error
		if v.ID, err = parseInt("id", rec.ID); err != nil {
			return nil, &LoadError{Table: "vehicles", Row: i + 1, Err: err}
		}
		if v.VehicleID, err = parseInt("vehicle_id", rec.VehicleID); err != nil {
			return nil, &LoadError{Table: "vehicles", Row: i + 1, Err: err}
		}
		v.Vehicle = rec.Vehicle
		k := vkey{v.ID, v.VehicleID}
		if seen[k] {
			return nil, &LoadError{Table: "vehicles", Row: i + 1,
				Err: fmt.Errorf("duplicate (id, vehicle_id) pair (%d, %d)", v.ID, v.VehicleID)}
		}
		seen[k] = true
		out = append(out, v)
	}
	return out, nil
}

func convertObjectsStruck(recs []objectStruckRecord) ([]models.ObjectStruck, error) {
	out := make([]models.ObjectStruck, 0, len(recs))
	for i, rec := range recs {
		var o models.ObjectStruck
		var err error
		if o.ID, err = parseInt("id", rec.ID); err != nil {
			return nil, &LoadError{Table: "objects_struck", Row: i + 1, Err: err}
		}
		o.Object = rec.Object
		out = append(out, o)
	}
	return out, nil
}

func parseInt(column, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("column %s: invalid integer %q", column, raw)
	}
	return n, nil
}

func parseCoords(easting, northing string) (*float64, *float64, error) {
	if (easting == "") != (northing == "") {
		return nil, nil, fmt.Errorf("easting and northing must be present together")
	}
	if easting == "" {
		return nil, nil, nil
	}
	e, err := strconv.ParseFloat(easting, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("column easting: invalid value %q", easting)
	}
	n, err := strconv.ParseFloat(northing, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("column northing: invalid value %q", northing)
	}
	return &e, &n, nil
}
