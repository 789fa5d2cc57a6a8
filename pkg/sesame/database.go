package sesame

import (
	"fmt"

	"github.com/gilleslandais/astropy/pkg/errors"
)

// Database selects which underlying catalog service a Sesame mirror should
// consult for a resolution request.
type Database string

// Recognized database selectors.
const (
	// DatabaseAll queries SIMBAD, NED and VizieR in fallback order.
	DatabaseAll Database = "all"

	// DatabaseSimbad queries SIMBAD only.
	DatabaseSimbad Database = "simbad"

	// DatabaseNED queries NED only.
	DatabaseNED Database = "ned"

	// DatabaseVizieR queries VizieR only.
	DatabaseVizieR Database = "vizier"
)

// Code returns the request path fragment a mirror expects for this selector.
// Single databases map to a single letter; "all" encodes the full fallback
// sequence SIMBAD→NED→VizieR as one combined segment.
func (d Database) Code() string {
	switch d {
	case DatabaseSimbad:
		return "S"
	case DatabaseNED:
		return "N"
	case DatabaseVizieR:
		return "V"
	default:
		return "SNV"
	}
}

// Valid reports whether d is one of the recognized selectors.
func (d Database) Valid() bool {
	switch d {
	case DatabaseAll, DatabaseSimbad, DatabaseNED, DatabaseVizieR:
		return true
	}
	return false
}

// ParseDatabase converts a string into a Database selector.
func ParseDatabase(s string) (Database, error) {
	d := Database(s)
	if !d.Valid() {
		return "", errors.NewConfigError("sesame",
			fmt.Sprintf("unknown database %q (expected all, simbad, ned or vizier)", s), nil)
	}
	return d, nil
}
