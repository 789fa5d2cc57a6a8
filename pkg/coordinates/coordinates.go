// Package coordinates provides the celestial coordinate values produced by
// name resolution. Coordinates are expressed in the ICRS frame as decimal
// degrees and are immutable once constructed.
package coordinates

import (
	"fmt"
	"math"

	"github.com/gilleslandais/astropy/pkg/errors"
)

// ICRS is a right ascension / declination pair in decimal degrees.
type ICRS struct {
	// RA is the right ascension in degrees, in [0, 360).
	RA float64 `json:"ra" yaml:"ra"`

	// Dec is the declination in degrees, in [-90, +90].
	Dec float64 `json:"dec" yaml:"dec"`
}

// New constructs an ICRS coordinate, rejecting out-of-range values.
func New(ra, dec float64) (ICRS, error) {
	if math.IsNaN(ra) || ra < 0 || ra >= 360 {
		return ICRS{}, errors.NewValidationError("ra", ra,
			fmt.Sprintf("right ascension %v outside [0, 360)", ra))
	}
	if math.IsNaN(dec) || dec < -90 || dec > 90 {
		return ICRS{}, errors.NewValidationError("dec", dec,
			fmt.Sprintf("declination %v outside [-90, +90]", dec))
	}
	return ICRS{RA: ra, Dec: dec}, nil
}

// String formats the coordinate for display.
func (c ICRS) String() string {
	return fmt.Sprintf("%.7f %+.7f", c.RA, c.Dec)
}

// RAFromHMS converts sexagesimal hours, minutes and seconds of right
// ascension to decimal degrees.
func RAFromHMS(hours, minutes int, seconds float64) float64 {
	return 15 * (float64(hours) + float64(minutes)/60 + seconds/3600)
}

// DecFromDMS converts signed sexagesimal degrees, arcminutes and arcseconds
// of declination to decimal degrees. The sign applies to the whole value.
func DecFromDMS(sign int, degrees, minutes int, seconds float64) float64 {
	v := float64(degrees) + float64(minutes)/60 + seconds/3600
	if sign < 0 {
		return -v
	}
	return v
}
