package sesame

import (
	"strconv"
	"strings"

	"github.com/gilleslandais/astropy/pkg/coordinates"
	"github.com/gilleslandais/astropy/pkg/errors"
)

// Response is the useful content of one Sesame mirror reply.
type Response struct {
	// Coordinate is the resolved position from the first %J line.
	Coordinate coordinates.ICRS

	// Identifier is the primary identifier reported by the mirror
	// (first %I line), when present.
	Identifier string

	// Classification is the object type reported by the mirror
	// (first %C line), when present.
	Classification string
}

// ParseResponse extracts a coordinate from a Sesame text reply.
//
// The protocol is line oriented with a percent prefix per field: %J carries
// "ra dec" in decimal degrees as its first two tokens, %I identifiers, %C
// the object classification, and a trailing "#====Done" marker. Mirrors may
// emit several candidate blocks; only the first %J line is authoritative.
// Unknown prefixes are ignored, and no line count or ordering beyond that
// is assumed.
//
// A reply without a usable %J line yields a ParseError. That means the
// mirror was reachable but had no match for the name; it is fallback
// control flow, not mirror unavailability.
func ParseResponse(body string) (*Response, error) {
	resp := &Response{}
	found := false
	diagnostic := ""

	for _, line := range strings.Split(body, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch {
		case fields[0] == "%J":
			if found {
				continue
			}
			coord, err := parseCoordinateFields(fields[1:])
			if err != nil {
				return nil, err
			}
			resp.Coordinate = coord
			found = true

		case strings.HasPrefix(fields[0], "%I") && resp.Identifier == "":
			resp.Identifier = strings.Join(fields[1:], " ")

		case strings.HasPrefix(fields[0], "%C") && resp.Classification == "":
			resp.Classification = strings.Join(fields[1:], " ")

		case (fields[0] == "%E" || strings.HasPrefix(fields[0], "#!")) && diagnostic == "":
			diagnostic = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(line, "%E"), "#!"))
		}
	}

	if !found {
		msg := "no coordinate in response"
		if diagnostic != "" {
			msg += ": " + diagnostic
		}
		return nil, errors.NewParseError("sesame", msg, nil)
	}
	return resp, nil
}

// parseCoordinateFields decodes the leading "ra dec" tokens of a %J line.
// Anything after them (the "= sexagesimal" rendering) is ignored.
func parseCoordinateFields(fields []string) (coordinates.ICRS, error) {
	if len(fields) < 2 {
		return coordinates.ICRS{}, errors.NewParseError("sesame", "no coordinate in response", nil)
	}

	ra, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return coordinates.ICRS{}, errors.NewParseError("sesame", "no coordinate in response", err)
	}
	dec, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return coordinates.ICRS{}, errors.NewParseError("sesame", "no coordinate in response", err)
	}

	coord, err := coordinates.New(ra, dec)
	if err != nil {
		return coordinates.ICRS{}, errors.NewParseError("sesame", "coordinate out of range", err)
	}
	return coord, nil
}
