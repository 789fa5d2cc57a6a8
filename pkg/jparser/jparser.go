// Package jparser decodes coordinates embedded directly in catalog object
// designations. Several survey naming conventions encode a truncated
// sexagesimal position after a `J` (or `B`) designation letter, e.g.
// "2MASS J06495091-0737408" or "SDSS J132411.57+032050.5". Extraction is
// pure pattern matching: it performs no I/O and is the cheap alternative to
// querying a name-resolution mirror.
package jparser

import (
	"regexp"
	"strconv"

	"github.com/gilleslandais/astropy/pkg/coordinates"
)

// pattern is one catalog digit-count convention. Each pattern is a fixed
// structural matcher, not a general sexagesimal grammar: the digit groups
// are named rh/rm/rs/rf for right ascension and sign/dd/dm/ds/df for
// declination, so all patterns share one decoder.
type pattern struct {
	name string
	re   *regexp.Regexp
}

// Patterns are tried in order, most specific (most digits) first, so a
// looser convention never mis-consumes a longer designation. The
// declination sign is a required token in every pattern: a designation
// without an explicit +/- carries no decodable coordinate.
var patterns = []pattern{
	{
		// Jhhmmss.f±ddmmss[.f] — SDSS, MASTER, 1RXS, 2QZ, CXOU, DENIS
		name: "fractional",
		re: regexp.MustCompile(`[JB](?P<rh>[0-2]\d)(?P<rm>[0-5]\d)(?P<rs>[0-5]\d)\.(?P<rf>\d{1,3})` +
			`(?P<sign>[+-])(?P<dd>\d{1,2})(?P<dm>[0-5]\d)(?P<ds>[0-5]\d)(?:\.(?P<df>\d{1,3}))?(?:\D|$)`),
	},
	{
		// Jhhmmssff±ddmmssf — 2MASS-style, fraction digits without a dot
		name: "compact",
		re: regexp.MustCompile(`[JB](?P<rh>[0-2]\d)(?P<rm>[0-5]\d)(?P<rs>[0-5]\d)(?P<rf>\d{2})` +
			`(?P<sign>[+-])(?P<dd>\d{2})(?P<dm>[0-5]\d)(?P<ds>[0-5]\d)(?P<df>\d)(?:\D|$)`),
	},
	{
		// Jhhmmss±ddmmss — CRTS-style, whole seconds only
		name: "plain",
		re: regexp.MustCompile(`[JB](?P<rh>[0-2]\d)(?P<rm>[0-5]\d)(?P<rs>[0-5]\d)` +
			`(?P<sign>[+-])(?P<dd>\d{2})(?P<dm>[0-5]\d)(?P<ds>[0-5]\d)(?:\D|$)`),
	},
	{
		// Jhhmm±dd[mm] — truncated pulsar-style designations
		name: "short",
		re: regexp.MustCompile(`[JB](?P<rh>[0-2]\d)(?P<rm>[0-5]\d)` +
			`(?P<sign>[+-])(?P<dd>\d{2})(?P<dm>[0-5]\d)?(?:\D|$)`),
	},
}

// Extract attempts to decode an embedded coordinate from an object name.
// The boolean is false when no convention structurally matches, which is
// the expected outcome for ordinary catalog names; the caller then proceeds
// to network resolution. Extraction is idempotent over the name.
func Extract(name string) (coordinates.ICRS, bool) {
	coord, _, ok := extract(name)
	return coord, ok
}

// PatternName reports which naming convention matches the name, without
// decoding. Useful for diagnostics.
func PatternName(name string) (string, bool) {
	_, pat, ok := extract(name)
	return pat, ok
}

func extract(name string) (coordinates.ICRS, string, bool) {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		coord, err := decode(p.re, m)
		if err != nil {
			// Structurally matched but out of range; a stricter
			// convention cannot rescue it, try the looser ones.
			continue
		}
		return coord, p.name, true
	}
	return coordinates.ICRS{}, "", false
}

// decode converts the named digit groups of a match into decimal degrees.
func decode(re *regexp.Regexp, match []string) (coordinates.ICRS, error) {
	groups := make(map[string]string)
	for i, n := range re.SubexpNames() {
		if n != "" && i < len(match) {
			groups[n] = match[i]
		}
	}

	rh := mustInt(groups["rh"])
	rm := mustInt(groups["rm"])
	rs := float64(mustInt(groups["rs"])) + fraction(groups["rf"])

	sign := 1
	if groups["sign"] == "-" {
		sign = -1
	}
	dd := mustInt(groups["dd"])
	dm := mustInt(groups["dm"])
	ds := float64(mustInt(groups["ds"])) + fraction(groups["df"])

	if rh > 23 {
		return coordinates.ICRS{}, &outOfRangeError{}
	}

	ra := coordinates.RAFromHMS(rh, rm, rs)
	dec := coordinates.DecFromDMS(sign, dd, dm, ds)
	return coordinates.New(ra, dec)
}

type outOfRangeError struct{}

func (*outOfRangeError) Error() string { return "embedded coordinate out of range" }

// fraction interprets trailing fraction digits, with or without a dot in
// the original designation: "57" after "132411" means 0.57 seconds.
func fraction(digits string) float64 {
	if digits == "" {
		return 0
	}
	v := float64(mustInt(digits))
	for range digits {
		v /= 10
	}
	return v
}

// mustInt parses digit groups already constrained by the regexp.
// An empty (unmatched optional) group decodes as zero.
func mustInt(s string) int {
	if s == "" {
		return 0
	}
	v, _ := strconv.Atoi(s)
	return v
}
