// =============================================================================
// Contentful CSV Importer - Value Coercion
// =============================================================================
//
// This module turns a raw cell string into a typed value. The steps form a
// pipeline; each step sees the output of the previous one.
//
// PIPELINE:
//   1. Reference detection
//        "ref-abc123"   -> Reference{Entry, "abc123"}
//        "refa-xyz"     -> Reference{Asset, "xyz"}
//      A matched reference is final; no later step runs.
//   2. Primitive coercion (skipped when "nocast" is set)
//        "true"/"false" -> Boolean
//        "null"         -> Null
//        "-12.5", "42"  -> Number
//   3. Geo-point detection, only while the value is still a string
//        "12.5, -3.2"   -> GeoPoint{12.5, -3.2}
//
// Both halves of a geo pair must carry a decimal part; "1,2" stays a string
// so that integer lists are not mistaken for coordinates.
//
// =============================================================================

package converter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ginjaninja78/cfimp/internal/config"
	"github.com/ginjaninja78/cfimp/internal/types"
)

var (
	referencePattern = regexp.MustCompile(`^ref(a)?-(.+)$`)
	numberPattern    = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)
	geoPattern       = regexp.MustCompile(`^(-?\d+\.\d+)\s*,\s*(-?\d+\.\d+)$`)
)

// Coerce converts one raw cell into a typed value.
//
// PARAMETERS:
//   - raw: The cell text. Surrounding whitespace is ignored.
//   - cfg: The run configuration; only NoCast is consulted.
//
// RETURNS:
//   - The coerced value. Coerce never fails: anything unrecognized is
//     returned as a string.
func Coerce(raw string, cfg *config.RunConfig) types.Value {
	s := strings.TrimSpace(raw)

	if ref, ok := coerceReference(s); ok {
		return ref
	}

	v := types.String(s)
	if !cfg.NoCast {
		v = coercePrimitive(s)
	}

	if v.IsString() {
		v = coerceGeoPoint(v)
	}

	return v
}

// coerceReference detects "ref-<id>" and "refa-<id>".
func coerceReference(s string) (types.Value, bool) {
	m := referencePattern.FindStringSubmatch(s)
	if m == nil {
		return types.Value{}, false
	}

	linkType := types.LinkEntry
	if m[1] != "" {
		linkType = types.LinkAsset
	}
	return types.Reference(linkType, m[2]), true
}

// coercePrimitive maps boolean, null and number literals.
func coercePrimitive(s string) types.Value {
	switch s {
	case "true":
		return types.Bool(true)
	case "false":
		return types.Bool(false)
	case "null":
		return types.Null()
	}

	if numberPattern.MatchString(s) {
		// Digit runs too long for a float64 stay strings.
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return types.Number(n)
		}
	}

	return types.String(s)
}

// coerceGeoPoint splits "<lat>, <lon>" into a GeoPoint.
func coerceGeoPoint(v types.Value) types.Value {
	m := geoPattern.FindStringSubmatch(v.Str)
	if m == nil {
		return v
	}

	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return v
	}
	lon, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return v
	}
	return types.GeoPoint(lat, lon)
}
