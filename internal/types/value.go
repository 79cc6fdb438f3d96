// =============================================================================
// Contentful CSV Importer - Field Values
// =============================================================================
//
// A Value is the typed result of coercing one cell. It is a tagged union:
//
//   | Kind        | Payload          | JSON form                                  |
//   |-------------|------------------|--------------------------------------------|
//   | KindString  | Str              | "text"                                     |
//   | KindNumber  | Num              | 9.99                                       |
//   | KindBool    | Bool             | true                                       |
//   | KindNull    | (none)           | null                                       |
//   | KindGeo     | Lat, Lon         | {"lat":12.5,"lon":-3.2}                    |
//   | KindRef     | LinkType, ID     | {"sys":{"type":"Link","linkType":..,"id":..}} |
//
// =============================================================================

package types

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNull
	KindGeo
	KindRef
)

// String returns a readable kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	case KindGeo:
		return "geopoint"
	case KindRef:
		return "reference"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a coerced cell value. Use the constructors below; the zero Value
// is the empty string.
type Value struct {
	Kind     Kind
	Str      string
	Num      float64
	Bool     bool
	Lat      float64
	Lon      float64
	LinkType LinkType
	ID       string
}

// String creates a string value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number creates a numeric value.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// Bool creates a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Null creates the null value.
func Null() Value { return Value{Kind: KindNull} }

// GeoPoint creates a lat/lon pair.
func GeoPoint(lat, lon float64) Value { return Value{Kind: KindGeo, Lat: lat, Lon: lon} }

// Reference creates a link to an entry or asset.
func Reference(linkType LinkType, id string) Value {
	return Value{Kind: KindRef, LinkType: linkType, ID: id}
}

// IsString reports whether the value is still string-shaped.
func (v Value) IsString() bool { return v.Kind == KindString }

// Link returns the reference as a vendor link object. Only meaningful for KindRef.
func (v Value) Link() Link { return NewLink(v.LinkType, v.ID) }

// MarshalJSON encodes the value in the vendor's import format.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return MarshalNoEscape(v.Num)
	case KindBool:
		return MarshalNoEscape(v.Bool)
	case KindNull:
		return []byte("null"), nil
	case KindGeo:
		return MarshalNoEscape(struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		}{v.Lat, v.Lon})
	case KindRef:
		return MarshalNoEscape(v.Link())
	default:
		return MarshalNoEscape(v.Str)
	}
}

// MarshalNoEscape marshals v without HTML escaping and without the trailing
// newline json.Encoder appends. Cell text such as "<b>" stays as written.
func MarshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
