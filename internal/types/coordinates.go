package types

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedCoordinates is returned when a coordinate string is not a valid "lat,lon" pair
var ErrMalformedCoordinates = errors.New("malformed coordinates")

type Coords struct {
	Latitude  float64 `json:"latitude" example:"-23.55"`
	Longitude float64 `json:"longitude" example:"-46.63"`
}

func NewCoords(latitude, longitude float64) Coords {
	return Coords{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

// LatLng returns the pair in [latitude, longitude] order, the order Leaflet expects
func (c Coords) LatLng() [2]float64 {
	return [2]float64{c.Latitude, c.Longitude}
}

// String formats the pair the way /dados carries it
func (c Coords) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// ParseCoordinates converts "lat,lon" into Coords. The string must hold exactly
// two finite numbers within latitude and longitude range.
func ParseCoordinates(s string) (Coords, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coords{}, fmt.Errorf("%w: expected 2 values, got %d in %q", ErrMalformedCoordinates, len(parts), s)
	}

	lat, err := parseCoordinate(parts[0])
	if err != nil {
		return Coords{}, fmt.Errorf("%w: latitude %q", ErrMalformedCoordinates, parts[0])
	}
	lon, err := parseCoordinate(parts[1])
	if err != nil {
		return Coords{}, fmt.Errorf("%w: longitude %q", ErrMalformedCoordinates, parts[1])
	}

	if lat < -90 || lat > 90 {
		return Coords{}, fmt.Errorf("%w: latitude %v out of range", ErrMalformedCoordinates, lat)
	}
	if lon < -180 || lon > 180 {
		return Coords{}, fmt.Errorf("%w: longitude %v out of range", ErrMalformedCoordinates, lon)
	}

	return NewCoords(lat, lon), nil
}

func parseCoordinate(token string) (float64, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errors.New("empty value")
	}
	if !decimalLiteral.MatchString(token) {
		return 0, fmt.Errorf("%q is not a decimal number", token)
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not a finite number")
	}
	return v, nil
}

// SplitCoordinates converts every comma-separated token with JavaScript Number()
// semantics: surrounding space is ignored, an empty token is 0, "Infinity" and
// the 0x, 0o and 0b integer prefixes are understood, and anything else that is
// not a plain decimal literal is NaN. It never fails.
func SplitCoordinates(s string) []float64 {
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		out[i] = jsNumber(p)
	}
	return out
}

// decimalLiteral is the decimal number grammar Number() accepts. ParseFloat is
// wider: it also takes hex floats, underscores, "inf" and "nan".
var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

func jsNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		if base := radixPrefix(s[1]); base != 0 {
			return radixInteger(s[2:], base)
		}
	}
	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	// Out of range literals come back as ±Inf, as in JavaScript
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}

func radixPrefix(c byte) int {
	switch c {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

// radixInteger parses unsigned digits of base; prefixed literals take no sign,
// fraction or exponent
func radixInteger(digits string, base int) float64 {
	if digits[0] == '+' || digits[0] == '-' {
		return math.NaN()
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return math.NaN()
	}
	v, _ := new(big.Float).SetInt(n).Float64()
	return v
}
