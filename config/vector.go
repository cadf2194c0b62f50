package config

import (
	"strconv"
	"strings"
)

// Vector is a config vector value written as "(x, y)" or "(x, y, z)".
type Vector struct {
	X, Y, Z float64
}

// ParseVector parses "(x, y[, z])". A bare number n parses as (n, n).
func ParseVector(s string) (Vector, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Vector{}, false
	}

	if !strings.HasPrefix(s, "(") {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Vector{}, false
		}
		return Vector{X: n, Y: n}, true
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	parts := strings.Split(inner, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return Vector{}, false
	}

	var vals [3]float64
	for i, p := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Vector{}, false
		}
		vals[i] = n
	}
	return Vector{X: vals[0], Y: vals[1], Z: vals[2]}, true
}

func (v Vector) String() string {
	if v.Z != 0 {
		return "(" + formatFloat(v.X) + ", " + formatFloat(v.Y) + ", " + formatFloat(v.Z) + ")"
	}
	return "(" + formatFloat(v.X) + ", " + formatFloat(v.Y) + ")"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
