package dashboard

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnitSuffix returns the temperature suffix for an OpenWeatherMap units value
func UnitSuffix(units string) string {
	switch strings.ToLower(units) {
	case "metric":
		return "°C"
	case "standard":
		return "K"
	default:
		return "°F"
	}
}

// FormatTemp truncates v toward zero and appends the unit suffix, e.g. "72°F"
func FormatTemp(v float64, units string) string {
	return fmt.Sprintf("%d%s", int(v), UnitSuffix(units))
}

// Capitalize upper-cases the first character and leaves the rest unchanged
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
