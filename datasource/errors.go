package datasource

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrNoWeatherData is matched by every fetch failure, whatever its cause
var ErrNoWeatherData = errors.New("no weather data available")

// maxErrorBody caps how much of an error response ends up in a log line
const maxErrorBody = 256

// FetchError describes a failed request against a provider endpoint
type FetchError struct {
	Provider   string
	Endpoint   string
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *FetchError) Error() string {
	b := strings.Builder{}
	b.WriteString(e.Provider)
	b.WriteString(" ")
	b.WriteString(e.Endpoint)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports every FetchError as ErrNoWeatherData
func (e *FetchError) Is(target error) bool {
	return target == ErrNoWeatherData
}

// IsStatusError returns true if err is a FetchError carrying the given HTTP status
func IsStatusError(err error, status int) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.StatusCode == status
	}
	return false
}

func truncateBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}
