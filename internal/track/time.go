package track

import (
	"fmt"
	"strings"
	"time"
)

// xmlTime decodes GPX timestamps. GPX mandates RFC 3339 / ISO 8601 UTC
// times but files in the wild contain surrounding whitespace and empty
// elements, which decode as a zero time rather than an error.
type xmlTime struct {
	time.Time
}

func (t *xmlTime) UnmarshalText(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid GPX timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}
