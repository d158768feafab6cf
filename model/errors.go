package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrValidation marks input that failed a business rule. Handlers map it to 400.
var ErrValidation = errors.New("validation failed")

// DateLayout is the storage and wire format for business dates.
const DateLayout = "2006-01-02"

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// normalizeDate trims s and falls back to def when empty. A non-empty value must parse.
func normalizeDate(field, s, def string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", invalid("%s must be a YYYY-MM-DD date", field)
	}
	return s, nil
}

// optionalDate is normalizeDate for nullable columns such as due dates.
func optionalDate(field string, s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v, err := normalizeDate(field, *s, "")
	if err != nil {
		return nil, err
	}
	if v == "" {
		return nil, nil
	}
	return &v, nil
}

func required(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid("%s is required", field)
	}
	return s, nil
}
