// Package validate checks registration payloads before any store access.
// Rules run in a fixed order (presence, type, whitespace, length) and the
// first violation wins, except that a too-short field is always reported
// before a too-long one.
package validate

import (
	"fmt"
	"strings"
)

// Kind identifies the rule a field violated.
type Kind string

const (
	MissingField   Kind = "missing_field"
	InvalidType    Kind = "invalid_type"
	UntrimmedValue Kind = "untrimmed_value"
	TooShort       Kind = "too_short"
	TooLong        Kind = "too_long"
)

const (
	MinUsernameLen = 1
	MinPasswordLen = 4
	// MaxPasswordLen is the bcrypt input limit. Longer passwords are rejected
	// rather than silently truncated by the hash.
	MaxPasswordLen = 72
)

// registrationFields lists the required fields in evaluation order.
var registrationFields = []string{"username", "password"}

// FieldError describes a single validation failure. Bound is only set for
// length violations.
type FieldError struct {
	Kind  Kind
	Field string
	Bound int
}

// Message returns the human-readable text shown to the client verbatim.
func (e *FieldError) Message() string {
	switch e.Kind {
	case MissingField:
		return "Missing required field"
	case InvalidType:
		return "Must be a string"
	case UntrimmedValue:
		return "Cannot start or end with whitespace"
	case TooShort:
		return fmt.Sprintf("Must be at least %d characters", e.Bound)
	case TooLong:
		return fmt.Sprintf("Must be at most %d characters", e.Bound)
	}
	return "Invalid value"
}

// Registration validates a decoded registration payload. It returns nil when
// the payload is valid, or the first violated rule. It never touches the
// store and has no side effects.
func Registration(payload map[string]any) *FieldError {
	for _, f := range registrationFields {
		if _, ok := payload[f]; !ok {
			return &FieldError{Kind: MissingField, Field: f}
		}
	}

	for _, f := range registrationFields {
		if _, ok := payload[f].(string); !ok {
			return &FieldError{Kind: InvalidType, Field: f}
		}
	}

	for _, f := range registrationFields {
		v := payload[f].(string)
		if v != strings.TrimSpace(v) {
			return &FieldError{Kind: UntrimmedValue, Field: f}
		}
	}

	// Length checks are evaluated across all fields: a too-short violation is
	// reported before a too-long one regardless of field order.
	for _, f := range registrationFields {
		n := len(payload[f].(string))
		if min := minLen(f); n < min {
			return &FieldError{Kind: TooShort, Field: f, Bound: min}
		}
	}
	if n := len(payload["password"].(string)); n > MaxPasswordLen {
		return &FieldError{Kind: TooLong, Field: "password", Bound: MaxPasswordLen}
	}

	return nil
}

func minLen(field string) int {
	if field == "password" {
		return MinPasswordLen
	}
	return MinUsernameLen
}
