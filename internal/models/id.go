package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies an event or exam. Records created by this program carry
// numeric ids; imported records may carry arbitrary strings. An ID remembers
// whether it was read as a JSON number or a JSON string and is written back
// the same way.
type ID struct {
	value   string
	numeric bool
}

// NewID formats a numeric id.
func NewID(n int64) ID {
	return ID{value: strconv.FormatInt(n, 10), numeric: true}
}

// StringID wraps s as an id that encodes as a JSON string.
func StringID(s string) ID {
	return ID{value: s}
}

// ParseID reads an id typed by the user. Canonical integers become numeric
// ids, anything else a string id. Lookups compare values only, so the kind
// does not affect matching.
func ParseID(s string) ID {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(n, 10) == s {
		return NewID(n)
	}
	return StringID(s)
}

// Int returns the numeric value of the id, if it has one.
func (id ID) Int() (int64, bool) {
	n, err := strconv.ParseInt(id.value, 10, 64)
	if err != nil || strconv.FormatInt(n, 10) != id.value {
		return 0, false
	}
	return n, true
}

func (id ID) String() string { return id.value }

// Numeric reports whether the id encodes as a JSON number.
func (id ID) Numeric() bool { return id.numeric }

func (id ID) IsZero() bool { return id.value == "" }

// Equal compares ids by value. A string "42" and a number 42 name the same record.
func (id ID) Equal(other ID) bool { return id.value == other.value }

// MarshalJSON writes the id in the JSON kind it was read or created as.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON accepts a JSON number or string. Numbers are kept verbatim,
// so 1.0 is written back as 1.0.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("id must be a number or string: %w", err)
	}
	*id = ID{value: num.String(), numeric: true}
	return nil
}
