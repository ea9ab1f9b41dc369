package query

import (
	"strconv"
	"time"
)

// Kind is the stored type of a filterable field.
type Kind int

const (
	String Kind = iota
	Number
	Bool
	Time
)

// Schema declares the kind of the fields a resource can be filtered on.
// Fields missing from the schema are treated loosely: comparison values that
// look numeric become numbers, equality values stay strings.
type Schema map[string]Kind

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

// coerce converts a raw query-string value to the type stored for field.
// Values that cannot be converted are returned unchanged so the store simply
// matches nothing.
func (s Schema) coerce(field, raw string, comparison bool) interface{} {
	kind, known := s[field]
	if !known {
		if comparison {
			if n, err := strconv.ParseFloat(raw, 64); err == nil {
				return n
			}
		}
		return raw
	}

	switch kind {
	case Number:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n
		}
	case Bool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	case Time:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.UTC()
			}
		}
	}
	return raw
}
