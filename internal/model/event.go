package model

import (
	"encoding/json"
	"fmt"
)

// ValueKind tags which side of the stat-value variant is populated.
type ValueKind string

const (
	KindFloat  ValueKind = "float"
	KindString ValueKind = "string"
)

// StatValue is a tagged variant: a stat is EITHER a number (seeds found,
// distance walked) OR a piece of text (favourite colour), decided per event
// when the event is defined.
//
// WHY A VARIANT AND NOT TWO NULLABLE FIELDS?
// The database stores two nullable columns (value_float, value_string) plus
// a type tag, because that's what SQL can express. Carrying that shape
// through the whole program means every reader must re-check the tag and
// remember which field is meaningful. Translating to a tagged variant at the
// repository edge makes the invariant structural: there is exactly one
// value, and Kind says what it is.
type StatValue struct {
	Kind  ValueKind
	Float float64
	Text  string
}

// FloatStat builds a float-kind stat value.
func FloatStat(v float64) StatValue {
	return StatValue{Kind: KindFloat, Float: v}
}

// TextStat builds a string-kind stat value.
func TextStat(s string) StatValue {
	return StatValue{Kind: KindString, Text: s}
}

// MarshalJSON emits the populated side only: a bare JSON number for
// float-kind values, a bare JSON string for string-kind values.
func (v StatValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindFloat:
		return json.Marshal(v.Float)
	case KindString:
		return json.Marshal(v.Text)
	default:
		return nil, fmt.Errorf("model: unknown stat value kind %q", v.Kind)
	}
}

// UnmarshalJSON accepts either a JSON number or a JSON string and tags the
// value accordingly. Used by tests and any future API that round-trips views.
func (v *StatValue) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = FloatStat(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("model: stat value is neither number nor string: %w", err)
	}
	*v = TextStat(s)
	return nil
}

// Event is a catalog entry: something a goober can experience, plus the
// named statistic it contributes. Events are created administratively and
// immutable thereafter — history generation only reads them.
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StatName    string    `json:"stat_name"`
	Value       StatValue `json:"-"` // exposed through views, not raw marshalling
}
