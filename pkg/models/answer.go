package models

import (
	"math"
	"strconv"
	"strings"
)

// Answer is one recorded value for an item on a report day. Answers are
// append-only and keyed logically by (itemId, reportDate); a later write for
// the same key supersedes the earlier one through the store's upsert.
type Answer struct {
	ComponentID  string     `json:"componentId,omitempty"`
	ItemID       string     `json:"itemId"`
	Type         InputType  `json:"type"`
	Label        string     `json:"label,omitempty"`
	Value        any        `json:"value"`
	Errors       []string   `json:"errors,omitempty"`
	ReportType   ReportType `json:"reportType"`
	ReportDate   string     `json:"reportDate"`   // YYYY-MM-DD
	ReportNumber string     `json:"reportNumber"` // zero-padded global sequence, e.g. "00003"
}

// IsTrue reports whether the answer holds the boolean value true. Target and
// limit counting only ever considers true boolean answers.
func (a Answer) IsTrue() bool {
	b, ok := a.Value.(bool)
	return ok && b
}

// IsEmpty reports whether the answer carries no value.
func (a Answer) IsEmpty() bool {
	if a.Value == nil {
		return true
	}
	if s, ok := a.Value.(string); ok {
		return s == ""
	}
	if vs, ok := a.Value.([]string); ok {
		return len(vs) == 0
	}
	return false
}

// BoolValue returns the boolean value of the answer, or nil when the answer
// is missing or not a boolean. Used to build nullable series for statistics.
func (a Answer) BoolValue() *bool {
	if b, ok := a.Value.(bool); ok {
		return &b
	}
	return nil
}

// NumericValue returns the answer as a float64 when possible. Multicheckbox
// answers contribute their first selected value, matching how wellbeing
// ratings are recorded.
func (a Answer) NumericValue() (float64, bool) {
	switch v := a.Value.(type) {
	case float64:
		if math.IsNaN(v) {
			return 0, false
		}
		return v, true
	case int:
		return float64(v), true
	case string:
		return parseFloat(v)
	case []string:
		if len(v) > 0 {
			return parseFloat(v[0])
		}
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return parseFloat(s)
			}
		}
	}
	return 0, false
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
