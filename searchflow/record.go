package searchflow

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ResultRecord is one search hit. The flow only interprets price_level; every
// other field is kept as raw JSON and read on demand for display.
type ResultRecord struct {
	raw    json.RawMessage
	fields map[string]json.RawMessage
}

// NewResultRecord builds a record from a JSON object.
func NewResultRecord(data []byte) (ResultRecord, error) {
	var rec ResultRecord
	err := rec.UnmarshalJSON(data)
	return rec, err
}

func (r *ResultRecord) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errors.New("search result is not a JSON object")
	}

	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return err
	}
	r.raw = append(json.RawMessage(nil), trimmed...)
	r.fields = fields
	return nil
}

func (r ResultRecord) MarshalJSON() ([]byte, error) {
	if r.raw == nil {
		return []byte("{}"), nil
	}
	return r.raw, nil
}

// Raw returns the record exactly as the server sent it.
func (r ResultRecord) Raw() json.RawMessage {
	return r.raw
}

// PriceLevel parses price_level, which the backend sends either as a number
// or as a numeric string. Missing, empty, non-integral and out-of-range values
// report false.
func (r ResultRecord) PriceLevel() (int, bool) {
	raw, ok := r.fields["price_level"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return 0, false
	}

	var value float64
	switch {
	case json.Unmarshal(raw, &value) == nil:
	default:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		value = parsed
	}

	// Codes are small; reject anything past int32 before converting.
	if value != math.Trunc(value) || math.Abs(value) > math.MaxInt32 {
		return 0, false
	}
	return int(value), true
}

// String reads a string field, or "" when absent or of another type.
func (r ResultRecord) String(field string) string {
	var s string
	if raw, ok := r.fields[field]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

// Number reads a numeric field, or 0 when absent or of another type.
func (r ResultRecord) Number(field string) float64 {
	var n float64
	if raw, ok := r.fields[field]; ok {
		_ = json.Unmarshal(raw, &n)
	}
	return n
}

func (r ResultRecord) Name() string {
	if name := r.String("gofood_name"); name != "" {
		return name
	}
	return r.String("name")
}

func (r ResultRecord) PlaceID() string {
	return r.String("place_id")
}

func (r ResultRecord) Rating() float64 {
	return r.Number("rating")
}

// Address flattens address_components, which is either a plain string or a
// list of Google-style {long_name} parts.
func (r ResultRecord) Address() string {
	raw, ok := r.fields["address_components"]
	if !ok {
		return ""
	}

	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}

	var parts []struct {
		LongName string `json:"long_name"`
	}
	if json.Unmarshal(raw, &parts) != nil {
		return ""
	}
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.LongName != "" {
			names = append(names, p.LongName)
		}
	}
	return strings.Join(names, ", ")
}

// Hours returns the opening_hours entry for a lowercase weekday.
func (r ResultRecord) Hours(weekday string) string {
	var hours map[string]string
	if raw, ok := r.fields["opening_hours"]; ok {
		_ = json.Unmarshal(raw, &hours)
	}
	return hours[strings.ToLower(weekday)]
}
