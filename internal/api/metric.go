package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MetricValue is a measurement numeric as it appears on the wire. Older
// clients send decimal strings ("72.5") where newer ones send JSON numbers;
// both decode to the same value, and null or an empty string reads as unset.
// Everything past the request DTOs only ever sees *float64.
type MetricValue struct {
	value *float64
}

func (v *MetricValue) UnmarshalJSON(data []byte) error {
	v.value = nil
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}

	if trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid numeric value %q", raw)
		}
		v.value = &parsed
		return nil
	}

	var parsed float64
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	v.value = &parsed
	return nil
}

func (v MetricValue) MarshalJSON() ([]byte, error) {
	if v.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*v.value)
}

// Float returns the normalized value, nil when unset.
func (v MetricValue) Float() *float64 { return v.value }
