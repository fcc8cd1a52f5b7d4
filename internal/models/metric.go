package models

import "encoding/json"

// Metric is a numeric value that may be undefined when there is not enough
// data to compute it. Undefined is distinct from zero: a metric computed
// over zero records is undefined, never 0.
type Metric struct {
	Value float64
	Valid bool
}

// DefinedMetric returns a metric carrying a value.
func DefinedMetric(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// UndefinedMetric returns the undefined sentinel.
func UndefinedMetric() Metric {
	return Metric{}
}

// MarshalJSON emits the value, or null when the metric is undefined.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON reads a number or null.
func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Metric{}
		return nil
	}
	if err := json.Unmarshal(data, &m.Value); err != nil {
		return err
	}
	m.Valid = true
	return nil
}
