package models

// Record is one row of the loaded real-estate dataset.
// Records are immutable once loaded; they are owned by the dataset snapshot.
type Record struct {
	Area   string  `json:"area"`
	Year   int     `json:"year"`
	Price  float64 `json:"price"`
	Demand float64 `json:"demand"`
}

// YearRange restricts a record lookup to [From, To] inclusive.
// A zero bound means open on that side.
type YearRange struct {
	From int
	To   int
}

// Contains reports whether a year falls inside the range.
func (r YearRange) Contains(year int) bool {
	if r.From != 0 && year < r.From {
		return false
	}
	if r.To != 0 && year > r.To {
		return false
	}
	return true
}
