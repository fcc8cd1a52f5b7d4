package dataset

import (
	"sort"

	"realestate-backend/internal/models"
)

// Snapshot is one complete, immutable loaded dataset: the records, the
// per-area slices (year ascending) and the area index built from them.
// Replacing the dataset builds a fresh Snapshot; an existing one is never
// mutated, so concurrent readers need no locking.
type Snapshot struct {
	records []models.Record
	byArea  map[string][]models.Record
	index   *AreaIndex
}

// NewSnapshot builds a snapshot from an ordered record sequence.
// Canonical area order follows first appearance in the input.
func NewSnapshot(records []models.Record) *Snapshot {
	byArea := make(map[string][]models.Record)
	var areas []string

	for _, rec := range records {
		if rec.Area == "" {
			continue
		}
		if _, seen := byArea[rec.Area]; !seen {
			areas = append(areas, rec.Area)
		}
		byArea[rec.Area] = append(byArea[rec.Area], rec)
	}

	for area := range byArea {
		rows := byArea[area]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })
	}

	return &Snapshot{
		records: records,
		byArea:  byArea,
		index:   NewAreaIndex(areas, nil),
	}
}

// RecordsFor returns the records for a canonical area id, sorted by year
// ascending, optionally restricted to a year range. A valid area with no
// rows yields an empty slice, never an error.
func (s *Snapshot) RecordsFor(areaID string, yr *models.YearRange) []models.Record {
	rows := s.byArea[areaID]
	if yr == nil {
		out := make([]models.Record, len(rows))
		copy(out, rows)
		return out
	}

	out := make([]models.Record, 0, len(rows))
	for _, rec := range rows {
		if yr.Contains(rec.Year) {
			out = append(out, rec)
		}
	}
	return out
}

// Resolve maps a name fragment to a canonical area id via the area index.
func (s *Snapshot) Resolve(fragment string) (string, bool) {
	return s.index.Resolve(fragment)
}

// Areas returns the canonical area ids in dataset order.
func (s *Snapshot) Areas() []string {
	return s.index.Areas()
}

// Len returns the total number of loaded records.
func (s *Snapshot) Len() int {
	return len(s.records)
}
