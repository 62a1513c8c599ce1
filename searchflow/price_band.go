package searchflow

import (
	"errors"
	"fmt"
)

// PriceBand is a fixed price bucket. Labels describe per-person ranges, but
// filtering only ever compares the ID against a record's price_level code.
type PriceBand struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// PriceBands is the fixed band table, indexed by ID.
var PriceBands = [...]PriceBand{
	{ID: 0, Label: "<25K/org"},
	{ID: 1, Label: "25K-75K/org"},
	{ID: 2, Label: "75K-150K/org"},
	{ID: 3, Label: "150K - 250K/org"},
	{ID: 4, Label: "250K - 400K/org"},
	{ID: 5, Label: ">400K/org"},
}

var ErrUnknownBand = errors.New("unknown price band")

// BandByID looks up a band in PriceBands.
func BandByID(id int) (PriceBand, error) {
	if id < 0 || id >= len(PriceBands) {
		return PriceBand{}, fmt.Errorf("%w: %d", ErrUnknownBand, id)
	}
	return PriceBands[id], nil
}

// Selection holds at most one selected band. The zero value selects nothing.
type Selection struct {
	band *PriceBand
}

// Band returns the selected band, if any.
func (s Selection) Band() (PriceBand, bool) {
	if s.band == nil {
		return PriceBand{}, false
	}
	return *s.band, true
}

// IsSelected reports whether id is the selected band.
func (s Selection) IsSelected(id int) bool {
	return s.band != nil && s.band.ID == id
}

// Toggle returns the selection after clicking band id: choosing the selected
// band clears it, choosing any other band replaces it. selected reports
// whether a band is selected afterwards.
func (s Selection) Toggle(id int) (next Selection, selected bool, err error) {
	band, err := BandByID(id)
	if err != nil {
		return s, s.band != nil, err
	}
	if s.IsSelected(id) {
		return Selection{}, false, nil
	}
	return Selection{band: &band}, true, nil
}

// FilterByBand keeps the records whose price level equals the selected band
// ID. With nothing selected the input slice is returned as is.
func FilterByBand(records []ResultRecord, sel Selection) []ResultRecord {
	band, ok := sel.Band()
	if !ok {
		return records
	}

	filtered := make([]ResultRecord, 0, len(records))
	for _, rec := range records {
		if level, ok := rec.PriceLevel(); ok && level == band.ID {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
