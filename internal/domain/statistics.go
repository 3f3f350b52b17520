package domain

import "github.com/shopspring/decimal"

// StatRecord is one row of the PMS revenue/inventory statistics payload,
// keyed by occupancy date.
type StatRecord struct {
	OccupancyDate Date            `json:"occupancyDate"`
	RoomsSold     int64           `json:"roomsSold"`
	NetRevenue    decimal.Decimal `json:"netRevenue"`
}

// ReferenceRecord is one row of the externally supplied reference dataset,
// normalized to the same semantic fields as StatRecord. Column names in the
// source file vary and are mapped by the gateway, not assumed literal.
type ReferenceRecord struct {
	OccupancyDate Date            `json:"occupancy_date"`
	RoomsSold     int64           `json:"rooms_sold"`
	NetRevenue    decimal.Decimal `json:"net_revenue"`
	Source        string          `json:"source"` // e.g. "reference.csv"
}

// RangeOutcome records how one sub-range pipeline settled. Sub-ranges are
// independent units of work: one failing outcome never invalidates the rest.
type RangeOutcome struct {
	Index       int       `json:"index"`
	Range       DateRange `json:"range"`
	RecordCount int       `json:"record_count"`
	Err         error     `json:"-"`
	Error       string    `json:"error,omitempty"`
}

// RetrievalResult is the aggregated output of one retrieval run.
// Statistics concatenates the per-range payloads in sub-range order.
type RetrievalResult struct {
	Statistics      []StatRecord   `json:"-"`
	Ranges          []RangeOutcome `json:"ranges"`
	RangesCompleted int            `json:"ranges_completed"`
	RangesFailed    int            `json:"ranges_failed"`
}
