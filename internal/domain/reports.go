package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ReconciliationRow joins one retrieved statistics row to one reference row
// on occupancy-date equality.
//
// Sign convention (public contract): diffs are reference minus primary, so a
// positive RoomsDiff means the reference dataset shows more rooms than the
// PMS reported.
type ReconciliationRow struct {
	Date               Date            `json:"date"`
	RoomsSoldPrimary   int64           `json:"rooms_sold_primary"`
	RoomsSoldReference int64           `json:"rooms_sold_reference"`
	RoomsDiff          int64           `json:"rooms_diff"`
	RevenuePrimary     decimal.Decimal `json:"revenue_primary"`
	RevenueReference   decimal.Decimal `json:"revenue_reference"`
	RevenueDiff        decimal.Decimal `json:"revenue_diff"`
}

// Accuracy is a ratio that may be undefined. When a bucket's denominator sum
// is zero the ratio is undefined, not an error and not zero; it marshals as
// null.
type Accuracy struct {
	Valid bool
	Value decimal.Decimal
}

func (a Accuracy) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}

func (a *Accuracy) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Accuracy{}
		return nil
	}
	if err := json.Unmarshal(data, &a.Value); err != nil {
		return err
	}
	a.Valid = true
	return nil
}

// BucketMetrics summarizes accuracy over one past/future bucket:
// 1 - sum(|diff|) / sum(|primary|), per field.
type BucketMetrics struct {
	Rows            int      `json:"rows"`
	RoomsAccuracy   Accuracy `json:"rooms_accuracy"`
	RevenueAccuracy Accuracy `json:"revenue_accuracy"`
}

// SummaryMetrics splits joined rows at the run date: past covers dates
// strictly before it, future covers the run date onward.
type SummaryMetrics struct {
	RunDate Date          `json:"run_date"`
	Past    BucketMetrics `json:"past"`
	Future  BucketMetrics `json:"future"`
}

// UnmatchedDates lists dates present on only one side of the join. The diff
// table is an inner join; this section keeps the dropped dates visible.
type UnmatchedDates struct {
	Count         int    `json:"count"`
	PrimaryOnly   []Date `json:"primary_only"`
	ReferenceOnly []Date `json:"reference_only"`
}

// ReconciliationReport is the full output of one reconciliation pass.
type ReconciliationReport struct {
	Summary   SummaryMetrics      `json:"summary"`
	Rows      []ReconciliationRow `json:"rows"`
	Unmatched UnmatchedDates      `json:"unmatched"`
}
