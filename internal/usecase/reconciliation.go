package usecase

import (
	"context"
	"fmt"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"

	"pms-data-checker/internal/domain"
)

// ReconciliationUseCase aligns retrieved statistics against the reference
// dataset and computes the per-day diff table and summary accuracy metrics.
type ReconciliationUseCase struct {
	repo ReferenceRepository
}

// NewReconciliationUseCase creates a new instance of the usecase.
func NewReconciliationUseCase(repo ReferenceRepository) *ReconciliationUseCase {
	return &ReconciliationUseCase{repo: repo}
}

// Reconcile loads the reference dataset and joins it to the retrieved
// statistics on occupancy date. The diff table is an inner join; dates
// present on only one side are reported in the Unmatched section. Diffs are
// reference minus primary (see domain.ReconciliationRow).
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, primary []domain.StatRecord, referencePath string, runDate domain.Date) (*domain.ReconciliationReport, error) {
	reference, err := uc.repo.GetReferenceRecords(ctx, referencePath)
	if err != nil {
		return nil, fmt.Errorf("could not get reference records: %w", err)
	}
	log.Infof("[Reconcile] Joining %d retrieved row(s) against %d reference row(s)", len(primary), len(reference))

	report := buildReport(primary, reference, runDate)
	log.Infof("[Reconcile] Matched %d date(s), %d unmatched", len(report.Rows), report.Unmatched.Count)
	return report, nil
}

func buildReport(primary []domain.StatRecord, reference []domain.ReferenceRecord, runDate domain.Date) *domain.ReconciliationReport {
	// First occurrence wins on duplicate reference dates.
	refByDate := make(map[domain.Date]domain.ReferenceRecord, len(reference))
	for _, ref := range reference {
		if _, ok := refByDate[ref.OccupancyDate]; !ok {
			refByDate[ref.OccupancyDate] = ref
		}
	}

	report := &domain.ReconciliationReport{
		Summary: domain.SummaryMetrics{RunDate: runDate},
		Rows:    make([]domain.ReconciliationRow, 0, len(primary)),
		Unmatched: domain.UnmatchedDates{
			PrimaryOnly:   []domain.Date{},
			ReferenceOnly: []domain.Date{},
		},
	}

	matchedRef := make(map[domain.Date]bool, len(primary))
	for _, rec := range primary {
		ref, ok := refByDate[rec.OccupancyDate]
		if !ok {
			report.Unmatched.PrimaryOnly = append(report.Unmatched.PrimaryOnly, rec.OccupancyDate)
			continue
		}
		matchedRef[rec.OccupancyDate] = true
		report.Rows = append(report.Rows, domain.ReconciliationRow{
			Date:               rec.OccupancyDate,
			RoomsSoldPrimary:   rec.RoomsSold,
			RoomsSoldReference: ref.RoomsSold,
			RoomsDiff:          ref.RoomsSold - rec.RoomsSold,
			RevenuePrimary:     rec.NetRevenue,
			RevenueReference:   ref.NetRevenue,
			RevenueDiff:        ref.NetRevenue.Sub(rec.NetRevenue),
		})
	}
	for _, ref := range reference {
		if !matchedRef[ref.OccupancyDate] {
			report.Unmatched.ReferenceOnly = append(report.Unmatched.ReferenceOnly, ref.OccupancyDate)
		}
	}
	report.Unmatched.Count = len(report.Unmatched.PrimaryOnly) + len(report.Unmatched.ReferenceOnly)

	var past, future []domain.ReconciliationRow
	for _, row := range report.Rows {
		if row.Date.Time.Before(runDate.Time) {
			past = append(past, row)
		} else {
			future = append(future, row)
		}
	}
	report.Summary.Past = bucketMetrics(past)
	report.Summary.Future = bucketMetrics(future)

	return report
}

// bucketMetrics computes 1 - sum(|diff|)/sum(|primary|) per field. The ratio
// is undefined when the bucket's primary sum is zero.
func bucketMetrics(rows []domain.ReconciliationRow) domain.BucketMetrics {
	m := domain.BucketMetrics{Rows: len(rows)}

	var roomsDiffSum, roomsValueSum int64
	revenueDiffSum := decimal.Zero
	revenueValueSum := decimal.Zero
	for _, row := range rows {
		roomsDiffSum += abs64(row.RoomsDiff)
		roomsValueSum += abs64(row.RoomsSoldPrimary)
		revenueDiffSum = revenueDiffSum.Add(row.RevenueDiff.Abs())
		revenueValueSum = revenueValueSum.Add(row.RevenuePrimary.Abs())
	}

	if roomsValueSum != 0 {
		ratio := decimal.NewFromInt(roomsDiffSum).Div(decimal.NewFromInt(roomsValueSum))
		m.RoomsAccuracy = domain.Accuracy{Valid: true, Value: decimal.NewFromInt(1).Sub(ratio)}
	}
	if !revenueValueSum.IsZero() {
		ratio := revenueDiffSum.Div(revenueValueSum)
		m.RevenueAccuracy = domain.Accuracy{Valid: true, Value: decimal.NewFromInt(1).Sub(ratio)}
	}
	return m
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
