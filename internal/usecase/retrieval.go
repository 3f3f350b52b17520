package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/labstack/gommon/log"

	"pms-data-checker/internal/domain"
)

// DefaultWorkers bounds how many sub-range pipelines run concurrently.
const DefaultWorkers = 2

// RetrievalUseCase drives one statistics retrieval run: authenticate, split
// the requested range, run each sub-range's submit/poll/fetch pipeline as an
// independent unit of work, and aggregate the payloads in sub-range order.
type RetrievalUseCase struct {
	auth         Authenticator
	reports      ReportClient
	maxRangeDays int
	workers      int
}

// NewRetrievalUseCase creates a new instance of the usecase. Non-positive
// limits fall back to the defaults.
func NewRetrievalUseCase(auth Authenticator, reports ReportClient, maxRangeDays, workers int) *RetrievalUseCase {
	if maxRangeDays <= 0 {
		maxRangeDays = DefaultMaxRangeDays
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &RetrievalUseCase{
		auth:         auth,
		reports:      reports,
		maxRangeDays: maxRangeDays,
		workers:      workers,
	}
}

// Retrieve executes the run described by req. Authentication and range
// validation failures abort the run; a failing sub-range only marks its own
// outcome, and the remaining sub-ranges still settle.
func (uc *RetrievalUseCase) Retrieve(ctx context.Context, req domain.RunRequest) (*domain.RetrievalResult, error) {
	if err := req.Range.Validate(); err != nil {
		return nil, err
	}

	token, err := uc.auth.Authenticate(ctx, req.Context, req.Credentials)
	if err != nil {
		return nil, fmt.Errorf("could not authenticate: %w", err)
	}
	log.Infof("[Retrieve] Authenticated against %s for hotel %s", req.Context.BaseURL, req.Context.HotelID)

	ranges := SplitRange(req.Range, uc.maxRangeDays)
	log.Infof("[Retrieve] Split %s into %d sub-range(s)", req.Range, len(ranges))

	outcomes := make([]domain.RangeOutcome, len(ranges))
	perRange := make([][]domain.StatRecord, len(ranges))

	sem := make(chan struct{}, uc.workers)
	var wg sync.WaitGroup
	for i, r := range ranges {
		wg.Add(1)
		go func(i int, r domain.DateRange) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					log.Errorf("[Retrieve] Panic recovered in sub-range %d (%s): %v", i, r, rec)
					outcomes[i] = domain.RangeOutcome{
						Index: i,
						Range: r,
						Err:   fmt.Errorf("sub-range pipeline panic: %v", rec),
						Error: fmt.Sprintf("sub-range pipeline panic: %v", rec),
					}
				}
			}()

			sem <- struct{}{}
			defer func() { <-sem }()

			records, err := uc.retrieveRange(ctx, req.Context, token, r)
			outcome := domain.RangeOutcome{Index: i, Range: r, RecordCount: len(records)}
			if err != nil {
				log.Errorf("[Retrieve] Sub-range %d (%s) failed: %v", i, r, err)
				outcome.Err = err
				outcome.Error = err.Error()
			} else {
				log.Infof("[Retrieve] Sub-range %d (%s) returned %d record(s)", i, r, len(records))
				perRange[i] = records
			}
			outcomes[i] = outcome
		}(i, r)
	}
	wg.Wait()

	result := &domain.RetrievalResult{Ranges: outcomes}
	for i := range outcomes {
		if outcomes[i].Err != nil {
			result.RangesFailed++
			continue
		}
		result.RangesCompleted++
		result.Statistics = append(result.Statistics, perRange[i]...)
	}
	log.Infof("[Retrieve] Run finished: %d completed, %d failed, %d record(s)",
		result.RangesCompleted, result.RangesFailed, len(result.Statistics))

	return result, nil
}

// retrieveRange runs the three dependent protocol calls for one sub-range.
func (uc *RetrievalUseCase) retrieveRange(ctx context.Context, cc domain.ConnectionContext, token domain.AccessToken, r domain.DateRange) ([]domain.StatRecord, error) {
	location, err := uc.reports.SubmitReport(ctx, cc, token, r)
	if err != nil {
		return nil, fmt.Errorf("submit %s: %w", r, err)
	}

	readyURL, err := uc.reports.PollUntilReady(ctx, cc, token, location)
	if err != nil {
		return nil, fmt.Errorf("poll %s: %w", r, err)
	}

	records, err := uc.reports.FetchReport(ctx, cc, token, readyURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", r, err)
	}
	return records, nil
}
