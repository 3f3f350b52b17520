package usecase

import (
	"context"

	"pms-data-checker/internal/domain"
)

// The usecase layer depends on these interfaces, not on concrete gateways.
//
//go:generate mockgen -destination=mocks/mock_gateways.go -source=interface.go

// Authenticator exchanges user credentials for a short-lived bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context, cc domain.ConnectionContext, creds domain.Credentials) (domain.AccessToken, error)
}

// ReportClient drives the asynchronous report protocol for one sub-range:
// submit a job, poll the returned handle until ready, fetch the payload.
// The three calls are strictly sequential and dependent.
type ReportClient interface {
	SubmitReport(ctx context.Context, cc domain.ConnectionContext, token domain.AccessToken, r domain.DateRange) (string, error)
	PollUntilReady(ctx context.Context, cc domain.ConnectionContext, token domain.AccessToken, locationURL string) (string, error)
	FetchReport(ctx context.Context, cc domain.ConnectionContext, token domain.AccessToken, readyURL string) ([]domain.StatRecord, error)
}

// ReferenceRepository loads the externally supplied reference dataset.
type ReferenceRepository interface {
	GetReferenceRecords(ctx context.Context, path string) ([]domain.ReferenceRecord, error)
}
