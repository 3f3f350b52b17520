package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pms-data-checker/internal/domain"
)

// Protocol defaults. The request timeout bounds a single HTTP exchange; the
// poll timeout bounds the whole readiness loop for one job.
const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultPollInterval   = 10 * time.Second
	DefaultPollTimeout    = 10 * time.Minute
)

// PMSClient talks to the property-management system's OAuth and asynchronous
// reporting endpoints. It implements usecase.Authenticator and
// usecase.ReportClient.
type PMSClient struct {
	httpClient   *http.Client
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// PMSClientConfig configures a PMSClient. Zero values fall back to the
// protocol defaults.
type PMSClientConfig struct {
	HTTPClient   *http.Client
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// NewPMSClient creates a new client instance.
func NewPMSClient(cfg PMSClientConfig) *PMSClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultRequestTimeout}
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	pollTimeout := cfg.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = DefaultPollTimeout
	}
	return &PMSClient{
		httpClient:   httpClient,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Authenticate performs the password-grant token exchange. Any non-200
// response is an AuthError; credential failures are not retried.
func (c *PMSClient) Authenticate(ctx context.Context, cc domain.ConnectionContext, creds domain.Credentials) (domain.AccessToken, error) {
	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)
	form.Set("grant_type", "password")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cc.BaseURL+"/oauth/v1/tokens", strings.NewReader(form.Encode()))
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("x-app-key", cc.AppKey)
	req.SetBasicAuth(creds.ClientID, creds.ClientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.AccessToken{}, &domain.AuthError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return domain.AccessToken{}, fmt.Errorf("parse token response: %w", err)
	}
	if tr.AccessToken == "" {
		return domain.AccessToken{}, &domain.AuthError{
			StatusCode: resp.StatusCode,
			Message:    "token response carried no access_token",
		}
	}
	return domain.AccessToken{Value: tr.AccessToken}, nil
}

type reportRequest struct {
	DateRangeStart string   `json:"dateRangeStart"`
	DateRangeEnd   string   `json:"dateRangeEnd"`
	RoomTypes      []string `json:"roomTypes"`
}

// SubmitReport starts an asynchronous revenue/inventory statistics job for
// one sub-range. Success is signaled exclusively by 202 Accepted; the job
// handle travels in the Location header.
func (c *PMSClient) SubmitReport(ctx context.Context, cc domain.ConnectionContext, token domain.AccessToken, r domain.DateRange) (string, error) {
	payload, err := json.Marshal(reportRequest{
		DateRangeStart: r.Start.String(),
		DateRangeEnd:   r.End.String(),
		RoomTypes:      []string{""},
	})
	if err != nil {
		return "", fmt.Errorf("encode report request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/inv/async/v1/externalSystems/%s/hotels/%s/revenueInventoryStatistics",
		cc.BaseURL, cc.ExternalSystemCode, cc.HotelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(req, cc, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("report request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return "", &domain.SubmissionError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", &domain.SubmissionError{
			StatusCode: resp.StatusCode,
			Body:       "job accepted but no Location header returned",
		}
	}
	return location, nil
}

type pollClass int

const (
	pollReady pollClass = iota
	pollPending
	pollFatal
)

// classifyPollStatus is the single mapping from status codes to poll
// outcomes. 404 is treated like 202: the upstream materializes job handles
// lazily, so an early check can miss a job that is simply not visible yet.
// The poll timeout bounds the case where the job genuinely vanished.
func classifyPollStatus(statusCode int) pollClass {
	switch statusCode {
	case http.StatusCreated:
		return pollReady
	case http.StatusAccepted, http.StatusNotFound:
		return pollPending
	default:
		return pollFatal
	}
}

// PollUntilReady checks the job handle until the report is materialized,
// sleeping pollInterval between attempts. 201 returns the fetch handle from
// the Location header (falling back to the job handle when absent); 202 and
// 404 mean not ready yet; any other status is a fatal PollError. The loop is
// bounded by the configured poll timeout and honors context cancellation.
func (c *PMSClient) PollUntilReady(ctx context.Context, cc domain.ConnectionContext, token domain.AccessToken, locationURL string) (string, error) {
	deadline := time.Now().Add(c.pollTimeout)
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, locationURL, nil)
		if err != nil {
			return "", fmt.Errorf("build status request: %w", err)
		}
		c.setAuthHeaders(req, cc, token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return "", fmt.Errorf("status request: %w", err)
		}
		readyURL := resp.Header.Get("Location")
		statusCode := resp.StatusCode
		resp.Body.Close()

		switch classifyPollStatus(statusCode) {
		case pollReady:
			if readyURL == "" {
				readyURL = locationURL
			}
			return readyURL, nil
		case pollFatal:
			return "", &domain.PollError{
				Kind:       domain.PollServerError,
				StatusCode: statusCode,
				Message:    http.StatusText(statusCode),
			}
		}

		if time.Now().Add(c.pollInterval).After(deadline) {
			return "", &domain.PollError{
				Kind:    domain.PollTimeout,
				Message: fmt.Sprintf("gave up after %s", c.pollTimeout),
			}
		}
		select {
		case <-time.After(c.pollInterval):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

type statsResponse struct {
	RevInvStats []statRecord `json:"revInvStats"`
}

type statRecord struct {
	OccupancyDate string          `json:"occupancyDate"`
	RoomsSold     int64           `json:"roomsSold"`
	NetRevenue    decimal.Decimal `json:"netRevenue"`
}

// FetchReport downloads a ready report and extracts its nested statistics
// list.
func (c *PMSClient) FetchReport(ctx context.Context, cc domain.ConnectionContext, token domain.AccessToken, readyURL string) ([]domain.StatRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, readyURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}
	c.setAuthHeaders(req, cc, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.FetchError{
			StatusCode: resp.StatusCode,
			Reason:     resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read report payload: %w", err)
	}

	var sr statsResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, &domain.ParseError{
			Source: "report payload",
			Field:  "revInvStats",
			Reason: err.Error(),
		}
	}

	records := make([]domain.StatRecord, 0, len(sr.RevInvStats))
	for i, raw := range sr.RevInvStats {
		occupancyDate, err := domain.ParseDate(raw.OccupancyDate)
		if err != nil {
			return nil, &domain.ParseError{
				Source: "report payload",
				Row:    i,
				Field:  "occupancyDate",
				Reason: err.Error(),
			}
		}
		records = append(records, domain.StatRecord{
			OccupancyDate: occupancyDate,
			RoomsSold:     raw.RoomsSold,
			NetRevenue:    raw.NetRevenue,
		})
	}
	return records, nil
}

func (c *PMSClient) setAuthHeaders(req *http.Request, cc domain.ConnectionContext, token domain.AccessToken) {
	req.Header.Set("Authorization", "Bearer "+token.Value)
	req.Header.Set("x-app-key", cc.AppKey)
	req.Header.Set("x-hotelId", cc.HotelID)
}
