package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"pms-data-checker/internal/domain"
)

func testConnection(baseURL string) domain.ConnectionContext {
	return domain.ConnectionContext{
		BaseURL:            baseURL,
		AppKey:             "app-key",
		HotelID:            "HOTEL1",
		ExternalSystemCode: "EXT",
	}
}

var testCredentials = domain.Credentials{
	ClientID:     "client-id",
	ClientSecret: "client-secret",
	Username:     "user",
	Password:     "pass",
}

func newTestClient(pollInterval, pollTimeout time.Duration) *PMSClient {
	return NewPMSClient(PMSClientConfig{
		PollInterval: pollInterval,
		PollTimeout:  pollTimeout,
	})
}

func TestPMSClient_Authenticate(t *testing.T) {
	t.Run("success returns the token and sends the password grant", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/oauth/v1/tokens", r.URL.Path)
			assert.Equal(t, "app-key", r.Header.Get("x-app-key"))

			user, secret, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "client-id", user)
			assert.Equal(t, "client-secret", secret)

			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "user", r.PostForm.Get("username"))
			assert.Equal(t, "pass", r.PostForm.Get("password"))
			assert.Equal(t, "password", r.PostForm.Get("grant_type"))

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-abc"})
		}))
		defer server.Close()

		client := newTestClient(0, 0)
		token, err := client.Authenticate(context.Background(), testConnection(server.URL), testCredentials)

		assert.NoError(t, err)
		assert.Equal(t, "tok-abc", token.Value)
	})

	t.Run("non-200 yields AuthError with the original status and no token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid_grant", http.StatusUnauthorized)
		}))
		defer server.Close()

		client := newTestClient(0, 0)
		token, err := client.Authenticate(context.Background(), testConnection(server.URL), testCredentials)

		assert.Empty(t, token.Value)
		var ae *domain.AuthError
		assert.ErrorAs(t, err, &ae)
		assert.Equal(t, http.StatusUnauthorized, ae.StatusCode)
		assert.Contains(t, ae.Message, "invalid_grant")
	})

	t.Run("200 without an access_token is still an AuthError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := newTestClient(0, 0)
		_, err := client.Authenticate(context.Background(), testConnection(server.URL), testCredentials)

		var ae *domain.AuthError
		assert.ErrorAs(t, err, &ae)
	})
}

func TestPMSClient_SubmitReport(t *testing.T) {
	subRange := domain.DateRange{Start: domain.NewDate(2024, 1, 1), End: domain.NewDate(2024, 3, 1)}

	t.Run("202 returns the Location job handle", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/inv/async/v1/externalSystems/EXT/hotels/HOTEL1/revenueInventoryStatistics", r.URL.Path)
			assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
			assert.Equal(t, "app-key", r.Header.Get("x-app-key"))
			assert.Equal(t, "HOTEL1", r.Header.Get("x-hotelId"))

			var body struct {
				DateRangeStart string   `json:"dateRangeStart"`
				DateRangeEnd   string   `json:"dateRangeEnd"`
				RoomTypes      []string `json:"roomTypes"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "2024-01-01", body.DateRangeStart)
			assert.Equal(t, "2024-03-01", body.DateRangeEnd)
			assert.Equal(t, []string{""}, body.RoomTypes)

			w.Header().Set("Location", "/jobs/42")
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		client := newTestClient(0, 0)
		location, err := client.SubmitReport(context.Background(), testConnection(server.URL), domain.AccessToken{Value: "tok-abc"}, subRange)

		assert.NoError(t, err)
		assert.Equal(t, "/jobs/42", location)
	})

	t.Run("non-202 yields SubmissionError carrying the body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "date range too wide", http.StatusBadRequest)
		}))
		defer server.Close()

		client := newTestClient(0, 0)
		location, err := client.SubmitReport(context.Background(), testConnection(server.URL), domain.AccessToken{Value: "t"}, subRange)

		assert.Empty(t, location)
		var se *domain.SubmissionError
		assert.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusBadRequest, se.StatusCode)
		assert.Contains(t, se.Body, "date range too wide")
	})

	t.Run("202 without Location is a submission failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		client := newTestClient(0, 0)
		_, err := client.SubmitReport(context.Background(), testConnection(server.URL), domain.AccessToken{Value: "t"}, subRange)

		var se *domain.SubmissionError
		assert.ErrorAs(t, err, &se)
	})
}

func TestPMSClient_PollUntilReady(t *testing.T) {
	t.Run("pending N times then ready terminates after N+1 checks", func(t *testing.T) {
		var checks int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodHead, r.Method)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			if atomic.AddInt32(&checks, 1) <= 3 {
				w.WriteHeader(http.StatusAccepted)
				return
			}
			w.Header().Set("Location", "/results/42")
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := newTestClient(time.Millisecond, time.Second)
		ready, err := client.PollUntilReady(context.Background(), testConnection(server.URL), domain.AccessToken{Value: "tok"}, server.URL+"/jobs/42")

		assert.NoError(t, err)
		assert.Equal(t, "/results/42", ready)
		assert.Equal(t, int32(4), atomic.LoadInt32(&checks))
	})

	t.Run("404 is treated as pending, not fatal", func(t *testing.T) {
		var checks int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&checks, 1) == 1 {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Location", "/results/7")
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := newTestClient(time.Millisecond, time.Second)
		ready, err := client.PollUntilReady(context.Background(), testConnection(server.URL), domain.AccessToken{Value: "tok"}, server.URL+"/jobs/7")

		assert.NoError(t, err)
		assert.Equal(t, "/results/7", ready)
	})

	t.Run("ready without Location falls back to the job handle", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := newTestClient(time.Millisecond, time.Second)
		ready, err := client.PollUntilReady(context.Background(), testConnection(server.URL), domain.AccessToken{Value: "tok"}, server.URL+"/jobs/9")

		assert.NoError(t, err)
		assert.Equal(t, server.URL+"/jobs/9", ready)
	})

	t.Run("unexpected status is a fatal PollError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestClient(time.Millisecond, time.Second)
		_, err := client.PollUntilReady(context.Background(), testConnection(server.URL), domain.AccessToken{Value: "tok"}, server.URL+"/jobs/1")

		var pe *domain.PollError
		assert.ErrorAs(t, err, &pe)
		assert.Equal(t, domain.PollServerError, pe.Kind)
		assert.Equal(t, http.StatusInternalServerError, pe.StatusCode)
	})

	t.Run("never-ready job times out with PollError{Timeout}", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		client := newTestClient(5*time.Millisecond, 25*time.Millisecond)
		_, err := client.PollUntilReady(context.Background(), testConnection(server.URL), domain.AccessToken{Value: "tok"}, server.URL+"/jobs/2")

		var pe *domain.PollError
		assert.ErrorAs(t, err, &pe)
		assert.Equal(t, domain.PollTimeout, pe.Kind)
	})

	t.Run("cancellation interrupts the wait between checks", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()

		client := newTestClient(10*time.Second, time.Hour)
		_, err := client.PollUntilReady(ctx, testConnection(server.URL), domain.AccessToken{Value: "tok"}, server.URL+"/jobs/3")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPMSClient_FetchReport(t *testing.T) {
	t.Run("200 extracts the nested statistics list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"revInvStats": [
					{"occupancyDate": "2024-01-01", "roomsSold": 10, "netRevenue": 1234.56},
					{"occupancyDate": "2024-01-02", "roomsSold": 12, "netRevenue": 1500}
				]
			}`))
		}))
		defer server.Close()

		client := newTestClient(0, 0)
		records, err := client.FetchReport(context.Background(), testConnection(server.URL), domain.AccessToken{Value: "tok"}, server.URL+"/results/1")

		assert.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Equal(t, domain.NewDate(2024, 1, 1), records[0].OccupancyDate)
		assert.Equal(t, int64(10), records[0].RoomsSold)
		assert.True(t, records[0].NetRevenue.Equal(decimal.RequireFromString("1234.56")))
		assert.Equal(t, domain.NewDate(2024, 1, 2), records[1].OccupancyDate)
	})

	t.Run("empty payload yields an empty record list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"revInvStats": []}`))
		}))
		defer server.Close()

		client := newTestClient(0, 0)
		records, err := client.FetchReport(context.Background(), testConnection(server.URL), domain.AccessToken{Value: "tok"}, server.URL+"/results/1")

		assert.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("non-200 yields FetchError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusGone)
		}))
		defer server.Close()

		client := newTestClient(0, 0)
		records, err := client.FetchReport(context.Background(), testConnection(server.URL), domain.AccessToken{Value: "tok"}, server.URL+"/results/1")

		assert.Nil(t, records)
		var fe *domain.FetchError
		assert.ErrorAs(t, err, &fe)
		assert.Equal(t, http.StatusGone, fe.StatusCode)
	})

	t.Run("malformed occupancy date yields ParseError naming the row", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"revInvStats": [{"occupancyDate": "01-01-2024", "roomsSold": 1, "netRevenue": 1}]}`))
		}))
		defer server.Close()

		client := newTestClient(0, 0)
		_, err := client.FetchReport(context.Background(), testConnection(server.URL), domain.AccessToken{Value: "tok"}, server.URL+"/results/1")

		var pe *domain.ParseError
		assert.ErrorAs(t, err, &pe)
		assert.Equal(t, "occupancyDate", pe.Field)
		assert.Equal(t, 0, pe.Row)
	})
}

func TestClassifyPollStatus(t *testing.T) {
	assert.Equal(t, pollReady, classifyPollStatus(http.StatusCreated))
	assert.Equal(t, pollPending, classifyPollStatus(http.StatusAccepted))
	assert.Equal(t, pollPending, classifyPollStatus(http.StatusNotFound))
	assert.Equal(t, pollFatal, classifyPollStatus(http.StatusOK))
	assert.Equal(t, pollFatal, classifyPollStatus(http.StatusInternalServerError))
	assert.Equal(t, pollFatal, classifyPollStatus(http.StatusUnauthorized))
}
