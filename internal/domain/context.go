package domain

// ConnectionContext holds the resolved connection parameters for one
// retrieval run. Immutable once built; never persisted.
type ConnectionContext struct {
	BaseURL            string `json:"base_url"`
	AppKey             string `json:"-"` // tenant key, sent as the x-app-key header
	HotelID            string `json:"hotel_id"`
	ExternalSystemCode string `json:"external_system_code"`
}

// Credentials carries the password-grant inputs. Sensitive: held in memory
// only, used exactly once to obtain a token, and excluded from any output.
type Credentials struct {
	ClientID     string `json:"-"`
	ClientSecret string `json:"-"`
	Username     string `json:"-"`
	Password     string `json:"-"`
}

// AccessToken is a short-lived bearer token. No expiry is tracked: a token
// lives for the duration of one run and must never be reused with a
// different ConnectionContext.
type AccessToken struct {
	Value string `json:"-"`
}

// RunRequest bundles everything one retrieval run needs. It is threaded
// explicitly through the pipeline; there is no ambient session state.
type RunRequest struct {
	Context     ConnectionContext
	Credentials Credentials
	Range       DateRange
}
