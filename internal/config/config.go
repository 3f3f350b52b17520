package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"pms-data-checker/internal/domain"
)

// file mirrors the configuration document accepted by the tool: the
// connection and credential fields nested under an "authentication" key.
type file struct {
	Authentication authentication `json:"authentication"`
}

type authentication struct {
	XAPIKey          string `json:"xapikey"`
	ClientID         string `json:"clientId"`
	Hostname         string `json:"hostname"`
	Password         string `json:"password"`
	Username         string `json:"username"`
	ChainCode        string `json:"chainCode"`
	ClientSecret     string `json:"clientSecret"`
	ExternalSystemID string `json:"externalSystemId"`
}

// Config is the resolved connection and credential configuration for one
// run. Secrets live here and nowhere else; use Redacted for display.
type Config struct {
	Hostname           string
	AppKey             string
	ClientID           string
	ClientSecret       string
	Username           string
	Password           string
	ChainCode          string
	ExternalSystemCode string
}

// Load reads the JSON configuration file and applies environment overrides.
// A .env file in the working directory is honored when present. Environment
// variables (PMS_HOSTNAME, PMS_APP_KEY, PMS_CLIENT_ID, PMS_CLIENT_SECRET,
// PMS_USERNAME, PMS_PASSWORD, PMS_CHAIN_CODE, PMS_EXT_SYSTEM_CODE) take
// precedence over file values. path may be empty when every required field
// comes from the environment.
func Load(path string) (*Config, error) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		var f file
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		cfg.Hostname = f.Authentication.Hostname
		cfg.AppKey = f.Authentication.XAPIKey
		cfg.ClientID = f.Authentication.ClientID
		cfg.ClientSecret = f.Authentication.ClientSecret
		cfg.Username = f.Authentication.Username
		cfg.Password = f.Authentication.Password
		cfg.ChainCode = f.Authentication.ChainCode
		cfg.ExternalSystemCode = f.Authentication.ExternalSystemID
	}

	override(&cfg.Hostname, "PMS_HOSTNAME")
	override(&cfg.AppKey, "PMS_APP_KEY")
	override(&cfg.ClientID, "PMS_CLIENT_ID")
	override(&cfg.ClientSecret, "PMS_CLIENT_SECRET")
	override(&cfg.Username, "PMS_USERNAME")
	override(&cfg.Password, "PMS_PASSWORD")
	override(&cfg.ChainCode, "PMS_CHAIN_CODE")
	override(&cfg.ExternalSystemCode, "PMS_EXT_SYSTEM_CODE")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func override(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func (c *Config) validate() error {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"hostname", c.Hostname},
		{"xapikey", c.AppKey},
		{"clientId", c.ClientID},
		{"clientSecret", c.ClientSecret},
		{"username", c.Username},
		{"password", c.Password},
		{"externalSystemId", c.ExternalSystemCode},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("configuration is missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Connection builds the connection context for one hotel.
func (c *Config) Connection(hotelID string) domain.ConnectionContext {
	return domain.ConnectionContext{
		BaseURL:            strings.TrimSuffix(c.Hostname, "/"),
		AppKey:             c.AppKey,
		HotelID:            hotelID,
		ExternalSystemCode: c.ExternalSystemCode,
	}
}

// Credentials returns the password-grant inputs.
func (c *Config) Credentials() domain.Credentials {
	return domain.Credentials{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Username:     c.Username,
		Password:     c.Password,
	}
}

// Redacted returns a display-safe view with secrets masked.
func (c *Config) Redacted() map[string]string {
	return map[string]string{
		"hostname":         c.Hostname,
		"xapikey":          mask(c.AppKey),
		"clientId":         c.ClientID,
		"clientSecret":     mask(c.ClientSecret),
		"username":         c.Username,
		"password":         mask(c.Password),
		"chainCode":        c.ChainCode,
		"externalSystemId": c.ExternalSystemCode,
	}
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}
