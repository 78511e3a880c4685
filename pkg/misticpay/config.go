package misticpay

import "time"

const DefaultBaseURL = "https://api.misticpay.com/api"

type Config struct {
	BaseURL      string        `mapstructure:"apiBaseUrl"`
	ClientID     string        `mapstructure:"clientId"`
	ClientSecret string        `mapstructure:"clientSecret"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// HasCredentials reports whether both credential headers can be populated.
func (c Config) HasCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}
