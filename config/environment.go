package config

import "os"

type Environment struct {
	IsDevelopment   bool
	Domain          string
	AnthropicAPIKey string
}

var Env Environment

func init() {
	// If no domain is set, we're in development
	domain := os.Getenv("APP_DOMAIN")
	isDev := domain == ""
	if isDev {
		domain = "localhost"
	}

	Env = Environment{
		IsDevelopment:   isDev,
		Domain:          domain,
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
	}
}
