package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	MessagingAddr string `envconfig:"MESSAGING_ADDR"`
	// JWT_SECRET signs the tokens of the test users, it must match the server's
	JWTSecret string `envconfig:"JWT_SECRET"`
	// Seeded users: both hold a ticket for EventID and have a public profile
	EventID string `envconfig:"E2E_EVENT_ID"`
	UserA   string `envconfig:"E2E_USER_A"`
	UserB   string `envconfig:"E2E_USER_B"`
	// E2E_DEBUG_JSON allows dumping full gRPC request/response bodies as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}

// Ready reports whether a running server and its seeded users are configured.
func (c Config) Ready() bool {
	return c.MessagingAddr != "" && c.JWTSecret != "" && c.EventID != "" && c.UserA != "" && c.UserB != ""
}
