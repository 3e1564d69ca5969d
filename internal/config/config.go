package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvSandbox = "sandbox"
	EnvProd    = "prod"
)

// Config carries the merchant credentials and service settings. The
// security key authenticates outbound gateway calls and signs inbound
// webhooks; only the public key is ever exposed to browsers.
type Config struct {
	AppID       string
	SecurityKey string
	PublicKey   string
	Environment string
	NotifyURL   string
	ReturnURL   string
	AppPort     string
	AppEnv      string
	DBURL       string
}

var requiredVars = []string{
	"PAGSMILE_APP_ID",
	"PAGSMILE_SECURITY_KEY",
	"PAGSMILE_PUBLIC_KEY",
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var missing []string
	for _, key := range requiredVars {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	env := os.Getenv("PAGSMILE_ENVIRONMENT")
	if env == "" {
		env = EnvSandbox
	}
	if env != EnvSandbox && env != EnvProd {
		return nil, fmt.Errorf("invalid PAGSMILE_ENVIRONMENT: %q (must be %q or %q)", env, EnvSandbox, EnvProd)
	}

	cfg := &Config{
		AppID:       os.Getenv("PAGSMILE_APP_ID"),
		SecurityKey: os.Getenv("PAGSMILE_SECURITY_KEY"),
		PublicKey:   os.Getenv("PAGSMILE_PUBLIC_KEY"),
		Environment: env,
		NotifyURL:   getenvDefault("PAGSMILE_NOTIFY_URL", "http://localhost:3000/api/webhook/payment"),
		ReturnURL:   getenvDefault("PAGSMILE_RETURN_URL", "http://localhost:3000/success"),
		AppPort:     getenvDefault("APP_PORT", "3000"),
		AppEnv:      os.Getenv("APP_ENV"),
		DBURL:       os.Getenv("DB_URL"),
	}

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
