package config

import "fmt"

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"

	APIModeInProcess = "inprocess"
	APIModeHTTP      = "http"
)

// Validate checks cross-field rules that tags cannot express.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for store driver %q", c.Store.Driver)
		}
	case StorePostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for store driver %q", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	switch c.API.Mode {
	case APIModeInProcess:
	case APIModeHTTP:
		if c.API.BaseURL == "" {
			return fmt.Errorf("api.base_url is required for api mode %q", c.API.Mode)
		}
	default:
		return fmt.Errorf("unknown api mode %q", c.API.Mode)
	}

	if c.Auth.CredentialTTL <= 0 {
		return fmt.Errorf("auth.credential_ttl must be > 0 (got %s)", c.Auth.CredentialTTL)
	}

	if c.MockAPI.LoginLatency < 0 || c.MockAPI.ItemsLatency < 0 {
		return fmt.Errorf("mock_api latencies must be >= 0")
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must be >= 0 (got %s)", c.API.Timeout)
	}

	return nil
}
