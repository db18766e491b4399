package config

import "time"

// Config is the root configuration shared by the portal and the mock API.
type Config struct {
	App      AppConfig      `yaml:"app"`
	API      APIConfig      `yaml:"api"`
	MockAPI  MockAPIConfig  `yaml:"mock_api"`
	Store    StoreConfig    `yaml:"store"`
	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
}

type AppConfig struct {
	Port            string        `yaml:"port"             env:"APP_PORT"                env-default:"8080"`
	LogLevel        string        `yaml:"log_level"        env:"LOG_LEVEL"               env-default:"info"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// APIConfig selects how the portal reaches the simulated API.
// "inprocess" calls the mock backend directly, "http" goes over the wire.
type APIConfig struct {
	Mode    string        `yaml:"mode"     env:"API_MODE"     env-default:"inprocess"`
	BaseURL string        `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:8081"`
	Timeout time.Duration `yaml:"timeout"  env:"API_TIMEOUT"  env-default:"0s"`
}

type MockAPIConfig struct {
	Enabled        bool          `yaml:"enabled"         env:"MOCKAPI_ENABLED"         env-default:"false"`
	Port           string        `yaml:"port"            env:"MOCKAPI_PORT"            env-default:"8081"`
	LoginLatency   time.Duration `yaml:"login_latency"   env:"MOCKAPI_LOGIN_LATENCY"   env-default:"1000ms"`
	ItemsLatency   time.Duration `yaml:"items_latency"   env:"MOCKAPI_ITEMS_LATENCY"   env-default:"800ms"`
	AllowedOrigins string        `yaml:"allowed_origins" env:"MOCKAPI_ALLOWED_ORIGINS" env-default:"*"`
}

type StoreConfig struct {
	Driver string `yaml:"driver" env:"STORE_DRIVER" env-default:"memory"`
	Prefix string `yaml:"prefix" env:"STORE_PREFIX" env-default:"cred:"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB" env-default:"0"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"DATABASE_DSN"`
}

type AuthConfig struct {
	CredentialTTL time.Duration `yaml:"credential_ttl" env:"AUTH_CREDENTIAL_TTL" env-default:"168h"`
}
