package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// DefaultJWTSecret is the development signing key. Load rejects it when Env is "prod".
const DefaultJWTSecret = "change-me-dev-secret"

type Config struct {
	// Host and Port form the listen address. PORT is accepted when APP_PORT is unset.
	Host string `yaml:"host" env:"APP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"APP_PORT,PORT" env-default:"8000"`

	// Env is "dev" (default) or "prod". When "prod", JWT_SECRET must be set and not the default.
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"text"`

	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"change-me-dev-secret"`

	// JWTExpireMinutes is the access token lifetime in minutes (default 30).
	JWTExpireMinutes int `yaml:"jwt_expire_minutes" env:"JWT_EXPIRE_MINUTES" env-default:"30"`

	// AuthUsername and AuthPassword are the single account allowed to log in.
	// The password is hashed at startup and the plaintext is not kept by the server.
	AuthUsername string `yaml:"auth_username" env:"AUTH_USERNAME" env-default:"admin"`
	AuthPassword string `yaml:"auth_password" env:"AUTH_PASSWORD" env-default:"admin123"`

	// BcryptCost is the work factor used when hashing AuthPassword.
	BcryptCost int `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`

	// Author is reported by the index endpoint.
	Author string `yaml:"author" env:"API_AUTHOR" env-default:"Chandrakant"`

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	// When empty, the API listens with plain HTTP.
	TLSCertFile string `yaml:"tls_cert_file" env:"TLS_CERT_FILE"`
	TLSKeyFile  string `yaml:"tls_key_file" env:"TLS_KEY_FILE"`

	// CORSAllowedOrigins is a list of origins allowed for CORS (comma-separated in CORS_ALLOWED_ORIGINS).
	// When empty, no CORS headers are sent (same-origin only).
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`

	// MaxBodyBytes caps request bodies on POST/PUT routes (default 1 MiB).
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"MAX_BODY_BYTES" env-default:"1048576"`

	// StatsSchedule is a cron expression for the store statistics job. Empty disables it.
	StatsSchedule string `yaml:"stats_schedule" env:"STATS_SCHEDULE" env-default:"@every 1m"`
}

// Load reads configuration from the environment. A dotenv file (ENV_FILE, default ".env")
// is loaded first if it exists; variables already set in the process win over it.
// When CONFIG_PATH is set, the YAML file it names is read and environment variables
// override its values.
func Load() (Config, error) {
	var cfg Config

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read env file %s: %w", envFile, err)
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at request time.
func (c Config) Validate() error {
	if c.Env == "prod" && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		return errors.New("JWT_SECRET must be set to a non-default value when ENV=prod")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.JWTExpireMinutes <= 0 {
		return errors.New("JWT_EXPIRE_MINUTES must be positive")
	}
	if c.AuthUsername == "" || c.AuthPassword == "" {
		return errors.New("AUTH_USERNAME and AUTH_PASSWORD must be set")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

// Addr returns the host:port the server listens on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// TLSEnabled reports whether both certificate and key files are configured.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}
