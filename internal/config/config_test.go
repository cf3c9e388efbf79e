package config

import (
	"os"
	"path/filepath"
	"testing"
)

// unsetEnv clears key for the test and restores its previous value afterwards.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	unsetEnv(t, "APP_HOST", "APP_PORT", "PORT")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("Port: got %q, want 8000", cfg.Port)
	}
	if cfg.Addr() != "0.0.0.0:8000" {
		t.Errorf("Addr: got %q, want 0.0.0.0:8000", cfg.Addr())
	}
	if cfg.JWTExpireMinutes != 30 {
		t.Errorf("JWTExpireMinutes: got %d, want 30", cfg.JWTExpireMinutes)
	}
	if cfg.AuthUsername != "admin" {
		t.Errorf("AuthUsername: got %q, want admin", cfg.AuthUsername)
	}
	if cfg.MaxBodyBytes != 1<<20 {
		t.Errorf("MaxBodyBytes: got %d, want %d", cfg.MaxBodyBytes, 1<<20)
	}
	if cfg.TLSEnabled() {
		t.Error("TLS should be disabled by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	unsetEnv(t, "APP_PORT")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRE_MINUTES", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example,http://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.JWTExpireMinutes != 5 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://b.example" {
		t.Errorf("CORSAllowedOrigins: got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("port: \"7000\"\nauth_username: root\nauthor: Registrar\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	unsetEnv(t, "APP_PORT", "PORT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "7000" || cfg.AuthUsername != "root" || cfg.Author != "Registrar" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		Env:              "dev",
		JWTSecret:        DefaultJWTSecret,
		JWTExpireMinutes: 30,
		AuthUsername:     "admin",
		AuthPassword:     "admin123",
		BcryptCost:       10,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"dev default secret", func(c *Config) {}, false},
		{"prod default secret", func(c *Config) { c.Env = "prod" }, true},
		{"prod custom secret", func(c *Config) { c.Env = "prod"; c.JWTSecret = "s3cret" }, false},
		{"empty secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"zero ttl", func(c *Config) { c.JWTExpireMinutes = 0 }, true},
		{"missing password", func(c *Config) { c.AuthPassword = "" }, true},
		{"cost too high", func(c *Config) { c.BcryptCost = 99 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_HostPort(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9100")
	t.Setenv("PORT", "9200")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9100" {
		t.Errorf("Port: got %q, APP_PORT should win over PORT", cfg.Port)
	}
	if cfg.Addr() != "127.0.0.1:9100" {
		t.Errorf("Addr: got %q, want 127.0.0.1:9100", cfg.Addr())
	}
}

func TestLoad_EnvFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	unsetEnv(t, "APP_HOST", "APP_PORT", "PORT", "API_AUTHOR")
	t.Setenv("ENV_FILE", writeEnvFile(t, "APP_HOST=127.0.0.1\nAPP_PORT=8500\nAPI_AUTHOR=Registrar\n"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:8500" {
		t.Errorf("Addr: got %q, want 127.0.0.1:8500", cfg.Addr())
	}
	if cfg.Author != "Registrar" {
		t.Errorf("Author: got %q, want Registrar", cfg.Author)
	}
}

func TestLoad_EnvFileDoesNotOverrideEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	unsetEnv(t, "APP_HOST", "PORT")
	t.Setenv("APP_PORT", "9300")
	t.Setenv("ENV_FILE", writeEnvFile(t, "APP_PORT=8500\n"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9300" {
		t.Errorf("Port: got %q, want 9300 from the environment", cfg.Port)
	}
}

func TestLoad_EnvFileUnreadable(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", t.TempDir())

	if _, err := Load(); err == nil {
		t.Error("expected error when ENV_FILE is a directory")
	}
}
