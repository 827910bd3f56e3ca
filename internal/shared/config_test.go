package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Storage.Backend != BackendJSON {
			t.Errorf("expected storage backend json, got %s", config.Storage.Backend)
		}

		if config.Database.Path != "./enroll.db" {
			t.Errorf("expected database path ./enroll.db, got %s", config.Database.Path)
		}

		if config.Log.Level != "warn" {
			t.Errorf("expected log level warn, got %s", config.Log.Level)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should validate: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[log]
level = "debug"

[storage]
backend = "sqlite"

[database]
path = "/custom/path.db"
max_open_conns = 4
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Storage.Backend != BackendSQLite {
			t.Errorf("expected backend sqlite, got %s", config.Storage.Backend)
		}
		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
		if config.Database.MaxOpenConns != 4 {
			t.Errorf("expected max_open_conns 4, got %d", config.Database.MaxOpenConns)
		}
		if config.Export.Directory != "." {
			t.Errorf("expected unset keys to keep defaults, got export dir %q", config.Export.Directory)
		}
	})

	t.Run("LoadConfig with environment override", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")
		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		t.Setenv("ENROLL_LOG_LEVEL", "error")
		t.Setenv("ENROLL_DATABASE_PATH", "/env/enroll.db")

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Log.Level != "error" {
			t.Errorf("expected env log level error, got %s", config.Log.Level)
		}
		if config.Database.Path != "/env/enroll.db" {
			t.Errorf("expected env database path, got %s", config.Database.Path)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv("ENROLL_STORAGE_BACKEND", "sqlite")

		config := DefaultConfig()
		if err := ApplyEnv(config); err != nil {
			t.Fatalf("failed to apply env: %v", err)
		}
		if config.Storage.Backend != BackendSQLite {
			t.Errorf("expected backend sqlite, got %s", config.Storage.Backend)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name    string
			mutate  func(*Config)
			wantErr bool
		}{
			{name: "json backend", mutate: func(c *Config) {}, wantErr: false},
			{name: "sqlite backend", mutate: func(c *Config) { c.Storage.Backend = BackendSQLite }, wantErr: false},
			{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "redis" }, wantErr: true},
			{
				name: "sqlite without path",
				mutate: func(c *Config) {
					c.Storage.Backend = BackendSQLite
					c.Database.Path = ""
				},
				wantErr: true,
			},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				config := DefaultConfig()
				tt.mutate(config)
				err := config.Validate()
				if (err != nil) != tt.wantErr {
					t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
				if err != nil && !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})
}
