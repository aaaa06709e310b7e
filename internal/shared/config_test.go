package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./chinook.db" {
			t.Errorf("expected database path ./chinook.db, got %s", config.Database.Path)
		}

		if config.Database.MaxOpenConns != 10 {
			t.Errorf("expected max_open_conns 10, got %d", config.Database.MaxOpenConns)
		}

		if config.Log.Level != "info" {
			t.Errorf("expected log level info, got %s", config.Log.Level)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[log]
level = "debug"

[app]
default_user = "user-1"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected custom database path, got %s", config.Database.Path)
		}
		if config.Database.MaxOpenConns != 20 {
			t.Errorf("expected max_open_conns 20, got %d", config.Database.MaxOpenConns)
		}
		if config.Log.Level != "debug" {
			t.Errorf("expected log level debug, got %s", config.Log.Level)
		}
		if config.App.DefaultUser != "user-1" {
			t.Errorf("expected default user user-1, got %s", config.App.DefaultUser)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error loading missing config file")
		}
	})
}
