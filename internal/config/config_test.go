package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Threshold == 0 {
		t.Error("Threshold should have a positive default")
	}
	if len(cfg.Languages) != 5 {
		t.Errorf("len(Languages) = %d, want 5", len(cfg.Languages))
	}
	if !cfg.RespectGitignore {
		t.Error("RespectGitignore should default to true")
	}
	if cfg.Format != "human" {
		t.Errorf("Format = %q, want %q", cfg.Format, "human")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() should validate cleanly: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"bad format", func(c *Config) { c.Format = "xml" }, true},
		{"bad sort", func(c *Config) { c.Sort = "size" }, true},
		{"negative limit", func(c *Config) { c.Limit = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr && err == nil {
				t.Error("Validate() should return an error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() returned unexpected error: %v", err)
			}
			if err != nil {
				if _, ok := err.(*ValidationError); !ok {
					t.Errorf("Validate() error type = %T, want *ValidationError", err)
				}
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "format", Message: "must be one of json, human, csv"}
	want := "config error in field 'format': must be one of json, human, csv"

	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLoadConfig_Default(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Threshold != DefaultConfig().Threshold {
		t.Errorf("Threshold = %d, want default %d", cfg.Threshold, DefaultConfig().Threshold)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `{
		"threshold": 25,
		"format": "json",
		"sort": "name"
	}`
	configPath := filepath.Join(tmpDir, ".cogniplexity.json")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Threshold != 25 {
		t.Errorf("Threshold = %d, want 25", cfg.Threshold)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want %q", cfg.Format, "json")
	}
	if cfg.Sort != "name" {
		t.Errorf("Sort = %q, want %q", cfg.Sort, "name")
	}
}

func TestLoadTOMLFile(t *testing.T) {
	tmpDir := t.TempDir()
	tomlPath := filepath.Join(tmpDir, "custom.toml")
	content := "threshold = 40\nformat = \"csv\"\n"
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write toml config: %v", err)
	}

	cfg, err := LoadTOMLFile(tomlPath)
	if err != nil {
		t.Fatalf("LoadTOMLFile() error = %v", err)
	}
	if cfg.Threshold != 40 {
		t.Errorf("Threshold = %d, want 40", cfg.Threshold)
	}
	if cfg.Format != "csv" {
		t.Errorf("Format = %q, want %q", cfg.Format, "csv")
	}
}

func TestLoadTOMLFile_UnknownKey(t *testing.T) {
	tmpDir := t.TempDir()
	tomlPath := filepath.Join(tmpDir, "bad.toml")
	if err := os.WriteFile(tomlPath, []byte("thresholdd = 5\n"), 0644); err != nil {
		t.Fatalf("failed to write toml config: %v", err)
	}

	if _, err := LoadTOMLFile(tomlPath); err == nil {
		t.Error("LoadTOMLFile() should error on an unknown key")
	}
}

func TestConfig_Save(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Threshold = 42

	if err := cfg.Save(tmpDir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	configPath := filepath.Join(tmpDir, ".cogniplexity.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}
}
