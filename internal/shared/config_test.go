package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Run("valid config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		content := `
[credentials.planning_center]
app_id = "abc123"
secret = "s3cret"
base_url = "https://api.planningcenteronline.com/services/v2"

[catalog]
order = "-last_scheduled_at"
per_page = 50

[rotation]
recency_months = 3
timeout_ms = 500
seasonal_keywords = ["christmas"]
venue_keyword = "downtown"
venue_filter_enabled = true

[database]
path = ":memory:"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.Credentials.PlanningCenter.AppID != "abc123" {
			t.Errorf("expected app_id 'abc123', got %s", config.Credentials.PlanningCenter.AppID)
		}
		if config.Catalog.PerPage != 50 {
			t.Errorf("expected per_page 50, got %d", config.Catalog.PerPage)
		}
		if config.Rotation.RecencyMonths != 3 {
			t.Errorf("expected recency_months 3, got %d", config.Rotation.RecencyMonths)
		}
		if config.Rotation.Timeout() != 500*time.Millisecond {
			t.Errorf("expected 500ms timeout, got %v", config.Rotation.Timeout())
		}
		if !config.Rotation.VenueFilterEnabled {
			t.Error("expected venue filter to be enabled")
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
		if err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for malformed TOML")
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Rotation.TimeoutMS != 999 {
		t.Errorf("expected default timeout_ms 999, got %d", config.Rotation.TimeoutMS)
	}
	if config.Rotation.RecencyMonths != 6 {
		t.Errorf("expected default recency_months 6, got %d", config.Rotation.RecencyMonths)
	}
	if len(config.Rotation.SeasonalKeywords) != 2 {
		t.Errorf("expected 2 default seasonal keywords, got %d", len(config.Rotation.SeasonalKeywords))
	}
	if config.Rotation.VenueFilterEnabled {
		t.Error("expected venue filter to default to disabled")
	}
	if config.Catalog.Order != "-last_scheduled_at" {
		t.Errorf("expected default order '-last_scheduled_at', got %s", config.Catalog.Order)
	}
	if config.Database.Path != ":memory:" {
		t.Errorf("expected default database path ':memory:', got %s", config.Database.Path)
	}
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("creates file from template", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("created config should parse: %v", err)
		}
		if config.Rotation.TimeoutMS != 999 {
			t.Errorf("expected template timeout_ms 999, got %d", config.Rotation.TimeoutMS)
		}
	})

	t.Run("refuses to overwrite existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("existing"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error for existing file")
		}
	})
}
