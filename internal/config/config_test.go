package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sample = `
log_level = "debug"

[[observer]]
name = "phoenix"
latitude = 33.4484
longitude = -112.074
elevation = 331.0
utc_offset = -7.0

[[observer]]
name = "oslo"
latitude = 59.9139
longitude = 10.7522
utc_offset = 1.0

[serve]
listen = "127.0.0.1:9000"
interval_seconds = 30
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if len(cfg.Observers) != 2 {
		t.Fatalf("observers = %d, want 2", len(cfg.Observers))
	}
	phx, ok := cfg.Lookup("phoenix")
	if !ok {
		t.Fatal("phoenix not found")
	}
	if phx.Latitude != 33.4484 || phx.Longitude != -112.074 || phx.Elevation != 331 || phx.UTCOffset != -7 {
		t.Errorf("phoenix = %+v", phx)
	}
	if cfg.Serve.Listen != "127.0.0.1:9000" || cfg.Serve.Interval() != 30*time.Second {
		t.Errorf("serve = %+v", cfg.Serve)
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`log_level = "warn"`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	def := Default()
	if cfg.Serve != def.Serve {
		t.Errorf("serve = %+v, want defaults %+v", cfg.Serve, def.Serve)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  string
		want string
	}{
		{"missing name", "[[observer]]\nlatitude = 1.0", "missing name"},
		{"latitude", "[[observer]]\nname = \"x\"\nlatitude = 91.0", "latitude"},
		{"longitude", "[[observer]]\nname = \"x\"\nlongitude = -181.0", "longitude"},
		{"offset", "[[observer]]\nname = \"x\"\nutc_offset = 13.0", "utc_offset"},
		{"duplicate", "[[observer]]\nname = \"x\"\n[[observer]]\nname = \"x\"", "duplicate"},
		{"interval", "[serve]\ninterval_seconds = 0", "interval_seconds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.cfg))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadRoundTrip(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	path := filepath.Join(t.TempDir(), "skyglide.toml")
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Observers) != 2 || got.Observers[1] != cfg.Observers[1] {
		t.Errorf("round trip observers = %+v", got.Observers)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error")
	}
}
