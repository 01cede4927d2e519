package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, Prefix+"_") {
			// t.Setenv restores the original value after the test
			t.Setenv(key, "")
			_ = os.Unsetenv(key)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.StoreType != StoreSQLite || cfg.DatabasePath != "./fambalance.db" {
		t.Fatalf("unexpected store defaults: %+v", cfg)
	}
	if cfg.FreeMissionLimit != 3 || cfg.ConnectionReward != 25 || cfg.TrialDays != 14 {
		t.Fatalf("unexpected policy defaults: %+v", cfg)
	}
	if cfg.ConnectionPointsMode != PointsModeToggle {
		t.Fatalf("unexpected points mode: %s", cfg.ConnectionPointsMode)
	}
	if cfg.AI.Timeout != 20*time.Second || cfg.AI.Enabled() {
		t.Fatalf("unexpected AI defaults: %+v", cfg.AI)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("FAMBALANCE_STORE_TYPE", "Memory")
	t.Setenv("FAMBALANCE_FREE_MISSION_LIMIT", "5")
	t.Setenv("FAMBALANCE_CONNECTION_POINTS_MODE", "reconcile")
	t.Setenv("FAMBALANCE_AI_API_KEY", "k")
	t.Setenv("FAMBALANCE_SES_FROM_EMAIL", "noreply@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.StoreType != StoreMemory || cfg.UsesDatabase() {
		t.Fatalf("store type override failed: %s", cfg.StoreType)
	}
	if cfg.FreeMissionLimit != 5 {
		t.Fatalf("free mission limit override failed: %d", cfg.FreeMissionLimit)
	}
	if cfg.ConnectionPointsMode != PointsModeReconcile {
		t.Fatalf("points mode override failed: %s", cfg.ConnectionPointsMode)
	}
	if !cfg.AI.Enabled() || cfg.SES.FromEmail != "noreply@example.com" {
		t.Fatalf("nested override failed: %+v %+v", cfg.AI, cfg.SES)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "postgres without url", mutate: func(c *Config) { c.StoreType = StorePostgres }, wantErr: true},
		{name: "postgres with url", mutate: func(c *Config) {
			c.StoreType = StorePostgres
			c.DatabaseURL = "postgres://localhost/fam"
		}},
		{name: "sqlite without path", mutate: func(c *Config) { c.StoreType = StoreSQLite }, wantErr: true},
		{name: "unknown store", mutate: func(c *Config) { c.StoreType = "redis" }, wantErr: true},
		{name: "unknown points mode", mutate: func(c *Config) { c.ConnectionPointsMode = "double" }, wantErr: true},
		{name: "negative limit", mutate: func(c *Config) { c.FreeMissionLimit = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
