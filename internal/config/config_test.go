package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `app:
  name: "Touchline"
  environment: "development"
  port: 8080
database:
  driver: "sqlite"
  filename: "data/touchline.db"
auth:
  admin_emails:
    - "admin@example.com"
league:
  default_teams:
    - name: "Rovers"
    - name: "Athletic"
      competition: "acwpl"
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}

	if cfg.Fantasy.Budget != 100 {
		t.Errorf("expected default budget 100, got %v", cfg.Fantasy.Budget)
	}
	if cfg.Fantasy.SquadSize != 5 {
		t.Errorf("expected default squad size 5, got %d", cfg.Fantasy.SquadSize)
	}
	if cfg.Jobs.PruneCodes != "*/15 * * * *" {
		t.Errorf("unexpected prune schedule %q", cfg.Jobs.PruneCodes)
	}
	if cfg.League.DefaultTeams[0].Competition != "league" {
		t.Errorf("expected league competition default, got %q", cfg.League.DefaultTeams[0].Competition)
	}
	if cfg.League.DefaultTeams[1].Competition != "acwpl" {
		t.Errorf("expected acwpl competition preserved, got %q", cfg.League.DefaultTeams[1].Competition)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing secret", func(c *Config) { c.App.SecretKey = "" }, "APP_SECRET_KEY"},
		{"bad driver", func(c *Config) { c.Database.Driver = "postgres" }, "unsupported database driver"},
		{"bad admin email", func(c *Config) { c.Auth.AdminEmails = []string{"nope"} }, "invalid admin email"},
		{"bad cron", func(c *Config) { c.Jobs.StandingsReconcile = "every day" }, "standings_reconcile"},
		{"bad team competition", func(c *Config) { c.League.DefaultTeams[0].Competition = "cup" }, "unsupported competition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(sampleConfig))
			if err != nil {
				t.Fatalf("parse config: %v", err)
			}
			cfg.App.SecretKey = "secret"
			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadReadsSecretsFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("APP_SECRET_KEY", "from-env")
	t.Setenv("ARCHIVE_MONGO_URI", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.App.SecretKey != "from-env" {
		t.Errorf("expected secret from env, got %q", cfg.App.SecretKey)
	}
	if cfg.Archive.MirrorEnabled() {
		t.Errorf("expected archive mirror disabled without URI")
	}
}
