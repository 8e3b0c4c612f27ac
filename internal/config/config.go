package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

type EmailConfig struct {
	Region string `yaml:"region"`
	Sender string `yaml:"sender"`
	// Loaded from environment
	AccessKeyID     string `yaml:"-"`
	SecretAccessKey string `yaml:"-"`
}

// Enabled reports whether SES delivery can be configured.
func (c EmailConfig) Enabled() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != "" && c.Region != "" && c.Sender != ""
}

type ArchiveConfig struct {
	MongoDatabase   string `yaml:"mongo_database"`
	MongoCollection string `yaml:"mongo_collection"`
	MongoURI        string `yaml:"-"` // Loaded from environment
}

// MirrorEnabled reports whether season archives are mirrored to MongoDB.
func (c ArchiveConfig) MirrorEnabled() bool {
	return c.MongoURI != ""
}

// JobsConfig holds five-field cron schedules for the maintenance jobs.
type JobsConfig struct {
	StandingsReconcile string `yaml:"standings_reconcile"`
	PruneCodes         string `yaml:"prune_codes"`
}

type TeamSeed struct {
	Name        string `yaml:"name"`
	Logo        string `yaml:"logo"`
	Competition string `yaml:"competition"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
		SecretKey   string `yaml:"-"` // Loaded from environment
		TrustProxy  bool   `yaml:"trust_proxy"`
		// Frontend origins allowed to call the API from a browser
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`

	Auth struct {
		AdminEmails []string `yaml:"admin_emails"`
	} `yaml:"auth"`

	Email EmailConfig `yaml:"email"`

	Archive ArchiveConfig `yaml:"archive"`

	League struct {
		DefaultTeams []TeamSeed `yaml:"default_teams"`
	} `yaml:"league"`

	Fantasy struct {
		Budget    float64 `yaml:"budget"`
		SquadSize int     `yaml:"squad_size"`
	} `yaml:"fantasy"`

	Jobs JobsConfig `yaml:"jobs"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Load sensitive values from environment
	cfg.App.SecretKey = os.Getenv("APP_SECRET_KEY")
	cfg.Email.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.Email.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	cfg.Archive.MongoURI = os.Getenv("ARCHIVE_MONGO_URI")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML configuration and fills defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Fantasy.Budget == 0 {
		c.Fantasy.Budget = 100
	}
	if c.Fantasy.SquadSize == 0 {
		c.Fantasy.SquadSize = 5
	}
	if c.Jobs.StandingsReconcile == "" {
		c.Jobs.StandingsReconcile = "0 4 * * *"
	}
	if c.Jobs.PruneCodes == "" {
		c.Jobs.PruneCodes = "*/15 * * * *"
	}
	if c.Archive.MongoDatabase == "" {
		c.Archive.MongoDatabase = "touchline"
	}
	if c.Archive.MongoCollection == "" {
		c.Archive.MongoCollection = "seasons"
	}
	for i := range c.League.DefaultTeams {
		if c.League.DefaultTeams[i].Competition == "" {
			c.League.DefaultTeams[i].Competition = "league"
		}
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.App.SecretKey == "" {
		return fmt.Errorf("APP_SECRET_KEY is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}
	if c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Database.Filename == "" {
		return fmt.Errorf("database filename is required for sqlite")
	}

	for _, email := range c.Auth.AdminEmails {
		if !strings.Contains(email, "@") {
			return fmt.Errorf("invalid admin email: %q", email)
		}
	}

	for _, team := range c.League.DefaultTeams {
		if strings.TrimSpace(team.Name) == "" {
			return fmt.Errorf("default team name is required")
		}
		if team.Competition != "league" && team.Competition != "acwpl" {
			return fmt.Errorf("default team %q has unsupported competition %q", team.Name, team.Competition)
		}
	}

	if c.Fantasy.Budget < 0 {
		return fmt.Errorf("fantasy budget must not be negative")
	}
	if c.Fantasy.SquadSize < 1 {
		return fmt.Errorf("fantasy squad size must be at least 1")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(c.Jobs.StandingsReconcile); err != nil {
		return fmt.Errorf("invalid standings_reconcile schedule: %w", err)
	}
	if _, err := parser.Parse(c.Jobs.PruneCodes); err != nil {
		return fmt.Errorf("invalid prune_codes schedule: %w", err)
	}

	return nil
}
