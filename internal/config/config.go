package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/utils"
)

// MaxUpcomingLimit caps the dashboard's upcoming list.
const MaxUpcomingLimit = 50

// Config is the on-disk application configuration.
type Config struct {
	// Database is a file path (.db for SQLite, .json for the JSON store) or a
	// PostgreSQL connection string without password.
	Database string `yaml:"database"`

	// BackupDir holds automatic and manual snapshot exports.
	BackupDir string `yaml:"backup_dir"`

	// Timezone is an IANA name; empty means the system zone.
	Timezone string `yaml:"timezone"`

	// SeedSamples seeds one sample event and exam into empty collections.
	SeedSamples *bool `yaml:"seed_samples"`

	UpcomingLimit int  `yaml:"upcoming_limit"`
	Debug         bool `yaml:"debug"`
}

func DefaultConfig() *Config {
	seed := true
	return &Config{
		Database:      constants.DefaultDBPath,
		BackupDir:     filepath.Join(constants.DefaultConfigDir, constants.BackupDirName),
		Timezone:      "",
		SeedSamples:   &seed,
		UpcomingLimit: constants.DefaultUpcomingLimit,
		Debug:         false,
	}
}

// Normalize fills in missing values so that partial files behave like the defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if strings.TrimSpace(c.Database) == "" {
		c.Database = def.Database
	}
	if strings.TrimSpace(c.BackupDir) == "" {
		c.BackupDir = def.BackupDir
	}
	if c.SeedSamples == nil {
		c.SeedSamples = def.SeedSamples
	}
	if c.UpcomingLimit <= 0 {
		c.UpcomingLimit = def.UpcomingLimit
	}
}

// Validate reports settings that Normalize cannot repair.
func (c *Config) Validate() error {
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	if c.UpcomingLimit > MaxUpcomingLimit {
		return fmt.Errorf("upcoming_limit must be at most %d, got %d", MaxUpcomingLimit, c.UpcomingLimit)
	}
	return nil
}

// ShouldSeed reports whether empty collections get sample records.
func (c *Config) ShouldSeed() bool {
	return c.SeedSamples == nil || *c.SeedSamples
}

// Load reads the YAML file at path. On first run the file is created with
// defaults (0600) and the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	path = ExpandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg atomically via a temp file and rename, with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	path = ExpandPath(path)
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+constants.AppName+"-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
