package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Game    GameConfig    `yaml:"game"`
	Backend BackendConfig `yaml:"backend"`
	Store   StoreConfig   `yaml:"store"`
	Match   MatchConfig   `yaml:"match"`
	Logging LoggingConfig `yaml:"logging"`
}

type GameConfig struct {
	// LogDir is the directory the game writes its log files into.
	LogDir string `yaml:"log_dir"`
	// LiveLog is the name of the file the running game appends to.
	LiveLog string `yaml:"live_log"`
	// Backups are rotated log file names, oldest first.
	Backups []string `yaml:"backups"`
}

type BackendConfig struct {
	Host    string        `yaml:"host"`
	Port    int           `yaml:"port"`
	Timeout time.Duration `yaml:"timeout"`
}

type StoreConfig struct {
	// Path is the sqlite database file used when not submitting remotely.
	Path string `yaml:"path"`
}

type MatchConfig struct {
	// OpponentEloDefault is used when a match context carries no observed
	// opponent rating. -2 means unranked/unknown.
	OpponentEloDefault int `yaml:"opponent_elo_default"`
}

type LoggingConfig struct {
	Dir   string `yaml:"dir"`
	File  string `yaml:"file"`
	Debug bool   `yaml:"debug"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Game: GameConfig{
			LogDir: filepath.Join(home, "AppData", "Local", "Rivals2", "Saved", "Logs"),
			LiveLog: "Rivals2.log",
			Backups: []string{"Rivals2-backup-1.log", "Rivals2-backup-2.log"},
		},
		Backend: BackendConfig{
			Host:    "localhost",
			Port:    8000,
			Timeout: 5 * time.Second,
		},
		Store: StoreConfig{
			Path: "rivals2.db",
		},
		Match: MatchConfig{
			OpponentEloDefault: -2,
		},
		Logging: LoggingConfig{
			Dir:  "logs",
			File: "rivals2-parser.log",
		},
	}
}

// Load reads the config file at path, layering it over the defaults.
// A missing file is not an error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LogFiles returns the full paths of the log files to scan, backups first so
// events come out in chronological order.
func (c *Config) LogFiles() []string {
	files := make([]string, 0, len(c.Game.Backups)+1)
	for _, b := range c.Game.Backups {
		files = append(files, filepath.Join(c.Game.LogDir, b))
	}
	files = append(files, filepath.Join(c.Game.LogDir, c.Game.LiveLog))
	return files
}
