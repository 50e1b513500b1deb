package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	General   GeneralConfig   `toml:"general"`
	Paths     PathsConfig     `toml:"paths"`
	Dashboard DashboardConfig `toml:"dashboard"`
}

type GeneralConfig struct {
	DBPath   string `toml:"db_path"`
	LogLevel string `toml:"log_level"`
}

// PathsConfig holds the default CSV locations. Imports fall back to
// the sample file when the primary input does not exist.
type PathsConfig struct {
	InputCSV      string `toml:"input_csv"`
	InputFallback string `toml:"input_fallback"`
	SummaryOutput string `toml:"summary_output"`
}

type DashboardConfig struct {
	ListenAddr string `toml:"listen_addr"`
}

// Load reads a TOML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads the config at path if it exists, otherwise
// returns the defaults. The path itself can be overridden with the
// BETLEDGER_CONFIG environment variable.
func LoadOrDefault(path string) (*Config, error) {
	if p := os.Getenv("BETLEDGER_CONFIG"); p != "" {
		path = p
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

func Default() *Config {
	return &Config{
		General: GeneralConfig{
			DBPath:   "data/bets.db",
			LogLevel: "info",
		},
		Paths: PathsConfig{
			InputCSV:      "data/raw/bets.csv",
			InputFallback: "data/raw/bets.sample.csv",
			SummaryOutput: "data/reports/summary.csv",
		},
		Dashboard: DashboardConfig{
			ListenAddr: ":8421",
		},
	}
}
