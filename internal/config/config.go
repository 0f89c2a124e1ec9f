package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultSymbols is the SGX active-100 watch list screened each run.
var defaultSymbols = []string{
	"D05", "O39", "U11",
	"A17U", "AJBU", "M44U", "ME8U", "BUOU", "O5RU", "AXB", "J91U", "M1GU",
	"C38U", "N2IU", "T82U", "J69U", "K71U", "AU8U", "HMN", "J85", "UD2", "JYEU", "TS0U",
	"C2PU", "H19", "Q5T", "ACV", "XZL", "BTOU", "AW9U", "DHLU",
	"Z74", "A7RU", "CJLU", "S58", "S68", "U96", "BS6", "S63", "S51", "C6L", "BN4",
	"C09", "U14", "F99", "C07", "H78", "J36", "E8Z", "9CI", "502", "T39", "BQC",
	"Y92", "G13", "F34", "V03", "OV8", "EB5", "P8Z", "579", "Q01",
	"AWX", "558", "E28", "CC3", "BTE", "5WF", "M04", "KUH", "1D0",
	"S61", "H12", "D01", "O08", "40V", "S20", "539", "UV1", "BKZ",
	"BEI", "F1E", "AFC", "P40U", "PJX", "RE4", "5GID",
}

// Config holds all application configuration.
type Config struct {
	Discord struct {
		WebhookURL string `yaml:"webhook_url"`
		Username   string `yaml:"username"`
	} `yaml:"discord"`
	Screen struct {
		Threshold    float64  `yaml:"threshold"`
		Symbols      []string `yaml:"symbols"`
		MarketSuffix string   `yaml:"market_suffix"`
		ChartPeriod  string   `yaml:"chart_period"`
		MaxWorkers   int      `yaml:"max_workers"`
	} `yaml:"screen"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	// Seeded before unmarshal so an explicit `threshold: 0` in the file is
	// distinguishable from an absent key.
	cfg.Screen.Threshold = 6.0

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.Discord.WebhookURL = v
	}
	if v := os.Getenv("YIELD_THRESHOLD"); v != "" {
		var threshold float64
		if _, err := fmt.Sscanf(v, "%f", &threshold); err == nil {
			cfg.Screen.Threshold = threshold
		}
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Discord.Username == "" {
		cfg.Discord.Username = "SGX Yield Bot"
	}
	if len(cfg.Screen.Symbols) == 0 {
		cfg.Screen.Symbols = defaultSymbols
	}
	if cfg.Screen.MarketSuffix == "" {
		cfg.Screen.MarketSuffix = ".SI"
	}
	if cfg.Screen.ChartPeriod == "" {
		cfg.Screen.ChartPeriod = "1y"
	}
	if cfg.Screen.MaxWorkers == 0 {
		cfg.Screen.MaxWorkers = 10
	}
	if cfg.Schedule.DailyCron == "" {
		// Weekdays 18:00, after the SGX close
		cfg.Schedule.DailyCron = "0 0 18 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/yield_sentinel.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Discord.WebhookURL == "" {
		return fmt.Errorf("discord.webhook_url is required")
	}
	if c.Screen.Threshold < 0 {
		return fmt.Errorf("screen.threshold must not be negative")
	}
	if len(c.Screen.Symbols) == 0 {
		return fmt.Errorf("screen.symbols must not be empty")
	}
	return nil
}
