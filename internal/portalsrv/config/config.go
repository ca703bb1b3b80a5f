// Package config loads the portal server configuration from a TOML file.
// A zero-value file path yields a usable default configuration for local
// development.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type ConfigParam struct {
	ServerPort string       `toml:"server_port"`
	HandleCORS bool         `toml:"handle_cors"`
	DB         DBConfig     `toml:"database"`
	Provider   ProviderCfg  `toml:"provider"`
	Engine     EngineConfig `toml:"engine"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	DBName   string `toml:"dbname"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	SSLMode  string `toml:"sslmode"`
}

func (d DBConfig) Dsn() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// ProviderCfg configures the external resource-scheduling provider.
// Reservations and class schedules use separately scoped OAuth tokens.
type ProviderCfg struct {
	BaseURL           string `toml:"base_url"`
	TokenURL          string `toml:"token_url"`
	ClientID          string `toml:"client_id"`
	ClientSecret      string `toml:"client_secret"`
	ReservationScope  string `toml:"reservation_scope"`
	ScheduleScope     string `toml:"schedule_scope"`
	PageSize          int    `toml:"page_size"`
	RequestTimeoutSec int    `toml:"request_timeout_sec"`
}

// EngineConfig carries the availability engine policy knobs.
type EngineConfig struct {
	// MissingPatternPolicy decides how a recurring schedule row with no
	// day pattern is treated: "all" (occurs every day) or "none".
	MissingPatternPolicy string `toml:"missing_pattern_policy"`
	ProximityMinutes     int    `toml:"proximity_minutes"`
	// DedupOverlapFraction is the minimum fraction of the shorter
	// duration two candidates must share before an external reservation
	// is folded into a local event.
	DedupOverlapFraction float64 `toml:"dedup_overlap_fraction"`
	// KeepUnresolved keeps candidates whose resource could not be
	// resolved instead of discarding them.
	KeepUnresolved bool `toml:"keep_unresolved"`
	// PersistHeuristicAliases upserts an alias row whenever a heuristic
	// resolution succeeds so later lookups hit the alias table directly.
	PersistHeuristicAliases bool `toml:"persist_heuristic_aliases"`
}

var cfg *ConfigParam

func Config() *ConfigParam {
	return cfg
}

func defaultConfig() *ConfigParam {
	return &ConfigParam{
		ServerPort: "8176",
		HandleCORS: true,
		DB: DBConfig{
			Host:    "localhost",
			Port:    5432,
			DBName:  "facilops",
			User:    "facilops_api",
			SSLMode: "disable",
		},
		Provider: ProviderCfg{
			ReservationScope:  "reservations",
			ScheduleScope:     "classSchedules",
			PageSize:          100,
			RequestTimeoutSec: 15,
		},
		Engine: EngineConfig{
			MissingPatternPolicy:    "all",
			ProximityMinutes:        15,
			DedupOverlapFraction:    0.8,
			PersistHeuristicAliases: true,
		},
	}
}

func LoadConfig(filename string) error {
	if filename == "" {
		cfg = defaultConfig()
		return nil
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}
	cp := defaultConfig()
	if _, err := toml.Decode(string(content), cp); err != nil {
		return fmt.Errorf("error parsing config file: %v", err)
	}
	if err := validate(cp); err != nil {
		return err
	}
	cfg = cp
	return nil
}

func validate(cp *ConfigParam) error {
	switch cp.Engine.MissingPatternPolicy {
	case "all", "none":
	default:
		return fmt.Errorf("invalid missing_pattern_policy: %q", cp.Engine.MissingPatternPolicy)
	}
	if cp.Engine.DedupOverlapFraction < 0 || cp.Engine.DedupOverlapFraction > 1 {
		return fmt.Errorf("dedup_overlap_fraction must be within [0,1]")
	}
	if cp.Engine.ProximityMinutes < 0 {
		return fmt.Errorf("proximity_minutes must not be negative")
	}
	return nil
}

func init() {
	if err := LoadConfig(""); err != nil {
		panic(err)
	}
}
