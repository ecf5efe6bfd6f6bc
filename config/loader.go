package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort           = 16180
	DefaultTimezone       = "America/New_York"
	DefaultPollIntervalMS = 60000
	DefaultTimeoutMS      = 15000
	DefaultRefreshAt      = "01:30"
)

// Load reads the configuration from the first readable path, applies
// environment overrides and defaults, and validates the result.
func Load(paths ...string) (AppConfig, error) {
	if len(paths) == 0 {
		paths = []string{"config.yml", "./config/config.yml"}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return AppConfig{}, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return AppConfig{}, err
	}
	if err := v.Struct(cfg.Schedule); err != nil {
		return AppConfig{}, err
	}
	if err := v.Struct(cfg.Realtime); err != nil {
		return AppConfig{}, err
	}
	if err := v.Struct(cfg.NATS); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// applyEnvOverrides lets the environment (or a .env file) supply values that
// do not belong in a checked-in config.yml.
func applyEnvOverrides(cfg *AppConfig) {
	_ = godotenv.Load()

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Schedule.DatabaseURL = v
	}
	if v := os.Getenv("FEED_URL"); v != "" {
		cfg.Realtime.FeedURL = v
	}
	if v := os.Getenv("FEED_API_KEY"); v != "" {
		cfg.Realtime.APIKey = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("TZ"); v != "" {
		cfg.Schedule.Timezone = v
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Schedule.Timezone == "" {
		cfg.Schedule.Timezone = DefaultTimezone
	}
	if cfg.Schedule.RefreshAt == "" {
		cfg.Schedule.RefreshAt = DefaultRefreshAt
	}
	if cfg.Realtime.PollIntervalMS == 0 {
		cfg.Realtime.PollIntervalMS = DefaultPollIntervalMS
	}
	if cfg.Realtime.TimeoutMS == 0 {
		cfg.Realtime.TimeoutMS = DefaultTimeoutMS
	}
	if cfg.NATS.SubjectPrefix == "" {
		cfg.NATS.SubjectPrefix = "delays"
	}
}
