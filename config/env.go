package config

import (
	"os"
	"strconv"
	"strings"

	"monaco/store"
)

// FromEnv applies environment overrides to cfg.
// Unset or malformed variables leave the current value.
func FromEnv(cfg *Config) {
	if val, ok := getEnvUint("RACE_PLAYERS"); ok && val > 0 {
		cfg.Race.Players = int(val)
	}
	if val, ok := getEnvUint("RACE_STARTING_BALANCE"); ok {
		cfg.Race.StartingBalance = val
	}
	if val, ok := getEnvUint("RACE_FINISH_DISTANCE"); ok {
		cfg.Race.FinishDistance = val
	}
	if val, ok := getEnvUint("RACE_POST_SHELL_SPEED"); ok {
		cfg.Race.PostShellSpeed = val
	}

	db := store.OptionsFromEnv()
	if db.Dialect != "" {
		cfg.Storage.Dialect = db.Dialect
	}
	if db.SQLitePath != "" {
		cfg.Storage.SQLitePath = db.SQLitePath
	}
	if db.PostgresDSN != "" {
		cfg.Storage.PostgresDSN = db.PostgresDSN
	}

	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.Log.Level = level
	}
	if dir := strings.TrimSpace(os.Getenv("METRICS_DIR")); dir != "" {
		cfg.Metrics.Dir = dir
	}
}

func getEnvUint(key string) (uint64, bool) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return 0, false
	}
	num, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}
