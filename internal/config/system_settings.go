package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const DATABASE_TYPE = "EPOCH_DATABASE_TYPE" // empty disables run history
const DATABASE_URL = "EPOCH_DATABASE_URL"
const DATABASE_SQLLITE_FILE_NAME = "EPOCH_DATABASE_SQLLITE_FILE_NAME"
const TICK_INTERVAL = "EPOCH_TICK_INTERVAL"
const ENGINE_COUNT = "EPOCH_ENGINE_COUNT" //number of in-process engines the daemon ticks
const HEARTBEAT_INTERVAL = "EPOCH_HEARTBEAT_INTERVAL"
const SERVER_WEB_PORT = "EPOCH_SERVER_WEB_PORT"
const ADMIN_API_KEY_HASH = "EPOCH_ADMIN_API_KEY_HASH" //bcrypt hash of the X-API-Key accepted by the admin routes
const RUN_NAME = "EPOCH_RUN_NAME"

const DATABASE_TYPE_POSTGRES = "POSTGRES"
const DATABASE_TYPE_MYSQL = "MYSQL"
const DATABASE_TYPE_SQLLITE = "SQLLITE"

func GetSystemSettingInteger(settingKey string) int {
	val := GetSystemSettingString(settingKey)
	if val != "" {
		intValue, err := strconv.Atoi(val)
		if err != nil {
			slog.Warn("Invalid integer setting", "key", settingKey, "value", val)
			return 0
		}
		return intValue
	}
	return 0
}

// GetSystemSettingDuration parses the setting with time.ParseDuration and
// returns 0 when it is missing or invalid.
func GetSystemSettingDuration(settingKey string) time.Duration {
	val := GetSystemSettingString(settingKey)
	if val == "" {
		return 0
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		slog.Warn("Invalid duration setting", "key", settingKey, "value", val)
		return 0
	}
	return dur
}

func GetSystemSettingString(settingKey string) string {
	val := os.Getenv(settingKey)
	if val != "" {
		return val
	}
	switch settingKey {
	case TICK_INTERVAL:
		return "1ms"
	case ENGINE_COUNT:
		return "1"
	case HEARTBEAT_INTERVAL:
		return "5s"
	case SERVER_WEB_PORT:
		return "8080"
	case DATABASE_SQLLITE_FILE_NAME:
		return "./epochtick.db"
	}
	return ""
}

// ValidDatabaseType reports whether t names a supported run history backend.
func ValidDatabaseType(t string) bool {
	return t == DATABASE_TYPE_POSTGRES || t == DATABASE_TYPE_MYSQL || t == DATABASE_TYPE_SQLLITE
}
