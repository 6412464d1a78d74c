package config

import (
	"testing"
	"time"
)

func TestGetSystemSettingString_Defaults(t *testing.T) {
	t.Setenv(TICK_INTERVAL, "")
	t.Setenv(SERVER_WEB_PORT, "")

	if got := GetSystemSettingString(TICK_INTERVAL); got != "1ms" {
		t.Errorf("Expected default tick interval 1ms, got %q", got)
	}
	if got := GetSystemSettingString(SERVER_WEB_PORT); got != "8080" {
		t.Errorf("Expected default port 8080, got %q", got)
	}
	if got := GetSystemSettingString(DATABASE_TYPE); got != "" {
		t.Errorf("Expected empty database type, got %q", got)
	}
}

func TestGetSystemSettingDuration(t *testing.T) {
	t.Setenv(TICK_INTERVAL, "250us")
	if got := GetSystemSettingDuration(TICK_INTERVAL); got != 250*time.Microsecond {
		t.Errorf("Expected 250us, got %s", got)
	}

	t.Setenv(TICK_INTERVAL, "not-a-duration")
	if got := GetSystemSettingDuration(TICK_INTERVAL); got != 0 {
		t.Errorf("Expected 0 for invalid duration, got %s", got)
	}
}

func TestGetSystemSettingInteger(t *testing.T) {
	t.Setenv(ENGINE_COUNT, "4")
	if got := GetSystemSettingInteger(ENGINE_COUNT); got != 4 {
		t.Errorf("Expected 4, got %d", got)
	}

	t.Setenv(ENGINE_COUNT, "four")
	if got := GetSystemSettingInteger(ENGINE_COUNT); got != 0 {
		t.Errorf("Expected 0 for invalid integer, got %d", got)
	}
}

func TestValidDatabaseType(t *testing.T) {
	for _, typ := range []string{DATABASE_TYPE_POSTGRES, DATABASE_TYPE_MYSQL, DATABASE_TYPE_SQLLITE} {
		if !ValidDatabaseType(typ) {
			t.Errorf("Expected %s to be valid", typ)
		}
	}
	if ValidDatabaseType("ORACLE") {
		t.Error("Expected ORACLE to be invalid")
	}
}
