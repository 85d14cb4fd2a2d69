package configs

import (
	"testing"
	"time"

	gormLogger "gorm.io/gorm/logger"
)

func TestGetEnvDefaults(t *testing.T) {
	t.Setenv("SEKOLAHKU_EMPTY", "")
	if got := GetEnv("SEKOLAHKU_EMPTY", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for empty value, got %q", got)
	}
	if got := GetEnv("SEKOLAHKU_MISSING_KEY", "x"); got != "x" {
		t.Fatalf("expected default for missing key, got %q", got)
	}
	t.Setenv("SEKOLAHKU_SET", "  value ")
	if got := GetEnv("SEKOLAHKU_SET", "x"); got != "value" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestGetEnvTyped(t *testing.T) {
	t.Setenv("SEKOLAHKU_INT", "42")
	t.Setenv("SEKOLAHKU_BAD_INT", "abc")
	t.Setenv("SEKOLAHKU_BOOL", "yes")
	t.Setenv("SEKOLAHKU_DUR", "15m")
	t.Setenv("SEKOLAHKU_DUR_SECS", "90")

	if got := GetEnvInt("SEKOLAHKU_INT", 1); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := GetEnvInt("SEKOLAHKU_BAD_INT", 7); got != 7 {
		t.Fatalf("expected default 7, got %d", got)
	}
	if !GetEnvBool("SEKOLAHKU_BOOL", false) {
		t.Fatalf("expected bool true")
	}
	if GetEnvBool("SEKOLAHKU_BOOL_MISSING", false) {
		t.Fatalf("expected default false")
	}
	if got := GetEnvDuration("SEKOLAHKU_DUR", time.Second); got != 15*time.Minute {
		t.Fatalf("expected 15m, got %s", got)
	}
	if got := GetEnvDuration("SEKOLAHKU_DUR_SECS", time.Second); got != 90*time.Second {
		t.Fatalf("expected 90s, got %s", got)
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("SEKOLAHKU_LIST", " 10.0.0.0/8, ,173.245.48.0/20 ")
	got := GetEnvList("SEKOLAHKU_LIST", "127.0.0.1")
	if len(got) != 2 || got[0] != "10.0.0.0/8" || got[1] != "173.245.48.0/20" {
		t.Fatalf("unexpected list %v", got)
	}
	t.Setenv("SEKOLAHKU_LIST_EMPTY", " , ")
	if got := GetEnvList("SEKOLAHKU_LIST_EMPTY", "127.0.0.1", "::1"); len(got) != 2 || got[0] != "127.0.0.1" {
		t.Fatalf("expected defaults, got %v", got)
	}
	if got := GetEnvList("SEKOLAHKU_LIST_MISSING"); got != nil {
		t.Fatalf("expected nil without defaults, got %v", got)
	}
}

func TestLoadEnvReadsSecrets(t *testing.T) {
	t.Setenv("RAILWAY_ENVIRONMENT", "test")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MIDTRANS_USE_PROD", "true")

	LoadEnv()
	if JWTSecret != "s3cret" {
		t.Fatalf("expected JWT_SECRET loaded, got %q", JWTSecret)
	}
	if !MidtransUseProd {
		t.Fatalf("expected MidtransUseProd true")
	}
}

func TestGormLoggerLogModeReturnsCopy(t *testing.T) {
	base := &GormLogger{LogLevel: gormLogger.Warn}
	l := base.LogMode(gormLogger.Info).(*GormLogger)
	if l.LogLevel != gormLogger.Info {
		t.Fatalf("expected info level on copy")
	}
	if base.LogLevel != gormLogger.Warn {
		t.Fatalf("base logger level must not change")
	}
}
