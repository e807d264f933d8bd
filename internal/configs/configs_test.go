package configs

import (
	"os"
	"testing"
)

// clearEnv unsets every variable LoadConfig reads so ambient values from the
// test environment cannot leak into a case. t.Setenv registers the restore;
// os.Unsetenv makes the variable truly absent rather than empty.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS", "HISTORY_FILE", "MAX_HISTORY"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if !cfg.IsDevelopment() {
		t.Fatalf("expected development default, got %q", cfg.Environment)
	}
	if cfg.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.HistoryFile != "history.json" {
		t.Fatalf("expected default history file, got %q", cfg.HistoryFile)
	}
	if cfg.MaxHistory != 100 {
		t.Fatalf("expected default history cap 100, got %d", cfg.MaxHistory)
	}
}

func TestLoadConfigRejectsPrivilegedPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "80")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for privileged port")
	}
}

func TestLoadConfigRejectsNonPositiveMaxHistory(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_HISTORY", "0")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for non-positive MAX_HISTORY")
	}
}

func TestLoadConfigProductionRequiresOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when production has no allowed origins")
	}

	t.Setenv("ALLOWED_ORIGINS", "https://chat.example.com,https://app.example.com")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.AllowedOrigins)
	}
}
