package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DISCORD_WEBHOOK_URL", "YIELD_THRESHOLD", "CRON_DAILY", "SQLITE_PATH", "HTTPS_PROXY"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Screen.Threshold != 6.0 {
		t.Errorf("expected default threshold 6.0, got %v", cfg.Screen.Threshold)
	}
	if cfg.Screen.MarketSuffix != ".SI" {
		t.Errorf("expected default suffix .SI, got %q", cfg.Screen.MarketSuffix)
	}
	if cfg.Screen.MaxWorkers != 10 {
		t.Errorf("expected default workers 10, got %d", cfg.Screen.MaxWorkers)
	}
	if len(cfg.Screen.Symbols) == 0 {
		t.Error("expected default symbol list")
	}
}

func TestLoad_ExplicitZeroThreshold(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "screen:\n  threshold: 0\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Screen.Threshold != 0 {
		t.Errorf("explicit zero threshold must survive, got %v", cfg.Screen.Threshold)
	}
}

func TestLoad_ThresholdEnvOverride(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "screen:\n  threshold: 7.5\n")
	t.Setenv("YIELD_THRESHOLD", "0")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Screen.Threshold != 0 {
		t.Errorf("env override should win, got %v", cfg.Screen.Threshold)
	}
}

func TestValidate_RequiresWebhook(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error without webhook URL")
	}
	cfg.Discord.WebhookURL = "https://discord.com/api/webhooks/1/x"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}
