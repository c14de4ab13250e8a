package main

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func setMinimalValidConfigEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("TIMEZONE", "UTC")
}

func TestLoadConfigFromEnvWithDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing-config.yaml"))
	setMinimalValidConfigEnv(t)

	cfg := LoadConfig()

	if cfg.LLMProvider != "anthropic" {
		t.Fatalf("unexpected provider: %q", cfg.LLMProvider)
	}
	if cfg.AnthropicAPIKey != "sk-ant-test" {
		t.Fatalf("unexpected anthropic key: %q", cfg.AnthropicAPIKey)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("unexpected listen addr default: %q", cfg.ListenAddr)
	}
	if cfg.DBPath != "./retail.db" {
		t.Fatalf("unexpected db path default: %q", cfg.DBPath)
	}
	if cfg.Location == nil || cfg.Location.String() != "UTC" {
		t.Fatalf("unexpected location: %v", cfg.Location)
	}
}

func TestLoadConfigYAMLAndEnvOverride(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
listen_addr: ":9090"
db_path: "/tmp/yaml.db"
llm_provider: "anthropic"
anthropic_api_key: "yaml-anthropic"
llm_model: "yaml-model"
timezone: "America/Los_Angeles"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_PATH", cfgPath)
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("DB_PATH", "/tmp/env.db")

	cfg := LoadConfig()

	if cfg.LLMProvider != "openai" {
		t.Fatalf("expected provider from env override, got %q", cfg.LLMProvider)
	}
	if cfg.OpenAIAPIKey != "sk-env" {
		t.Fatalf("expected openai key from env override")
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("expected db path from env override, got %q", cfg.DBPath)
	}
	if cfg.ListenAddr != ":9090" {
		t.Fatalf("expected listen addr from yaml, got %q", cfg.ListenAddr)
	}
	if cfg.LLMModel != "yaml-model" {
		t.Fatalf("expected model from yaml, got %q", cfg.LLMModel)
	}
	if cfg.Location == nil || cfg.Location.String() != "America/Los_Angeles" {
		t.Fatalf("unexpected location: %v", cfg.Location)
	}
}

func TestEnvOverride(t *testing.T) {
	s := "initial"
	t.Setenv("RC_TEST_STR", "value")
	envOverride(&s, "RC_TEST_STR")
	if s != "value" {
		t.Fatalf("envOverride failed, got %q", s)
	}

	t.Setenv("RC_TEST_STR", "")
	envOverride(&s, "RC_TEST_STR")
	if s != "value" {
		t.Fatalf("envOverride should ignore empty values, got %q", s)
	}
}

func TestLoadConfigMissingProviderKeyFatal(t *testing.T) {
	if os.Getenv("TEST_MISSING_KEY_FATAL") == "1" {
		_ = os.Setenv("CONFIG_PATH", filepath.Join(os.TempDir(), "no-config.yaml"))
		_ = os.Setenv("LLM_PROVIDER", "anthropic")
		_ = os.Setenv("ANTHROPIC_API_KEY", "")
		LoadConfig()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestLoadConfigMissingProviderKeyFatal")
	cmd.Env = append(os.Environ(), "TEST_MISSING_KEY_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected subprocess to exit with failure")
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got: %v", err)
	}
}

func TestLoadConfigScheduleRequiresSlackFatal(t *testing.T) {
	if os.Getenv("TEST_SCHEDULE_FATAL") == "1" {
		_ = os.Setenv("CONFIG_PATH", filepath.Join(os.TempDir(), "no-config.yaml"))
		_ = os.Setenv("LLM_PROVIDER", "anthropic")
		_ = os.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
		_ = os.Setenv("SUMMARY_SCHEDULE", "0 9 * * *")
		_ = os.Setenv("SLACK_BOT_TOKEN", "")
		LoadConfig()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestLoadConfigScheduleRequiresSlackFatal")
	cmd.Env = append(os.Environ(), "TEST_SCHEDULE_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected subprocess to exit with failure")
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got: %v", err)
	}
}
