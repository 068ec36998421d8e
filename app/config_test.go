package app

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `
telegram:
  token: "123:abc"
  run_mode: longpoll
logging:
  level: debug
  format: kv
database:
  host: localhost
  port: "5432"
  user: liftbot
  name: liftbot
  sslmode: disable
bot:
  login_attempts: 5
`

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Core.Telegram.Token != "123:abc" {
		t.Errorf("token = %q", cfg.Core.Telegram.Token)
	}
	if cfg.Core.Telegram.RunMode != "longpoll" {
		t.Errorf("run mode = %q", cfg.Core.Telegram.RunMode)
	}
	if cfg.Database.Name != "liftbot" {
		t.Errorf("database name = %q", cfg.Database.Name)
	}
	if cfg.Bot.LoginAttempts != 5 {
		t.Errorf("login attempts = %d", cfg.Bot.LoginAttempts)
	}
	if cfg.CoreConfig() != &cfg.Core {
		t.Error("CoreConfig must expose the embedded core config")
	}
}

func TestLoadConfigMissingToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("telegram:\n  run_mode: longpoll\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("missing token must fail validation")
	}
}
