package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite:ledger.db")
	t.Setenv("LEDGER_TX_MAX_ATTEMPTS", "5")
	t.Setenv("LEDGER_SCHEDULER_INTERVAL", "15m")
	t.Setenv("LEDGER_SCHEDULER_ENABLED", "false")
	t.Setenv("LEDGER_CONCURRENCY", "not-a-number")

	cfg := Load()

	if !cfg.Database.IsSQLite() || cfg.Database.SQLitePath() != "ledger.db" {
		t.Errorf("database = %q, want sqlite ledger.db", cfg.Database.URL)
	}
	if cfg.Ledger.TxMaxAttempts != 5 {
		t.Errorf("TxMaxAttempts = %d, want 5", cfg.Ledger.TxMaxAttempts)
	}
	if cfg.Ledger.SchedulerInterval != 15*time.Minute {
		t.Errorf("SchedulerInterval = %v, want 15m", cfg.Ledger.SchedulerInterval)
	}
	if cfg.Ledger.SchedulerEnabled {
		t.Error("SchedulerEnabled = true, want false")
	}
	if cfg.Ledger.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want the default 4", cfg.Ledger.Concurrency)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Load()
	cfg.Server.Port = 0
	cfg.JWT.Secret = ""
	cfg.Ledger.Concurrency = 0
	cfg.Log.Level = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"SERVER_PORT", "JWT_SECRET", "LEDGER_CONCURRENCY", "LOG_LEVEL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}
