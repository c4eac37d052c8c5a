package config

import (
	"testing"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/spa_test")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.SlotStepMinutes != 30 {
		t.Errorf("SlotStepMinutes = %d, want 30", cfg.SlotStepMinutes)
	}
	if cfg.BookingGraceMinutes != 15 {
		t.Errorf("BookingGraceMinutes = %d, want 15", cfg.BookingGraceMinutes)
	}
	if !cfg.IsDev() {
		t.Error("default ENV should be development")
	}
}

func TestValidateAuthSecret(t *testing.T) {
	cfg := &Config{Env: "production", SlotStepMinutes: 30}
	if err := cfg.Validate(); err == nil {
		t.Error("production without AUTH_SECRET must fail validation")
	}
	cfg.AuthSecret = "s3cret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateSlotStep(t *testing.T) {
	cfg := &Config{Env: "development", SlotStepMinutes: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("zero slot step must fail validation")
	}
}
