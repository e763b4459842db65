package config

import "testing"

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := Config{MaxBodyBytes: 4096}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}

	cfg.DatabaseURL = "postgres://localhost/leavedesk"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateEmailNeedsHost(t *testing.T) {
	cfg := Config{
		DatabaseURL:  "postgres://localhost/leavedesk",
		MaxBodyBytes: 4096,
		EmailEnabled: true,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when EMAIL_ENABLED without SMTP_HOST")
	}

	cfg.SMTPHost = "smtp.example.com"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateProductionRequiresSecret(t *testing.T) {
	cfg := Config{
		DatabaseURL:  "postgres://localhost/leavedesk",
		MaxBodyBytes: 4096,
		Environment:  "production",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET in production")
	}

	cfg.JWTSecret = "secret"
	cfg.RunSeed = true
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty seed password with RUN_SEED in production")
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("LEAVEDESK_TEST_LIST", "a@example.com, b@example.com ,,c@example.com")
	got := getEnvList("LEAVEDESK_TEST_LIST")
	want := []string{"a@example.com", "b@example.com", "c@example.com"}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
