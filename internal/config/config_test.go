package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JUDICIARY_BASE_URL", "https://example.test")
	t.Setenv("JUDICIARY_RATE_LIMIT_RPS", "not-a-number")
	t.Setenv("JUDICIARY_GROUPS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.JudiciaryBaseURL != "https://example.test" {
		t.Fatalf("base url=%s", cfg.JudiciaryBaseURL)
	}
	if cfg.JudiciaryRateLimitRPS != 2 {
		t.Fatalf("rps=%d", cfg.JudiciaryRateLimitRPS)
	}
	if cfg.JudiciaryGroups != nil {
		t.Fatalf("groups=%v", cfg.JudiciaryGroups)
	}
}

func TestSplitGroups(t *testing.T) {
	got := SplitGroups(" ;#High Court;#High Court - Civil;# | |;#Magistrate Court;#Magistrate's Court - Criminal;#")
	if len(got) != 2 {
		t.Fatalf("len=%d %v", len(got), got)
	}
	if got[1] != ";#Magistrate Court;#Magistrate's Court - Criminal;#" {
		t.Fatalf("got[1]=%q", got[1])
	}
}

func TestRequire(t *testing.T) {
	var cfg Config
	if err := cfg.Require("DB_PATH", "  "); err == nil {
		t.Fatal("expected error")
	}
	if err := cfg.Require("DB_PATH", "x"); err != nil {
		t.Fatal(err)
	}
}
