package config

import (
	"testing"
	"time"
)

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := Load("../../config/config.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Environment != "development" {
		t.Fatalf("environment = %q", cfg.Environment)
	}
	if len(cfg.Sector.Peers) != 6 {
		t.Fatalf("expected 6 sector peers, got %d", len(cfg.Sector.Peers))
	}
	if cfg.Sector.Peers["NTPC.NS"] != "NTPC Limited" {
		t.Fatalf("peers = %v", cfg.Sector.Peers)
	}
	if cfg.Sector.CacheTTL != time.Hour {
		t.Fatalf("sector cache ttl = %v", cfg.Sector.CacheTTL)
	}
	if len(cfg.Analysis.Symbols) == 0 {
		t.Fatal("expected configured symbols")
	}
}

func TestValidateRequiresEnvironment(t *testing.T) {
	c := &Config{}
	c.applyDefaults()
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error for missing environment")
	}
}

func TestSectorCacheTTLDefault(t *testing.T) {
	c := &Config{Environment: "development"}
	c.applyDefaults()
	if c.Sector.CacheTTL != time.Hour {
		t.Fatalf("sector cache ttl default = %v", c.Sector.CacheTTL)
	}
}
