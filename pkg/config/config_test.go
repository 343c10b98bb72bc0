package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Exchange.Environment != EnvTestnet {
		t.Errorf("default environment = %q", cfg.Exchange.Environment)
	}
	if cfg.Vault.Backend != "sqlite" {
		t.Errorf("default vault backend = %q", cfg.Vault.Backend)
	}
	if cfg.Server.Listen == "" {
		t.Error("default listen empty")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
exchange:
  environment: mainnet
  broker_id: my_broker
  chain_id: 42161
custody:
  provider: local
  mnemonic: "test test test test test test test test test test test junk"
vault:
  backend: badger
  path: /tmp/vault
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Exchange.Environment != EnvMainnet || cfg.Exchange.BrokerID != "my_broker" || cfg.Exchange.ChainID != 42161 {
		t.Errorf("exchange = %+v", cfg.Exchange)
	}
	if cfg.Custody.Provider != CustodyLocal {
		t.Errorf("custody provider = %q", cfg.Custody.Provider)
	}
	if cfg.Vault.Backend != "badger" {
		t.Errorf("vault backend = %q", cfg.Vault.Backend)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("exchange:\n  broker_id: from_file\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ORDERLYBOT_BROKER_ID", "from_env")
	t.Setenv("ORDERLYBOT_CHAIN_ID", "10")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Exchange.BrokerID != "from_env" {
		t.Errorf("broker = %q, env must win over file", cfg.Exchange.BrokerID)
	}
	if cfg.Exchange.ChainID != 10 {
		t.Errorf("chain id = %d", cfg.Exchange.ChainID)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad environment", func(c *Config) { c.Exchange.Environment = "devnet" }},
		{"empty broker", func(c *Config) { c.Exchange.BrokerID = "" }},
		{"zero chain", func(c *Config) { c.Exchange.ChainID = 0 }},
		{"bad custody", func(c *Config) { c.Custody.Provider = "vaultco" }},
		{"bad vault", func(c *Config) { c.Vault.Backend = "redis" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaults()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted bad config")
			}
		})
	}
}

func TestAPIBaseURL(t *testing.T) {
	cfg := defaults()
	if got := cfg.APIBaseURL(); got != testnetAPIURL {
		t.Errorf("testnet url = %q", got)
	}
	cfg.Exchange.Environment = EnvMainnet
	if got := cfg.APIBaseURL(); got != mainnetAPIURL {
		t.Errorf("mainnet url = %q", got)
	}
	cfg.Exchange.BaseURL = "https://example.com/"
	if got := cfg.APIBaseURL(); got != "https://example.com" {
		t.Errorf("override url = %q", got)
	}
}

func TestFaucetURL(t *testing.T) {
	cfg := defaults()
	if got := cfg.FaucetURL(); got != testnetFaucetURL {
		t.Errorf("testnet faucet url = %q", got)
	}
	cfg.Exchange.FaucetURL = "https://example.com/faucet"
	if got := cfg.FaucetURL(); got != "https://example.com/faucet" {
		t.Errorf("override faucet url = %q", got)
	}
	cfg = defaults()
	cfg.Exchange.Environment = EnvMainnet
	if got := cfg.FaucetURL(); got != "" {
		t.Errorf("mainnet faucet url = %q, want none", got)
	}
}
