package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment names accepted in config files and ORDERLYBOT_ENV.
const (
	EnvMainnet = "mainnet"
	EnvTestnet = "testnet"
)

const (
	mainnetAPIURL    = "https://api.orderly.org"
	testnetAPIURL    = "https://testnet-api.orderly.org"
	testnetFaucetURL = "https://testnet-operator-evm.orderly.org/v1/faucet/usdc"
)

// Custody provider names.
const (
	CustodyPrivy = "privy"
	CustodyLocal = "local"
)

// ExchangeConfig identifies the Orderly environment and broker.
type ExchangeConfig struct {
	Environment string `yaml:"environment"` // mainnet | testnet
	BaseURL     string `yaml:"base_url"`    // overrides the environment default when set
	BrokerID    string `yaml:"broker_id"`
	ChainID     int64  `yaml:"chain_id"`
	FaucetURL   string `yaml:"faucet_url"` // overrides the testnet faucet default when set
}

// CustodyConfig selects the custody wallet signer.
//
// provider=privy talks to a hosted signing service; provider=local derives
// the custody key from a mnemonic and signs in-process.
type CustodyConfig struct {
	Provider string `yaml:"provider"` // privy | local

	// privy
	BaseURL             string `yaml:"base_url"`
	AppID               string `yaml:"app_id"`
	AppSecret           string `yaml:"app_secret"`
	WalletID            string `yaml:"wallet_id"`
	AuthorizationSecret string `yaml:"authorization_secret"`

	// local
	Mnemonic       string `yaml:"mnemonic"`
	DerivationPath string `yaml:"derivation_path"`
}

// VaultConfig selects the key-persistence backend.
type VaultConfig struct {
	Backend string `yaml:"backend"` // sqlite | postgres | badger
	Path    string `yaml:"path"`    // sqlite file / badger dir
	DSN     string `yaml:"dsn"`     // postgres connection string

	// EncryptionKey is the vault secret: 32 bytes (base64 or hex) used
	// directly, anything else treated as a passphrase and run through a KDF
	// with Salt. Usually injected via ORDERLYBOT_VAULT_KEY rather than the
	// config file.
	EncryptionKey string `yaml:"encryption_key"`
	Salt          string `yaml:"salt"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// Config is the immutable application configuration. It is loaded once and
// threaded into every constructor; nothing reads it through globals.
type Config struct {
	Exchange ExchangeConfig `yaml:"exchange"`
	Custody  CustodyConfig  `yaml:"custody"`
	Vault    VaultConfig    `yaml:"vault"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// Load reads the YAML file at path (optional: empty path skips the file),
// applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Exchange: ExchangeConfig{
			Environment: EnvTestnet,
			BrokerID:    "starchild",
			ChainID:     8453,
		},
		Custody: CustodyConfig{
			Provider:       CustodyPrivy,
			BaseURL:        "https://auth.privy.io/api/v1",
			DerivationPath: "m/44'/60'/0'/0/0",
		},
		Vault: VaultConfig{
			Backend: "sqlite",
			Path:    "data/keyvault.db",
		},
		Server: ServerConfig{Listen: ":3000"},
		Log:    LogConfig{Level: "info"},
	}
}

func applyEnv(cfg *Config) {
	setStr := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setStr(&cfg.Exchange.Environment, "ORDERLYBOT_ENV")
	setStr(&cfg.Exchange.BaseURL, "ORDERLYBOT_API_URL")
	setStr(&cfg.Exchange.BrokerID, "ORDERLYBOT_BROKER_ID")
	setStr(&cfg.Exchange.FaucetURL, "ORDERLYBOT_FAUCET_URL")
	if v := strings.TrimSpace(os.Getenv("ORDERLYBOT_CHAIN_ID")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Exchange.ChainID = n
		}
	}

	setStr(&cfg.Custody.Provider, "ORDERLYBOT_CUSTODY_PROVIDER")
	setStr(&cfg.Custody.BaseURL, "PRIVY_API_URL")
	setStr(&cfg.Custody.AppID, "PRIVY_APP_ID")
	setStr(&cfg.Custody.AppSecret, "PRIVY_APP_SECRET")
	setStr(&cfg.Custody.WalletID, "PRIVY_WALLET_ID")
	setStr(&cfg.Custody.AuthorizationSecret, "PRIVY_AUTHORIZATION_SECRET")
	setStr(&cfg.Custody.Mnemonic, "ORDERLYBOT_CUSTODY_MNEMONIC")
	setStr(&cfg.Custody.DerivationPath, "ORDERLYBOT_CUSTODY_DERIVATION_PATH")

	setStr(&cfg.Vault.Backend, "ORDERLYBOT_VAULT_BACKEND")
	setStr(&cfg.Vault.Path, "ORDERLYBOT_VAULT_PATH")
	setStr(&cfg.Vault.DSN, "DATABASE_URL")
	setStr(&cfg.Vault.EncryptionKey, "ORDERLYBOT_VAULT_KEY")
	setStr(&cfg.Vault.Salt, "ORDERLYBOT_VAULT_SALT")

	setStr(&cfg.Server.Listen, "ORDERLYBOT_LISTEN")
	setStr(&cfg.Log.Level, "ORDERLYBOT_LOG_LEVEL")
	setStr(&cfg.Log.File, "ORDERLYBOT_LOG_FILE")
}

func (c *Config) Validate() error {
	switch c.Exchange.Environment {
	case EnvMainnet, EnvTestnet:
	default:
		return fmt.Errorf("config: unknown exchange environment %q", c.Exchange.Environment)
	}
	if c.Exchange.BrokerID == "" {
		return fmt.Errorf("config: exchange.broker_id is required")
	}
	if c.Exchange.ChainID <= 0 {
		return fmt.Errorf("config: exchange.chain_id must be positive")
	}
	switch c.Custody.Provider {
	case CustodyPrivy, CustodyLocal:
	default:
		return fmt.Errorf("config: unknown custody provider %q", c.Custody.Provider)
	}
	switch c.Vault.Backend {
	case "sqlite", "postgres", "badger":
	default:
		return fmt.Errorf("config: unknown vault backend %q", c.Vault.Backend)
	}
	return nil
}

// APIBaseURL resolves the Orderly REST base URL for the configured
// environment.
func (c *Config) APIBaseURL() string {
	if c.Exchange.BaseURL != "" {
		return strings.TrimSuffix(c.Exchange.BaseURL, "/")
	}
	if c.Exchange.Environment == EnvMainnet {
		return mainnetAPIURL
	}
	return testnetAPIURL
}

// FaucetURL resolves the test-USDC faucet endpoint. Empty on mainnet:
// there is no faucet to call.
func (c *Config) FaucetURL() string {
	if c.Exchange.FaucetURL != "" {
		return c.Exchange.FaucetURL
	}
	if c.Exchange.Environment == EnvTestnet {
		return testnetFaucetURL
	}
	return ""
}
