// Package app wires configuration, logging, custody, vault and the
// exchange client into a ready ops.Service. Every binary boots through
// here so they all agree on configuration sources.
package app

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/starchild/orderlybot/internal/custody"
	"github.com/starchild/orderlybot/internal/ops"
	"github.com/starchild/orderlybot/orderly/client"
	"github.com/starchild/orderlybot/pkg/config"
	"github.com/starchild/orderlybot/pkg/keyvault"
	"github.com/starchild/orderlybot/pkg/logger"
)

type App struct {
	Cfg     *config.Config
	Service *ops.Service

	vault keyvault.Vault
}

// Bootstrap loads configuration (a .env file is honored when present),
// initializes logging and connects the vault.
func Bootstrap(ctx context.Context, configPath string) (*App, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		OutputFile: cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		return nil, errors.Wrap(err, "init logger")
	}

	wallet, err := custody.NewSigner(cfg.Custody)
	if err != nil {
		return nil, err
	}

	cipher, err := keyvault.NewCipher(cfg.Vault.EncryptionKey, cfg.Vault.Salt)
	if err != nil {
		return nil, errors.Wrap(err, "vault cipher")
	}
	vault, err := keyvault.Open(ctx, keyvault.Options{
		Backend: cfg.Vault.Backend,
		Path:    cfg.Vault.Path,
		DSN:     cfg.Vault.DSN,
		Cipher:  cipher,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open vault")
	}

	exchange := client.New(cfg.APIBaseURL())
	return &App{
		Cfg:     cfg,
		Service: ops.New(cfg, exchange, wallet, vault),
		vault:   vault,
	}, nil
}

func (a *App) Close() error {
	return a.vault.Close()
}
