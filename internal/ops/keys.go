package ops

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/starchild/orderlybot/orderly/signing"
	"github.com/starchild/orderlybot/orderly/types"
	"github.com/starchild/orderlybot/pkg/logger"
)

// AddKey generates a fresh ed25519 trading key, announces it to the
// exchange under the wallet's EIP-712 signature, and persists it in the
// vault. The vault write happens only after the exchange accepted the
// key, so the vault never holds keys the exchange does not know.
//
// Returns the announced public key ("ed25519:..." form).
func (s *Service) AddKey(ctx context.Context) (string, error) {
	addr, err := s.wallet.Address(ctx)
	if err != nil {
		return "", err
	}
	kp, err := signing.GenerateKeyPair()
	if err != nil {
		return "", errors.Wrap(err, "generate trading key")
	}

	now := time.Now()
	msg := types.AddKeyMessage{
		BrokerID:   s.cfg.Exchange.BrokerID,
		ChainID:    s.cfg.Exchange.ChainID,
		OrderlyKey: kp.PublicKey,
		Scope:      signing.KeyScope,
		Timestamp:  now.UnixMilli(),
		Expiration: now.Add(signing.KeyLifetimeDays * 24 * time.Hour).UnixMilli(),
	}
	sig, err := s.wallet.SignTypedData(ctx, signing.AddKeyTypedData(msg))
	if err != nil {
		return "", errors.Wrap(err, "sign key announcement")
	}

	if _, err := s.exchange.AddOrderlyKey(ctx, types.AddKeyRequest{
		Message:     msg,
		Signature:   sig,
		UserAddress: addr,
	}); err != nil {
		return "", err
	}

	if err := s.vault.Save(ctx, walletID(addr), kp.PublicKey, kp.PrivateKeyHex()); err != nil {
		// The exchange already accepted the key; losing it here means the
		// account has a live key nobody can use. Make that unmissable.
		logger.Errorf("trading key %s accepted by exchange but NOT persisted: %v", kp.PublicKey, err)
		return "", errors.Wrap(err, "persist trading key")
	}

	logger.Infof("added trading key %s for wallet %s (expires %s)",
		kp.PublicKey, addr, time.UnixMilli(msg.Expiration).UTC().Format(time.RFC3339))
	return kp.PublicKey, nil
}

// TradingKey returns the vaulted public key for the custody wallet, or
// ErrNoTradingKey.
func (s *Service) TradingKey(ctx context.Context) (string, error) {
	signer, err := s.trader(ctx)
	if err != nil {
		return "", err
	}
	return signer.Key.PublicKey, nil
}

// DeleteKey removes the vaulted trading key for the custody wallet and
// reports whether one was stored. The exchange keeps honoring the
// announced key until it expires; this only forgets the local secret.
func (s *Service) DeleteKey(ctx context.Context) (bool, error) {
	addr, err := s.wallet.Address(ctx)
	if err != nil {
		return false, err
	}
	existed, err := s.vault.Delete(ctx, walletID(addr))
	if err != nil {
		return false, errors.Wrap(err, "delete trading key")
	}
	if existed {
		logger.Infof("deleted trading key for wallet %s", addr)
	}
	return existed, nil
}
