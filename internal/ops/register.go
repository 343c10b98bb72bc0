package ops

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/starchild/orderlybot/orderly/signing"
	"github.com/starchild/orderlybot/orderly/types"
	"github.com/starchild/orderlybot/pkg/logger"
)

// Register creates the exchange account for the custody wallet:
// fetch a registration nonce, have the wallet sign the Registration
// typed data, and submit both. Returns the exchange account id.
//
// Registering an already registered wallet fails remotely; the exchange's
// rejection is surfaced as-is.
func (s *Service) Register(ctx context.Context) (string, error) {
	addr, err := s.wallet.Address(ctx)
	if err != nil {
		return "", err
	}
	nonce, err := s.exchange.RegistrationNonce(ctx)
	if err != nil {
		return "", err
	}

	msg := types.RegistrationMessage{
		BrokerID:          s.cfg.Exchange.BrokerID,
		ChainID:           s.cfg.Exchange.ChainID,
		Timestamp:         time.Now().UnixMilli(),
		RegistrationNonce: nonce,
	}
	sig, err := s.wallet.SignTypedData(ctx, signing.RegistrationTypedData(msg))
	if err != nil {
		return "", errors.Wrap(err, "sign registration")
	}

	res, err := s.exchange.RegisterAccount(ctx, types.RegisterAccountRequest{
		Message:     msg,
		Signature:   sig,
		UserAddress: addr,
	})
	if err != nil {
		return "", err
	}

	// The exchange derives the account id the same way we do; log a
	// mismatch loudly since it means a broker or chain misconfiguration.
	if local := signing.AccountID(addr, s.cfg.Exchange.BrokerID); local != res.AccountID {
		logger.Warnf("registered account id %s differs from locally derived %s", res.AccountID, local)
	}
	logger.Infof("registered wallet %s as account %s (broker %s, chain %d)",
		addr, res.AccountID, s.cfg.Exchange.BrokerID, s.cfg.Exchange.ChainID)
	return res.AccountID, nil
}
