package ops

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/starchild/orderlybot/orderly/types"
	"github.com/starchild/orderlybot/pkg/logger"
)

// ErrFaucetUnavailable reports that no faucet endpoint exists for the
// configured environment. Only testnet has one.
var ErrFaucetUnavailable = errors.New("faucet is only available on testnet")

// RequestFaucet asks the testnet faucet to credit the custody wallet
// with test USDC.
func (s *Service) RequestFaucet(ctx context.Context) error {
	faucetURL := s.cfg.FaucetURL()
	if faucetURL == "" {
		return ErrFaucetUnavailable
	}
	addr, err := s.wallet.Address(ctx)
	if err != nil {
		return err
	}
	req := types.FaucetRequest{
		ChainID:     strconv.FormatInt(s.cfg.Exchange.ChainID, 10),
		UserAddress: addr,
		BrokerID:    s.cfg.Exchange.BrokerID,
	}
	if err := s.exchange.RequestFaucetUSDC(ctx, faucetURL, req); err != nil {
		return err
	}
	logger.Infof("faucet credit requested for %s on chain %s", addr, req.ChainID)
	return nil
}
