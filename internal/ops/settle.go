package ops

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/starchild/orderlybot/orderly/signing"
	"github.com/starchild/orderlybot/orderly/types"
	"github.com/starchild/orderlybot/pkg/logger"
)

// SettlePnl asks the exchange to move unrealized PnL into the settled
// balance: fetch a settle nonce, sign the SettlePnl typed data with the
// custody wallet, and submit.
func (s *Service) SettlePnl(ctx context.Context) error {
	addr, err := s.wallet.Address(ctx)
	if err != nil {
		return err
	}
	trader, err := s.trader(ctx)
	if err != nil {
		return err
	}
	nonce, err := s.exchange.SettleNonce(ctx, trader)
	if err != nil {
		return err
	}

	msg := types.SettleMessage{
		BrokerID:    s.cfg.Exchange.BrokerID,
		ChainID:     s.cfg.Exchange.ChainID,
		SettleNonce: strconv.FormatInt(nonce, 10),
		Timestamp:   strconv.FormatInt(time.Now().UnixMilli(), 10),
	}
	sig, err := s.wallet.SignTypedData(ctx, signing.SettleTypedData(msg))
	if err != nil {
		return errors.Wrap(err, "sign settlement")
	}

	if err := s.exchange.SettlePnl(ctx, trader, types.SettleRequest{
		Message:           msg,
		Signature:         sig,
		UserAddress:       addr,
		VerifyingContract: signing.SettlementVerifyingContract,
	}); err != nil {
		return err
	}
	logger.Infof("pnl settlement requested for %s (nonce %d)", addr, nonce)
	return nil
}
