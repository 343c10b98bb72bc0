package ops

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/starchild/orderlybot/orderly/signing"
	"github.com/starchild/orderlybot/orderly/types"
	"github.com/starchild/orderlybot/pkg/logger"
)

// Withdrawal validation errors. All of these are raised before any nonce
// is fetched or anything is signed.
var (
	ErrUnsupportedToken  = errors.New("unsupported withdrawal token")
	ErrAmountTooSmall    = errors.New("withdrawal amount below minimum")
	ErrAmountNotScalable = errors.New("withdrawal amount has more precision than the token supports")
)

// minWithdrawAmount is in token units, not smallest units.
var minWithdrawAmount = decimal.RequireFromString("1.001")

// tokenDecimals maps withdrawable tokens to their on-chain decimals.
var tokenDecimals = map[string]int32{
	"USDC": 6,
	"USDT": 6,
	"DAI":  18,
	"WETH": 18,
	"ETH":  18,
}

// WithdrawParams describes one withdrawal in human token units.
type WithdrawParams struct {
	Token    string
	Amount   decimal.Decimal
	Receiver string // defaults to the custody wallet itself
}

// Withdraw runs the full withdrawal flow: validate locally, fetch a
// withdraw nonce, sign the Withdraw typed data with the custody wallet,
// and submit. Returns the exchange withdraw id.
func (s *Service) Withdraw(ctx context.Context, p WithdrawParams) (int64, error) {
	smallest, err := scaleAmount(p.Token, p.Amount)
	if err != nil {
		return 0, err
	}

	addr, err := s.wallet.Address(ctx)
	if err != nil {
		return 0, err
	}
	receiver := p.Receiver
	if receiver == "" {
		receiver = addr
	}

	trader, err := s.trader(ctx)
	if err != nil {
		return 0, err
	}
	nonce, err := s.exchange.WithdrawNonce(ctx, trader)
	if err != nil {
		return 0, err
	}

	msg := types.WithdrawMessage{
		BrokerID:      s.cfg.Exchange.BrokerID,
		ChainID:       s.cfg.Exchange.ChainID,
		Receiver:      receiver,
		Token:         p.Token,
		Amount:        smallest,
		WithdrawNonce: strconv.FormatInt(nonce, 10),
		Timestamp:     strconv.FormatInt(time.Now().UnixMilli(), 10),
	}
	sig, err := s.wallet.SignTypedData(ctx, signing.WithdrawTypedData(msg))
	if err != nil {
		return 0, errors.Wrap(err, "sign withdrawal")
	}

	res, err := s.exchange.Withdraw(ctx, trader, types.WithdrawRequest{
		Message:           msg,
		Signature:         sig,
		UserAddress:       addr,
		VerifyingContract: signing.SettlementVerifyingContract,
	})
	if err != nil {
		return 0, err
	}
	logger.Infof("withdrawal %d submitted: %s %s to %s", res.WithdrawID, p.Amount, p.Token, receiver)
	return res.WithdrawID, nil
}

// scaleAmount validates the amount and converts it to the token's
// smallest units as a decimal string.
func scaleAmount(token string, amount decimal.Decimal) (string, error) {
	dec, ok := tokenDecimals[token]
	if !ok {
		return "", errors.Wrap(ErrUnsupportedToken, token)
	}
	if amount.LessThan(minWithdrawAmount) {
		return "", fmt.Errorf("%w: %s %s < %s", ErrAmountTooSmall, amount, token, minWithdrawAmount)
	}
	scaled := amount.Shift(dec)
	if !scaled.IsInteger() {
		return "", fmt.Errorf("%w: %s %s (token has %d decimals)", ErrAmountNotScalable, amount, token, dec)
	}
	return scaled.String(), nil
}
