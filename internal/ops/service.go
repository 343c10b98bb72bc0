// Package ops orchestrates the multi-step exchange flows: account
// registration, key rotation, withdrawals, settlement, and the bulk
// cancel/close sweeps. Each flow composes the custody signer, the key
// vault and the REST client; nothing here talks to the wire directly.
package ops

import (
	"context"
	"strings"
	"time"

	"github.com/starchild/orderlybot/internal/custody"
	"github.com/starchild/orderlybot/orderly/signing"
	"github.com/starchild/orderlybot/orderly/types"
	"github.com/starchild/orderlybot/pkg/config"
	"github.com/starchild/orderlybot/pkg/keyvault"

	"github.com/pkg/errors"
)

// Exchange is the slice of the REST client the flows use.
type Exchange interface {
	RegistrationNonce(ctx context.Context) (int64, error)
	WithdrawNonce(ctx context.Context, signer *signing.RequestSigner) (int64, error)
	SettleNonce(ctx context.Context, signer *signing.RequestSigner) (int64, error)

	RegisterAccount(ctx context.Context, req types.RegisterAccountRequest) (*types.RegisterAccountResult, error)
	AddOrderlyKey(ctx context.Context, req types.AddKeyRequest) (*types.AddKeyResult, error)

	CreateOrder(ctx context.Context, signer *signing.RequestSigner, req types.CreateOrderRequest) (*types.CreateOrderResult, error)
	GetOrders(ctx context.Context, signer *signing.RequestSigner, f types.GetOrdersFilter) (*types.OrderList, error)
	CancelOrder(ctx context.Context, signer *signing.RequestSigner, symbol string, orderID int64) (*types.CancelOrderResult, error)

	GetPositions(ctx context.Context, signer *signing.RequestSigner) (*types.PositionList, error)
	GetHolding(ctx context.Context, signer *signing.RequestSigner) (*types.HoldingList, error)

	Withdraw(ctx context.Context, signer *signing.RequestSigner, req types.WithdrawRequest) (*types.WithdrawResult, error)
	SettlePnl(ctx context.Context, signer *signing.RequestSigner, req types.SettleRequest) error

	RequestFaucetUSDC(ctx context.Context, faucetURL string, req types.FaucetRequest) error
}

// ErrNoTradingKey reports that the vault holds no trading key for the
// custody wallet. Run the add-key flow first.
var ErrNoTradingKey = errors.New("no trading key in vault for wallet")

type Service struct {
	cfg      *config.Config
	exchange Exchange
	wallet   custody.Signer
	vault    keyvault.Vault

	// Inter-request pacing for the bulk sweeps. Overridden in tests.
	cancelDelay time.Duration
	closeDelay  time.Duration
}

func New(cfg *config.Config, exchange Exchange, wallet custody.Signer, vault keyvault.Vault) *Service {
	return &Service{
		cfg:         cfg,
		exchange:    exchange,
		wallet:      wallet,
		vault:       vault,
		cancelDelay: 300 * time.Millisecond,
		closeDelay:  500 * time.Millisecond,
	}
}

// trader loads the vaulted trading key for the custody wallet and builds
// the request signer for authenticated calls.
func (s *Service) trader(ctx context.Context) (*signing.RequestSigner, error) {
	addr, err := s.wallet.Address(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := s.vault.Load(ctx, walletID(addr))
	if err != nil {
		if errors.Is(err, keyvault.ErrNotFound) {
			return nil, errors.Wrap(ErrNoTradingKey, addr)
		}
		return nil, err
	}
	kp, err := signing.KeyPairFromHex(rec.PublicKey, rec.PrivateKeyHex)
	if err != nil {
		return nil, errors.Wrap(err, "restore trading key")
	}
	return &signing.RequestSigner{
		AccountID: signing.AccountID(addr, s.cfg.Exchange.BrokerID),
		Key:       kp,
	}, nil
}

// walletID is the vault lookup key: the lowercased wallet address, so
// checksum casing never splits one wallet into two records.
func walletID(address string) string {
	return strings.ToLower(address)
}
