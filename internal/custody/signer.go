// Package custody abstracts who holds the EVM wallet key. Custody
// operations (registration, key announcement, withdrawal, settlement)
// need an EIP-712 wallet signature; this package produces one either
// through a remote custodian's API or from a local mnemonic.
package custody

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"

	"github.com/starchild/orderlybot/pkg/config"
)

// ErrSigningFailed reports that the wallet signature could not be
// produced. Nothing has been sent to the exchange when this is returned.
var ErrSigningFailed = errors.New("wallet signing failed")

// Signer signs EIP-712 typed data on behalf of one wallet.
type Signer interface {
	// Address returns the wallet's checksummed EVM address.
	Address(ctx context.Context) (string, error)
	// SignTypedData returns the 65-byte signature as 0x-hex, with the
	// recovery byte in Ethereum's 27/28 convention.
	SignTypedData(ctx context.Context, td apitypes.TypedData) (string, error)
}

// NewSigner builds the signer selected by the custody configuration.
func NewSigner(cfg config.CustodyConfig) (Signer, error) {
	switch cfg.Provider {
	case config.CustodyPrivy:
		return NewPrivySigner(cfg)
	case config.CustodyLocal:
		return NewLocalSigner(cfg.Mnemonic, cfg.DerivationPath)
	default:
		return nil, fmt.Errorf("unknown custody provider %q", cfg.Provider)
	}
}
