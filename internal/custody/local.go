package custody

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
	"github.com/pkg/errors"

	"github.com/starchild/orderlybot/orderly/signing"
)

// LocalSigner derives the custody key from a BIP-39 mnemonic and signs
// in-process. Meant for development and single-operator deployments where
// a hosted custodian is overkill.
type LocalSigner struct {
	key  *ecdsa.PrivateKey
	addr string
}

func NewLocalSigner(mnemonic, derivationPath string) (*LocalSigner, error) {
	if mnemonic == "" {
		return nil, errors.New("custody: mnemonic is required for the local signer")
	}
	if derivationPath == "" {
		derivationPath = "m/44'/60'/0'/0/0"
	}
	wallet, err := hdwallet.NewFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("custody: parse mnemonic: %w", err)
	}
	path, err := hdwallet.ParseDerivationPath(derivationPath)
	if err != nil {
		return nil, fmt.Errorf("custody: parse derivation path %q: %w", derivationPath, err)
	}
	account, err := wallet.Derive(path, false)
	if err != nil {
		return nil, fmt.Errorf("custody: derive account: %w", err)
	}
	key, err := wallet.PrivateKey(account)
	if err != nil {
		return nil, fmt.Errorf("custody: extract private key: %w", err)
	}
	return &LocalSigner{key: key, addr: account.Address.Hex()}, nil
}

func (s *LocalSigner) Address(ctx context.Context) (string, error) {
	return s.addr, nil
}

func (s *LocalSigner) SignTypedData(ctx context.Context, td apitypes.TypedData) (string, error) {
	digest, err := signing.TypedDataHash(td)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}
	sig, err := crypto.Sign(digest, s.key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}
	// crypto.Sign yields v in {0,1}; the exchange verifies the Ethereum
	// convention.
	sig[64] += 27
	return hexutil.Encode(sig), nil
}
