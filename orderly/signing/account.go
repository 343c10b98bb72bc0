package signing

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// AccountID derives the Orderly account id for a wallet/broker pair:
// keccak256(abi.encode(address, keccak256(brokerId))). Deterministic, so
// callers may cache it keyed by its inputs.
func AccountID(walletAddress string, brokerID string) string {
	addr := common.HexToAddress(walletAddress)
	brokerHash := crypto.Keccak256([]byte(brokerID))

	// abi.encode(["address","bytes32"]): address left-padded to 32 bytes,
	// then the broker hash.
	buf := make([]byte, 64)
	copy(buf[12:32], addr.Bytes())
	copy(buf[32:], brokerHash)

	return hexutil.Encode(crypto.Keccak256(buf))
}
