package signing

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/starchild/orderlybot/orderly/types"
)

// Primary types of the four custody operations.
const (
	PrimaryTypeRegistration = "Registration"
	PrimaryTypeAddKey       = "AddOrderlyKey"
	PrimaryTypeWithdraw     = "Withdraw"
	PrimaryTypeSettlePnl    = "SettlePnl"
)

var domainType = []apitypes.Type{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
	{Name: "verifyingContract", Type: "address"},
}

func domain(chainID int64, verifyingContract string) apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:              OrderlyDomainName,
		Version:           OrderlyDomainVersion,
		ChainId:           math.NewHexOrDecimal256(chainID),
		VerifyingContract: verifyingContract,
	}
}

// RegistrationTypedData builds the typed payload for account registration.
func RegistrationTypedData(msg types.RegistrationMessage) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainType,
			PrimaryTypeRegistration: {
				{Name: "brokerId", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "timestamp", Type: "uint64"},
				{Name: "registrationNonce", Type: "uint256"},
			},
		},
		PrimaryType: PrimaryTypeRegistration,
		Domain:      domain(msg.ChainID, RegistrationVerifyingContract),
		Message: apitypes.TypedDataMessage{
			"brokerId":          msg.BrokerID,
			"chainId":           strconv.FormatInt(msg.ChainID, 10),
			"timestamp":         strconv.FormatInt(msg.Timestamp, 10),
			"registrationNonce": strconv.FormatInt(msg.RegistrationNonce, 10),
		},
	}
}

// AddKeyTypedData builds the typed payload for registering a new exchange
// signing key.
func AddKeyTypedData(msg types.AddKeyMessage) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainType,
			PrimaryTypeAddKey: {
				{Name: "brokerId", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "orderlyKey", Type: "string"},
				{Name: "scope", Type: "string"},
				{Name: "timestamp", Type: "uint64"},
				{Name: "expiration", Type: "uint64"},
			},
		},
		PrimaryType: PrimaryTypeAddKey,
		Domain:      domain(msg.ChainID, RegistrationVerifyingContract),
		Message: apitypes.TypedDataMessage{
			"brokerId":   msg.BrokerID,
			"chainId":    strconv.FormatInt(msg.ChainID, 10),
			"orderlyKey": msg.OrderlyKey,
			"scope":      msg.Scope,
			"timestamp":  strconv.FormatInt(msg.Timestamp, 10),
			"expiration": strconv.FormatInt(msg.Expiration, 10),
		},
	}
}

// WithdrawTypedData builds the typed payload for a withdrawal request.
func WithdrawTypedData(msg types.WithdrawMessage) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainType,
			PrimaryTypeWithdraw: {
				{Name: "brokerId", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "receiver", Type: "address"},
				{Name: "token", Type: "string"},
				{Name: "amount", Type: "uint256"},
				{Name: "withdrawNonce", Type: "uint64"},
				{Name: "timestamp", Type: "uint64"},
			},
		},
		PrimaryType: PrimaryTypeWithdraw,
		Domain:      domain(msg.ChainID, SettlementVerifyingContract),
		Message: apitypes.TypedDataMessage{
			"brokerId":      msg.BrokerID,
			"chainId":       strconv.FormatInt(msg.ChainID, 10),
			"receiver":      msg.Receiver,
			"token":         msg.Token,
			"amount":        msg.Amount,
			"withdrawNonce": msg.WithdrawNonce,
			"timestamp":     msg.Timestamp,
		},
	}
}

// SettleTypedData builds the typed payload for PnL settlement.
func SettleTypedData(msg types.SettleMessage) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainType,
			PrimaryTypeSettlePnl: {
				{Name: "brokerId", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "settleNonce", Type: "uint64"},
				{Name: "timestamp", Type: "uint64"},
			},
		},
		PrimaryType: PrimaryTypeSettlePnl,
		Domain:      domain(msg.ChainID, SettlementVerifyingContract),
		Message: apitypes.TypedDataMessage{
			"brokerId":    msg.BrokerID,
			"chainId":     strconv.FormatInt(msg.ChainID, 10),
			"settleNonce": msg.SettleNonce,
			"timestamp":   msg.Timestamp,
		},
	}
}

// TypedDataHash computes the EIP-712 digest:
// keccak256("\x19\x01" || domainSeparator || hashStruct(message)).
func TypedDataHash(td apitypes.TypedData) ([]byte, error) {
	domainSeparator, err := td.HashStruct("EIP712Domain", td.Domain.Map())
	if err != nil {
		return nil, fmt.Errorf("hash domain: %w", err)
	}
	messageHash, err := td.HashStruct(td.PrimaryType, td.Message)
	if err != nil {
		return nil, fmt.Errorf("hash message: %w", err)
	}
	raw := []byte("\x19\x01")
	raw = append(raw, domainSeparator...)
	raw = append(raw, messageHash...)
	return crypto.Keccak256(raw), nil
}
