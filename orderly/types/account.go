package types

// RegistrationMessage is the EIP-712 Registration payload. The same struct
// is both hashed for signing and sent verbatim in the request body.
type RegistrationMessage struct {
	BrokerID          string `json:"brokerId"`
	ChainID           int64  `json:"chainId"`
	Timestamp         int64  `json:"timestamp"`
	RegistrationNonce int64  `json:"registrationNonce"`
}

// RegisterAccountRequest is the body of POST /v1/register_account.
type RegisterAccountRequest struct {
	Message     RegistrationMessage `json:"message"`
	Signature   string              `json:"signature"`
	UserAddress string              `json:"userAddress"`
}

// RegisterAccountResult is its data payload.
type RegisterAccountResult struct {
	AccountID string `json:"account_id"`
}

// AddKeyMessage is the EIP-712 AddOrderlyKey payload.
type AddKeyMessage struct {
	BrokerID   string `json:"brokerId"`
	ChainID    int64  `json:"chainId"`
	OrderlyKey string `json:"orderlyKey"`
	Scope      string `json:"scope"`
	Timestamp  int64  `json:"timestamp"`
	Expiration int64  `json:"expiration"`
}

// AddKeyRequest is the body of POST /v1/orderly_key.
type AddKeyRequest struct {
	Message     AddKeyMessage `json:"message"`
	Signature   string        `json:"signature"`
	UserAddress string        `json:"userAddress"`
}

// AddKeyResult is its data payload.
type AddKeyResult struct {
	OrderlyKey string `json:"orderly_key"`
	ID         string `json:"id"`
}

// WithdrawMessage is the EIP-712 Withdraw payload. Amount, nonce and
// timestamp travel as decimal strings, matching what the ledger contract
// verifies.
type WithdrawMessage struct {
	BrokerID      string `json:"brokerId"`
	ChainID       int64  `json:"chainId"`
	Receiver      string `json:"receiver"`
	Token         string `json:"token"`
	Amount        string `json:"amount"`
	WithdrawNonce string `json:"withdrawNonce"`
	Timestamp     string `json:"timestamp"`
}

// WithdrawRequest is the body of POST /v1/withdraw_request.
type WithdrawRequest struct {
	Message           WithdrawMessage `json:"message"`
	Signature         string          `json:"signature"`
	UserAddress       string          `json:"userAddress"`
	VerifyingContract string          `json:"verifyingContract"`
}

// WithdrawResult is its data payload.
type WithdrawResult struct {
	WithdrawID int64 `json:"withdraw_id"`
}

// FaucetRequest is the body of the testnet faucet endpoint. The chain id
// travels as a string here, unlike everywhere else.
type FaucetRequest struct {
	ChainID     string `json:"chain_id"`
	UserAddress string `json:"user_address"`
	BrokerID    string `json:"broker_id"`
}

// SettleMessage is the EIP-712 SettlePnl payload.
type SettleMessage struct {
	BrokerID    string `json:"brokerId"`
	ChainID     int64  `json:"chainId"`
	SettleNonce string `json:"settleNonce"`
	Timestamp   string `json:"timestamp"`
}

// SettleRequest is the body of POST /v1/settle_pnl.
type SettleRequest struct {
	Message           SettleMessage `json:"message"`
	Signature         string        `json:"signature"`
	UserAddress       string        `json:"userAddress"`
	VerifyingContract string        `json:"verifyingContract"`
}
