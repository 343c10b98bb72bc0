package signing

const (
	// OrderlyDomainName is the EIP-712 domain name all custody operations
	// are scoped to.
	OrderlyDomainName = "Orderly"

	// OrderlyDomainVersion is the EIP-712 domain version.
	OrderlyDomainVersion = "1"

	// RegistrationVerifyingContract verifies Registration and AddOrderlyKey
	// signatures. Key-management operations are checked off-chain against
	// this fixed address.
	RegistrationVerifyingContract = "0xCcCCccccCCCCcCCCCCCcCcCccCcCCCcCcccccccC"

	// SettlementVerifyingContract is the on-chain ledger contract that
	// verifies Withdraw and SettlePnl signatures. Signing a withdrawal
	// against the registration contract produces a signature the exchange
	// rejects as belonging to a different domain, so the pairing is fixed
	// here and never accepted from callers.
	SettlementVerifyingContract = "0x6F7a338F2aA472838dEFD3283eB360d4Dff5D203"

	// KeyScope is the permission scope requested for generated signing keys.
	KeyScope = "read,trading"

	// KeyLifetimeDays is how long a registered signing key stays valid.
	KeyLifetimeDays = 365
)
