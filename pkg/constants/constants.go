package constants

import "time"

const (
	DelayBetweenRPCCalls   = 200              // delay in milliseconds between RPC calls
	RPCRequestTimeout      = 10 * time.Second // timeout for a single RPC call
	HealthCheckTimeout     = 3 * time.Second  // timeout for getHealth checks
	TLSHandshakeTimeout    = 10 * time.Second // timeout for TLS handshake
	ResponseHeaderTimeout  = 20 * time.Second // timeout for response header
	ExpectContinueTimeout  = 1 * time.Second  // timeout for expect continue
	MaxRetries             = 5                // maximum number of attempts across RPC endpoints
	MaxResponseBodySize    = 10 * 1024 * 1024 // maximum response body size in bytes (10MB)
	TransactionPollPeriod  = 1 * time.Second  // interval between getTransaction polls
	TransactionWaitTimeout = 30 * time.Second // how long WaitForTransaction polls before giving up
)

// Wallet discovery timings
const (
	ProviderPollInterval = 200 * time.Millisecond // interval between provider global lookups
	ConnectWaitTimeout   = 3 * time.Second        // how long connect waits for the provider to be injected
	ScriptPollInterval   = 100 * time.Millisecond // interval between symbol checks on an existing script tag
	ScriptPollAttempts   = 50                     // symbol checks before giving up on an existing script tag
	IsConnectedBudget    = 250 * time.Millisecond // budget for the provider's isConnected call
)

// Provider global names, newest first
const (
	ProviderGlobalModern = "freighterApi"
	ProviderGlobalLegacy = "freighter"
	SDKGlobal            = "StellarSdk"
)

var ProviderGlobals = []string{ProviderGlobalModern, ProviderGlobalLegacy}

// Pinned module sources
const (
	SDKVersion      = "12.3.0"
	SDKPrimaryURL   = "https://unpkg.com/@stellar/stellar-sdk@" + SDKVersion + "/dist/stellar-sdk.min.js"
	SDKFallbackURL  = "https://cdn.jsdelivr.net/npm/@stellar/stellar-sdk@" + SDKVersion + "/dist/stellar-sdk.min.js"
	WalletModuleURL = "https://esm.sh/@stellar/freighter-api@3.0.0"
)

var SDKSources = []string{SDKPrimaryURL, SDKFallbackURL}

// Wallet API method names
const (
	MethodIsConnected     = "isConnected"
	MethodRequestAccess   = "requestAccess"
	MethodGetPublicKey    = "getPublicKey"
	MethodGetAddress      = "getAddress"
	MethodSignTransaction = "signTransaction"
)

const ProviderNotFound = "Freighter not found"

// Network Types
const (
	NetworkTestnet   = "testnet"
	NetworkFuturenet = "futurenet"
	NetworkMainnet   = "mainnet"
)

// Network tags passed by callers of signTransaction
const (
	NetworkTagTestnet   = "TESTNET"
	NetworkTagFuturenet = "FUTURENET"
	NetworkTagPublic    = "PUBLIC"
)

const (
	PassphraseTestnet   = "Test SDF Network ; September 2015"
	PassphraseFuturenet = "Test SDF Future Network ; October 2022"
	PassphrasePublic    = "Public Global Stellar Network ; September 2015"
)

var NetworkToPassphrase = map[string]string{
	NetworkTestnet:   PassphraseTestnet,
	NetworkFuturenet: PassphraseFuturenet,
	NetworkMainnet:   PassphrasePublic,
}

var NetworkToTag = map[string]string{
	NetworkTestnet:   NetworkTagTestnet,
	NetworkFuturenet: NetworkTagFuturenet,
	NetworkMainnet:   NetworkTagPublic,
}

// Mainnet has no SDF-operated Soroban RPC; it must be configured.
var OfficialRPCEndpoints = map[string][]string{
	NetworkTestnet:   {"https://soroban-testnet.stellar.org"},
	NetworkFuturenet: {"https://rpc-futurenet.stellar.org"},
}

var FriendbotURLs = map[string]string{
	NetworkTestnet:   "https://friendbot.stellar.org",
	NetworkFuturenet: "https://friendbot-futurenet.stellar.org",
}

// Transaction parameters for contract invocations
const (
	TransactionFee            = "1000"
	TransactionTimeoutSeconds = 30
	MethodSubmitNegative      = "submit_negative"
)

// Transaction statuses reported by Soroban RPC
const (
	TxStatusPending    = "PENDING"
	TxStatusSuccess    = "SUCCESS"
	TxStatusFailed     = "FAILED"
	TxStatusNotFound   = "NOT_FOUND"
	TxStatusError      = "ERROR"
	TxStatusDuplicate  = "DUPLICATE"
	TxStatusTryAgain   = "TRY_AGAIN_LATER"
	SubmitSuccessTag   = "SUCCESS:"
	SubmitErrorTag     = "Error: "
	SubmitFailedPrefix = "Submission failed: "
)
