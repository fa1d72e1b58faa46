package types

// HealthResponse is the result of getHealth
type HealthResponse struct {
	Status                string `json:"status"`
	LatestLedger          uint32 `json:"latestLedger,omitempty"`
	OldestLedger          uint32 `json:"oldestLedger,omitempty"`
	LedgerRetentionWindow uint32 `json:"ledgerRetentionWindow,omitempty"`
}

// NetworkResponse is the result of getNetwork
type NetworkResponse struct {
	FriendbotURL    string `json:"friendbotUrl,omitempty"`
	Passphrase      string `json:"passphrase"`
	ProtocolVersion int    `json:"protocolVersion"`
}

// LatestLedgerResponse is the result of getLatestLedger
type LatestLedgerResponse struct {
	ID              string `json:"id"`
	ProtocolVersion int    `json:"protocolVersion"`
	Sequence        uint32 `json:"sequence"`
}

// LedgerEntry is a single entry of getLedgerEntries, XDR fields base64 encoded
type LedgerEntry struct {
	Key                   string `json:"key"`
	XDR                   string `json:"xdr"`
	LastModifiedLedgerSeq uint32 `json:"lastModifiedLedgerSeq"`
	LiveUntilLedgerSeq    uint32 `json:"liveUntilLedgerSeq,omitempty"`
}

// LedgerEntriesResponse is the result of getLedgerEntries
type LedgerEntriesResponse struct {
	Entries      []LedgerEntry `json:"entries"`
	LatestLedger uint32        `json:"latestLedger"`
}

// AccountInfo is the decoded part of an account ledger entry
type AccountInfo struct {
	AccountID    string `json:"accountId"`
	Balance      int64  `json:"balance"` // stroops
	Sequence     int64  `json:"sequence"`
	LastModified uint32 `json:"lastModifiedLedgerSeq"`
}

// TransactionResponse is the result of getTransaction
type TransactionResponse struct {
	Status                string `json:"status"`
	LatestLedger          uint32 `json:"latestLedger"`
	LatestLedgerCloseTime string `json:"latestLedgerCloseTime,omitempty"`
	OldestLedger          uint32 `json:"oldestLedger,omitempty"`
	Ledger                uint32 `json:"ledger,omitempty"`
	CreatedAt             string `json:"createdAt,omitempty"`
	ApplicationOrder      int    `json:"applicationOrder,omitempty"`
	EnvelopeXDR           string `json:"envelopeXdr,omitempty"`
	ResultXDR             string `json:"resultXdr,omitempty"`
	ResultMetaXDR         string `json:"resultMetaXdr,omitempty"`
}

// SendTransactionResponse is the result of sendTransaction
type SendTransactionResponse struct {
	Status                string `json:"status"`
	Hash                  string `json:"hash"`
	LatestLedger          uint32 `json:"latestLedger"`
	LatestLedgerCloseTime string `json:"latestLedgerCloseTime,omitempty"`
	ErrorResultXDR        string `json:"errorResultXdr,omitempty"`
}

// NegativeComment is the payload of a submit_negative contract call
type NegativeComment struct {
	CommentID   string `json:"commentId"`
	Score       uint32 `json:"score"`
	ContentHash string `json:"contentHash"`
}
