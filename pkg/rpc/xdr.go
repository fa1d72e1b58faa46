package rpc

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/denelabs/walletbridge/pkg/types"
	bin "github.com/gagliardetto/binary"
)

// XDR discriminants used by account lookups
const (
	ledgerEntryTypeAccount int32 = 0
	publicKeyTypeEd25519   int32 = 0
)

// accountLedgerKey encodes LedgerKey{type: ACCOUNT, account: {accountID}} as base64 XDR
func accountLedgerKey(address string) (string, error) {
	key, err := DecodeAccountID(address)
	if err != nil {
		return "", err
	}

	buf := new(bytes.Buffer)
	enc := bin.NewBinEncoder(buf)
	if err := enc.WriteInt32(ledgerEntryTypeAccount, binary.BigEndian); err != nil {
		return "", err
	}
	if err := writeAccountID(enc, key); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeAccountID(enc *bin.Encoder, key [ed25519KeyLength]byte) error {
	if err := enc.WriteInt32(publicKeyTypeEd25519, binary.BigEndian); err != nil {
		return err
	}
	return enc.WriteBytes(key[:], false)
}

// decodeAccountEntry reads the leading fields of LedgerEntryData holding an AccountEntry
func decodeAccountEntry(entryXDR string) (*types.AccountInfo, error) {
	raw, err := base64.StdEncoding.DecodeString(entryXDR)
	if err != nil {
		return nil, fmt.Errorf("invalid ledger entry encoding: %w", err)
	}

	dec := bin.NewBinDecoder(raw)
	entryType, err := dec.ReadInt32(binary.BigEndian)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry type: %w", err)
	}
	if entryType != ledgerEntryTypeAccount {
		return nil, fmt.Errorf("ledger entry type %d is not an account", entryType)
	}

	keyType, err := dec.ReadInt32(binary.BigEndian)
	if err != nil {
		return nil, fmt.Errorf("failed to read key type: %w", err)
	}
	if keyType != publicKeyTypeEd25519 {
		return nil, fmt.Errorf("unsupported public key type %d", keyType)
	}
	keyBytes, err := dec.ReadNBytes(ed25519KeyLength)
	if err != nil {
		return nil, fmt.Errorf("failed to read account id: %w", err)
	}
	balance, err := dec.ReadInt64(binary.BigEndian)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance: %w", err)
	}
	seq, err := dec.ReadInt64(binary.BigEndian)
	if err != nil {
		return nil, fmt.Errorf("failed to read sequence: %w", err)
	}

	var key [ed25519KeyLength]byte
	copy(key[:], keyBytes)
	return &types.AccountInfo{
		AccountID: EncodeAccountID(key),
		Balance:   balance,
		Sequence:  seq,
	}, nil
}
