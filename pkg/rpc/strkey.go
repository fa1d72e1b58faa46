package rpc

import (
	"errors"
	"fmt"

	"github.com/stellar/go/strkey"
)

const ed25519KeyLength = 32

var ErrInvalidAccountID = errors.New("invalid account id")

// DecodeAccountID returns the ed25519 key of a G-address
func DecodeAccountID(address string) ([ed25519KeyLength]byte, error) {
	var key [ed25519KeyLength]byte
	raw, err := strkey.Decode(strkey.VersionByteAccountID, address)
	if err != nil {
		return key, fmt.Errorf("%w: %v", ErrInvalidAccountID, err)
	}
	if len(raw) != ed25519KeyLength {
		return key, fmt.Errorf("%w: key length %d", ErrInvalidAccountID, len(raw))
	}
	copy(key[:], raw)
	return key, nil
}

// EncodeAccountID renders an ed25519 key as a G-address
func EncodeAccountID(key [ed25519KeyLength]byte) string {
	return strkey.MustEncode(strkey.VersionByteAccountID, key[:])
}
