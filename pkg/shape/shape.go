// Package shape decodes wallet and SDK results whose layout differs across
// API versions. Every decoder is a pure function over host values.
package shape

import (
	"fmt"
	"strconv"

	"github.com/denelabs/walletbridge/pkg/env"
	"github.com/denelabs/walletbridge/pkg/types"
)

// Rejection returns the reason carried by an {error} payload. The error value
// may be a string or an object with a message.
func Rejection(v any) (string, bool) {
	raw, ok := env.Field(v, "error")
	if !ok {
		return "", false
	}
	switch e := raw.(type) {
	case string:
		return e, e != ""
	case bool:
		return "unknown error", e
	}
	if msg, ok := env.StringField(raw, "message"); ok {
		return msg, true
	}
	return env.JSON(raw), true
}

func rejected(reason string) error {
	return &types.RemoteRejectionError{Source: "wallet", Reason: reason}
}

// Identity decodes a public key from a string, {publicKey} or {address}
func Identity(v any) (string, error) {
	if s, ok := v.(string); ok {
		if s == "" {
			return "", fmt.Errorf("%w: empty public key", types.ErrShapeMismatch)
		}
		return s, nil
	}
	if reason, ok := Rejection(v); ok {
		return "", rejected(reason)
	}
	if pk, ok := env.StringField(v, "publicKey"); ok {
		return pk, nil
	}
	if addr, ok := env.StringField(v, "address"); ok {
		return addr, nil
	}
	return "", fmt.Errorf("%w: no public key in %s", types.ErrShapeMismatch, env.JSON(v))
}

// Access decodes a requestAccess result. An empty address with no error means
// access was granted without returning an identity.
func Access(v any) (string, error) {
	if reason, ok := Rejection(v); ok {
		return "", rejected(reason)
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	if addr, ok := env.StringField(v, "address"); ok {
		return addr, nil
	}
	if pk, ok := env.StringField(v, "publicKey"); ok {
		return pk, nil
	}
	return "", nil
}

// Signed decodes signed XDR from a string or {signedTxXdr}
func Signed(v any) (string, error) {
	if s, ok := v.(string); ok {
		if s == "" {
			return "", fmt.Errorf("%w: empty signed transaction", types.ErrShapeMismatch)
		}
		return s, nil
	}
	if reason, ok := Rejection(v); ok {
		return "", rejected(reason)
	}
	if xdr, ok := env.StringField(v, "signedTxXdr"); ok {
		return xdr, nil
	}
	return "", fmt.Errorf("%w: no signed transaction in %s", types.ErrShapeMismatch, env.JSON(v))
}

// Connected decodes a bool or {isConnected}. known is false for any other shape.
func Connected(v any) (connected bool, known bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	raw, ok := env.Field(v, "isConnected")
	if !ok {
		return false, false
	}
	b, ok := raw.(bool)
	return b, ok
}

// Sequence reads an account sequence from sequence or seqNum. Numbers and
// big-number objects are rendered as decimal strings.
func Sequence(v any) (string, bool) {
	for _, key := range []string{"sequence", "seqNum"} {
		raw, ok := env.Field(v, key)
		if !ok {
			continue
		}
		switch s := raw.(type) {
		case string:
			if s != "" {
				return s, true
			}
		case float64:
			return strconv.FormatFloat(s, 'f', 0, 64), true
		case int64:
			return strconv.FormatInt(s, 10), true
		case fmt.Stringer:
			return s.String(), true
		}
	}
	return "", false
}

// SendStatus reads status and hash from a sendTransaction result
func SendStatus(v any) (status, hash string) {
	status, _ = env.StringField(v, "status")
	hash, _ = env.StringField(v, "hash")
	return status, hash
}
