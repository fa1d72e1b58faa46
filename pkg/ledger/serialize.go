package ledger

import (
	"context"
	"fmt"

	"github.com/denelabs/walletbridge/pkg/env"
	"github.com/denelabs/walletbridge/pkg/fallback"
	"github.com/denelabs/walletbridge/pkg/types"
)

// Serialize renders tx as base64 envelope XDR, via toXDR() or toEnvelope().toXDR("base64")
func Serialize(ctx context.Context, tx env.Object) (string, error) {
	xdr, _, err := fallback.First(ctx, nil,
		fallback.Strategy[string]{Name: "toXDR", Run: func(ctx context.Context) (string, error) {
			return callString(ctx, tx, "toXDR")
		}},
		fallback.Strategy[string]{Name: "toEnvelope", Run: func(ctx context.Context) (string, error) {
			envelope, err := tx.Call(ctx, "toEnvelope")
			if err != nil {
				return "", err
			}
			obj, ok := envelope.(env.Object)
			if !ok {
				return "", fmt.Errorf("envelope is %s", env.JSON(envelope))
			}
			return callString(ctx, obj, "toXDR", "base64")
		}},
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrSerialization, err)
	}
	return xdr, nil
}

func callString(ctx context.Context, obj env.Object, method string, args ...any) (string, error) {
	if !obj.Callable(method) {
		return "", fmt.Errorf("%s is not a function", method)
	}
	v, err := obj.Call(ctx, method, args...)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%s returned %s", method, env.JSON(v))
	}
	return s, nil
}
