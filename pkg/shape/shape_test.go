package shape

import (
	"errors"
	"testing"

	"github.com/denelabs/walletbridge/pkg/env/memenv"
	"github.com/denelabs/walletbridge/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "GBRPYHIL2CI3FNQ4BXLFMNDLFJUNPU2HY3ZMFSHONUCEOASW7QC7OX2H"

type bigNumber string

func (b bigNumber) String() string { return string(b) }

func TestIdentity(t *testing.T) {
	tests := []struct {
		name       string
		value      any
		want       string
		wantReject bool
		wantErr    error
	}{
		{name: "bare string", value: testKey, want: testKey},
		{name: "publicKey field", value: map[string]any{"publicKey": testKey}, want: testKey},
		{name: "address field", value: map[string]any{"address": testKey}, want: testKey},
		{name: "address on host object", value: memenv.NewObject(map[string]any{"address": testKey}), want: testKey},
		{name: "publicKey wins over address", value: map[string]any{"publicKey": testKey, "address": "GOTHER"}, want: testKey},
		{name: "error string", value: map[string]any{"error": "User declined access"}, wantReject: true},
		{name: "error object", value: map[string]any{"address": "", "error": map[string]any{"code": -4.0, "message": "denied"}}, wantReject: true},
		{name: "empty string", value: "", wantErr: types.ErrShapeMismatch},
		{name: "unknown shape", value: map[string]any{"key": testKey}, wantErr: types.ErrShapeMismatch},
		{name: "undefined", value: nil, wantErr: types.ErrShapeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Identity(tt.value)
			switch {
			case tt.wantReject:
				var rejection *types.RemoteRejectionError
				require.True(t, errors.As(err, &rejection), "expected rejection, got %v", err)
				assert.Empty(t, got)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRejectionReason(t *testing.T) {
	reason, ok := Rejection(map[string]any{"error": map[string]any{"code": -4.0, "message": "denied"}})
	assert.True(t, ok)
	assert.Equal(t, "denied", reason)

	reason, ok = Rejection(map[string]any{"error": "denied"})
	assert.True(t, ok)
	assert.Equal(t, "denied", reason)

	_, ok = Rejection(map[string]any{"error": ""})
	assert.False(t, ok)

	_, ok = Rejection("GABC")
	assert.False(t, ok)
}

func TestAccess(t *testing.T) {
	addr, err := Access(map[string]any{"address": testKey})
	require.NoError(t, err)
	assert.Equal(t, testKey, addr)

	addr, err = Access(testKey)
	require.NoError(t, err)
	assert.Equal(t, testKey, addr)

	addr, err = Access(map[string]any{"address": ""})
	require.NoError(t, err)
	assert.Empty(t, addr)

	_, err = Access(map[string]any{"error": "denied"})
	var rejection *types.RemoteRejectionError
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, "denied", rejection.Reason)
}

func TestSigned(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    string
		wantErr bool
	}{
		{name: "bare string", value: "AAAAsigned", want: "AAAAsigned"},
		{name: "signedTxXdr field", value: map[string]any{"signedTxXdr": "AAAAsigned", "signerAddress": testKey}, want: "AAAAsigned"},
		{name: "error", value: map[string]any{"error": "denied"}, wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "unknown", value: map[string]any{"xdr": "AAAA"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Signed(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConnected(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		connected bool
		known     bool
	}{
		{"bool true", true, true, true},
		{"bool false", false, false, true},
		{"object true", map[string]any{"isConnected": true}, true, true},
		{"object false", map[string]any{"isConnected": false}, false, true},
		{"object non bool", map[string]any{"isConnected": "yes"}, false, false},
		{"undefined", nil, false, false},
		{"string", "true", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			connected, known := Connected(tt.value)
			assert.Equal(t, tt.connected, connected)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestSequence(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
		ok    bool
	}{
		{"sequence string", map[string]any{"sequence": "5"}, "5", true},
		{"seqNum fallback", map[string]any{"seqNum": "7"}, "7", true},
		{"sequence preferred", map[string]any{"sequence": "5", "seqNum": "7"}, "5", true},
		{"number", map[string]any{"sequence": 12.0}, "12", true},
		{"big number", map[string]any{"sequence": bigNumber("123456789012345678")}, "123456789012345678", true},
		{"missing", map[string]any{"id": testKey}, "", false},
		{"undefined", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Sequence(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSendStatus(t *testing.T) {
	status, hash := SendStatus(map[string]any{"status": "PENDING", "hash": "deadbeef"})
	assert.Equal(t, "PENDING", status)
	assert.Equal(t, "deadbeef", hash)

	status, hash = SendStatus(nil)
	assert.Empty(t, status)
	assert.Empty(t, hash)
}
