package env_test

import (
	"testing"

	"github.com/denelabs/walletbridge/pkg/env"
	"github.com/denelabs/walletbridge/pkg/env/memenv"
	"github.com/stretchr/testify/assert"
)

func TestField(t *testing.T) {
	obj := memenv.NewObject(map[string]any{"address": "GABC", "empty": ""})

	tests := []struct {
		name    string
		value   any
		key     string
		want    any
		present bool
	}{
		{"map hit", map[string]any{"publicKey": "GABC"}, "publicKey", "GABC", true},
		{"map miss", map[string]any{"publicKey": "GABC"}, "address", nil, false},
		{"map nil value", map[string]any{"error": nil}, "error", nil, false},
		{"object hit", obj, "address", "GABC", true},
		{"object miss", obj, "publicKey", nil, false},
		{"string is not a container", "GABC", "address", nil, false},
		{"nil", nil, "address", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, present := env.Field(tt.value, tt.key)
			assert.Equal(t, tt.present, present)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringField(t *testing.T) {
	obj := memenv.NewObject(map[string]any{"address": "GABC", "empty": "", "count": 3.0})

	s, ok := env.StringField(obj, "address")
	assert.True(t, ok)
	assert.Equal(t, "GABC", s)

	_, ok = env.StringField(obj, "empty")
	assert.False(t, ok)

	_, ok = env.StringField(obj, "count")
	assert.False(t, ok)
}

func TestIsCallable(t *testing.T) {
	obj := memenv.NewObject(map[string]any{
		"isConnected": memenv.Returning(true),
		"name":        "freighter",
	})

	assert.True(t, env.IsCallable(obj, "isConnected"))
	assert.False(t, env.IsCallable(obj, "name"))
	assert.False(t, env.IsCallable(map[string]any{"isConnected": true}, "isConnected"))
	assert.False(t, env.IsCallable(nil, "isConnected"))
}

func TestJSON(t *testing.T) {
	assert.Equal(t, `{"hash":"deadbeef","status":"ERROR"}`, env.JSON(map[string]any{"status": "ERROR", "hash": "deadbeef"}))
	assert.Equal(t, `{"status":"ERROR"}`, env.JSON(memenv.NewObject(map[string]any{
		"status": "ERROR",
		"toXDR":  memenv.Returning("AAAA"),
	})))
}
