package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubkey_Base58RoundTrip(t *testing.T) {
	const addr = "Stake11111111111111111111111111111111111111"
	p, err := TryPubkeyFromBase58(addr)
	require.NoError(t, err)
	assert.Equal(t, addr, p.String())
	assert.False(t, p.IsZero())
	assert.Equal(t, addr, *p.StringPtr())
}

func TestPubkey_InvalidInput(t *testing.T) {
	_, err := TryPubkeyFromBase58("0OIl")
	assert.Error(t, err, "非法 base58 字符应报错")

	_, err = TryPubkeyFromBase58("3yZe7d")
	assert.Error(t, err, "长度不足 32 字节应报错")

	assert.Panics(t, func() { PubkeyFromBase58("short") })
}

func TestPubkey_ZeroValue(t *testing.T) {
	var p Pubkey
	assert.True(t, p.IsZero())
	assert.Equal(t, "11111111111111111111111111111111", p.String())
}

func TestSignatureFromBytes(t *testing.T) {
	_, err := SignatureFromBytes(make([]byte, 63))
	assert.Error(t, err)

	raw := make([]byte, 64)
	raw[63] = 1
	s, err := SignatureFromBytes(raw)
	require.NoError(t, err)
	assert.NotEmpty(t, s.String())
}
