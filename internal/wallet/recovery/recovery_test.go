package recovery_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/child-wallet/internal/wallet/recovery"
)

func signRaw(t *testing.T, digest []byte) (raw []byte, bit uint8, compressed []byte) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	sig, err := crypto.Sign(digest, key)
	require.NoError(t, err)

	return sig[:64], sig[64], crypto.CompressPubkey(&key.PublicKey)
}

func TestResolveRecoveryBit(t *testing.T) {
	seen := map[uint8]bool{}

	for i := 0; i < 32; i++ {
		digest := crypto.Keccak256([]byte{byte(i)})
		raw, want, compressed := signRaw(t, digest)

		got, err := recovery.ResolveRecoveryBit(raw, digest, compressed)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		seen[got] = true
	}

	// with 32 random signatures both bits show up with overwhelming probability
	assert.Len(t, seen, 2)
}

func TestResolveRecoveryBitWrongKey(t *testing.T) {
	digest := crypto.Keccak256([]byte("hello"))
	raw, _, _ := signRaw(t, digest)

	other, err := crypto.GenerateKey()
	require.NoError(t, err)

	_, err = recovery.ResolveRecoveryBit(raw, digest, crypto.CompressPubkey(&other.PublicKey))
	require.ErrorIs(t, err, recovery.ErrRecoveryFailed)
}

func TestResolveRecoveryBitWrongDigest(t *testing.T) {
	digest := crypto.Keccak256([]byte("hello"))
	raw, _, compressed := signRaw(t, digest)

	_, err := recovery.ResolveRecoveryBit(raw, crypto.Keccak256([]byte("world")), compressed)
	require.ErrorIs(t, err, recovery.ErrRecoveryFailed)
}

func TestResolveRecoveryBitCorruptedSignature(t *testing.T) {
	digest := crypto.Keccak256([]byte("hello"))
	raw, _, compressed := signRaw(t, digest)

	raw[10] ^= 0xff

	_, err := recovery.ResolveRecoveryBit(raw, digest, compressed)
	require.ErrorIs(t, err, recovery.ErrRecoveryFailed)
}

func TestResolveRecoveryBitLengths(t *testing.T) {
	digest := crypto.Keccak256([]byte("hello"))
	raw, _, compressed := signRaw(t, digest)

	_, err := recovery.ResolveRecoveryBit(raw[:63], digest, compressed)
	assert.ErrorIs(t, err, recovery.ErrRecoveryFailed)
	_, err = recovery.ResolveRecoveryBit(raw, digest[:31], compressed)
	assert.ErrorIs(t, err, recovery.ErrRecoveryFailed)
	_, err = recovery.ResolveRecoveryBit(raw, digest, compressed[1:])
	assert.ErrorIs(t, err, recovery.ErrRecoveryFailed)
}

func TestNormalizeLowS(t *testing.T) {
	digest := crypto.Keccak256([]byte("normalize"))
	raw, _, compressed := signRaw(t, digest)

	// go-ethereum always produces low-s; flip it to the high-s twin
	n := crypto.S256().Params().N
	s := new(big.Int).SetBytes(raw[32:])
	high := append([]byte{}, raw...)
	new(big.Int).Sub(n, s).FillBytes(high[32:])

	// the high-s twin is still a valid signature for the flipped bit
	_, err := recovery.ResolveRecoveryBit(high, digest, compressed)
	require.NoError(t, err)

	normalized, changed := recovery.NormalizeLowS(high)
	require.True(t, changed)
	assert.Equal(t, raw, normalized)

	same, changed := recovery.NormalizeLowS(raw)
	assert.False(t, changed)
	assert.Equal(t, raw, same)
}
