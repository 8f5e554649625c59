package ecdsa

import (
	"crypto/rand"
	"math/big"
	"testing"

	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto/curve"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	decredecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDigest = crypto.DoubleSha256("The quick brown fox jumps over the lazy dog")

func randomKey(t testing.TB) *crypto.PrivateKey {
	key, err := crypto.GeneratePrivateKey(rand.Reader)
	require.NoError(t, err)
	return key
}

func TestSignVerify(t *testing.T) {
	for range 8 {
		key := randomKey(t)
		sig, err := Sign(testDigest, key, rand.Reader)
		require.NoError(t, err)

		assert.True(t, Verify(key.PublicKey(true), sig, testDigest))
		assert.True(t, Verify(key.PublicKey(false), sig, testDigest))

		// different digest
		assert.False(t, Verify(key.PublicKey(true), sig, crypto.Sha256("other")))

		// different key
		assert.False(t, Verify(randomKey(t).PublicKey(true), sig, testDigest))

		// tampered S
		tampered := NewSignature(sig.R, new(big.Int).Add(sig.S, big.NewInt(1)))
		assert.False(t, Verify(key.PublicKey(true), tampered, testDigest))
	}
}

func TestVerifyOutOfRange(t *testing.T) {
	key := randomKey(t)
	n := curve.S256().N

	for _, sig := range []*Signature{
		{R: big.NewInt(0), S: big.NewInt(1)},
		{R: big.NewInt(1), S: big.NewInt(0)},
		{R: new(big.Int).Set(n), S: big.NewInt(1)},
		{R: big.NewInt(1), S: new(big.Int).Set(n)},
		nil,
	} {
		assert.False(t, Verify(key.PublicKey(true), sig, testDigest))
	}
	assert.False(t, Verify(nil, &Signature{R: big.NewInt(1), S: big.NewInt(1)}, testDigest))
}

func TestSignWithNonce(t *testing.T) {
	key, err := crypto.NewPrivateKey(big.NewInt(1))
	require.NoError(t, err)

	// R = x(2·G)
	sig, err := SignWithNonce(testDigest, key, big.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, "c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5", curve.FieldBytes(sig.R).String())
	assert.True(t, Verify(key.PublicKey(true), sig, testDigest))

	expected := decredecdsa.NewSignature(modNScalar(sig.R), modNScalar(sig.S))
	assert.True(t, expected.Verify(testDigest[:], secp256k1.PrivKeyFromBytes(key.Bytes().Slice()).PubKey()))

	_, err = SignWithNonce(testDigest, nil, big.NewInt(2))
	assert.ErrorIs(t, err, curve.ErrOutOfRange)

	_, err = SignWithNonce(testDigest, key, big.NewInt(0))
	assert.ErrorIs(t, err, curve.ErrOutOfRange)

	_, err = Sign(testDigest, nil, rand.Reader)
	assert.ErrorIs(t, err, curve.ErrOutOfRange)
}

func modNScalar(v *big.Int) *secp256k1.ModNScalar {
	var s secp256k1.ModNScalar
	buf := curve.FieldBytes(v)
	s.SetBytes((*[32]byte)(&buf))
	return &s
}

func TestVerifyCrossCheck(t *testing.T) {
	for range 8 {
		key := randomKey(t)
		decredKey := secp256k1.PrivKeyFromBytes(key.Bytes().Slice())

		// ours verifies decred signatures
		decredSig := decredecdsa.Sign(decredKey, testDigest[:])
		sig, err := ParseDERSignature(decredSig.Serialize())
		require.NoError(t, err)
		assert.True(t, Verify(key.PublicKey(true), sig, testDigest))

		// decred verifies ours
		sig, err = Sign(testDigest, key, rand.Reader)
		require.NoError(t, err)
		assert.True(t, decredecdsa.NewSignature(modNScalar(sig.R), modNScalar(sig.S)).Verify(testDigest[:], decredKey.PubKey()))
	}
}

func TestRecover(t *testing.T) {
	for range 8 {
		key := randomKey(t)
		sig, err := Sign(testDigest, key, rand.Reader)
		require.NoError(t, err)

		for _, compressed := range []bool{true, false} {
			pub := key.PublicKey(compressed)

			flag, err := FindRecoveryFlag(sig, testDigest, pub)
			require.NoError(t, err)
			assert.Equal(t, compressed, flag.Compressed())

			recovered, err := Recover(sig, testDigest, flag)
			require.NoError(t, err)
			assert.True(t, recovered.Equal(pub))
			assert.Equal(t, pub.Hash160(), recovered.Hash160())

			// the other parity yields a different, still self-verifying key
			other, err := Recover(sig, testDigest, NewRecoveryFlag(flag.RecoveryId()^1, compressed))
			if err == nil {
				assert.False(t, other.Equal(pub))
				assert.True(t, Verify(other, sig, testDigest))
			}

			candidate, candidateFlag, err := RecoverAny(sig, testDigest, compressed)
			require.NoError(t, err)
			assert.Equal(t, compressed, candidateFlag.Compressed())
			assert.True(t, Verify(candidate, sig, testDigest))
		}
	}
}

func TestRecoverErrors(t *testing.T) {
	key := randomKey(t)
	sig, err := Sign(testDigest, key, rand.Reader)
	require.NoError(t, err)

	for _, flag := range []RecoveryFlag{0, 26, 35, 255} {
		_, err = Recover(sig, testDigest, flag)
		assert.ErrorIs(t, err, curve.ErrInvalidFormat, "flag %d", flag)
	}

	_, err = Recover(&Signature{R: big.NewInt(0), S: big.NewInt(1)}, testDigest, 27)
	assert.ErrorIs(t, err, curve.ErrOutOfRange)

	// R + n exceeds p for any R above p - n
	params := curve.S256()
	large := new(big.Int).Sub(params.N, big.NewInt(1))
	_, err = Recover(&Signature{R: large, S: big.NewInt(1)}, testDigest, 29)
	assert.ErrorIs(t, err, curve.ErrOutOfRange)

	// x = 5 is not on the curve
	_, err = Recover(&Signature{R: big.NewInt(5), S: big.NewInt(1)}, testDigest, 27)
	assert.ErrorIs(t, err, curve.ErrNoSquareRoot)

	_, err = FindRecoveryFlag(sig, testDigest, randomKey(t).PublicKey(true))
	assert.ErrorIs(t, err, curve.ErrVerificationFailed)

	_, err = FindRecoveryFlag(sig, testDigest, nil)
	assert.ErrorIs(t, err, curve.ErrInvalidFormat)
}

func TestRecoveryFlag(t *testing.T) {
	for id := uint8(0); id < 4; id++ {
		flag := NewRecoveryFlag(id, false)
		assert.Equal(t, RecoveryFlag(27+id), flag)
		assert.Equal(t, id, flag.RecoveryId())
		assert.False(t, flag.Compressed())

		flag = NewRecoveryFlag(id, true)
		assert.Equal(t, RecoveryFlag(31+id), flag)
		assert.Equal(t, id, flag.RecoveryId())
		assert.True(t, flag.Compressed())
		assert.True(t, flag.Valid())
	}
	assert.False(t, RecoveryFlag(26).Valid())
	assert.False(t, RecoveryFlag(35).Valid())
}

func TestCompactCrossCheck(t *testing.T) {
	for _, compressed := range []bool{true, false} {
		key := randomKey(t)
		decredKey := secp256k1.PrivKeyFromBytes(key.Bytes().Slice())

		// decred compact signature recovered by us
		compact, err := ParseCompactSignature(decredecdsa.SignCompact(decredKey, testDigest[:], compressed))
		require.NoError(t, err)
		recovered, err := compact.Recover(testDigest)
		require.NoError(t, err)
		assert.True(t, recovered.Equal(key.PublicKey(compressed)))

		// our compact signature recovered by decred
		ours, err := SignCompact(testDigest, key, compressed, rand.Reader)
		require.NoError(t, err)
		buf := ours.Bytes()
		decredPub, wasCompressed, err := decredecdsa.RecoverCompact(buf[:], testDigest[:])
		require.NoError(t, err)
		assert.Equal(t, compressed, wasCompressed)
		assert.True(t, decredPub.IsEqual(decredKey.PubKey()))
	}
}

func TestCompactEncoding(t *testing.T) {
	key := randomKey(t)
	compact, err := SignCompact(testDigest, key, true, rand.Reader)
	require.NoError(t, err)

	buf := compact.Bytes()
	assert.Equal(t, byte(compact.Flag), buf[0])

	parsed, err := ParseCompactSignatureBase64(compact.Base64())
	require.NoError(t, err)
	assert.Equal(t, compact.Flag, parsed.Flag)
	assert.True(t, parsed.Signature.Equal(&compact.Signature))

	jsonBuf, err := compact.MarshalJSON()
	require.NoError(t, err)
	var fromJSON CompactSignature
	require.NoError(t, fromJSON.UnmarshalJSON(jsonBuf))
	assert.Equal(t, compact.Base64(), fromJSON.Base64())

	_, err = ParseCompactSignature(buf[:64])
	assert.ErrorIs(t, err, curve.ErrInvalidFormat)

	buf[0] = 40
	_, err = ParseCompactSignature(buf[:])
	assert.ErrorIs(t, err, curve.ErrInvalidFormat)

	_, err = ParseCompactSignatureBase64("not base64!")
	assert.ErrorIs(t, err, curve.ErrInvalidFormat)
}

func TestSignatureBytes(t *testing.T) {
	sig := &Signature{R: big.NewInt(1), S: big.NewInt(0x0203)}
	buf := sig.Bytes()
	assert.Equal(t, byte(1), buf[31])
	assert.Equal(t, []byte{2, 3}, buf[62:])

	parsed := NewSignatureFromBytes(buf[:])
	require.NotNil(t, parsed)
	assert.True(t, parsed.Equal(sig))

	assert.Nil(t, NewSignatureFromBytes(buf[:63]))
	assert.True(t, sig.Valid())
	assert.True(t, parsed.Valid())

	oversized := &Signature{R: new(big.Int).Lsh(big.NewInt(1), 256), S: big.NewInt(1)}
	assert.False(t, oversized.Valid())
	assert.False(t, (&Signature{R: big.NewInt(-1), S: big.NewInt(1)}).Valid())
	assert.False(t, (&Signature{R: big.NewInt(1)}).Valid())
	assert.False(t, Verify(randomKey(t).PublicKey(true), oversized, testDigest))

	fromHex, err := ParseSignatureString(sig.String())
	require.NoError(t, err)
	assert.True(t, fromHex.Equal(sig))

	jsonBuf, err := sig.MarshalJSON()
	require.NoError(t, err)
	var fromJSON Signature
	require.NoError(t, fromJSON.UnmarshalJSON(jsonBuf))
	assert.True(t, fromJSON.Equal(sig))
}

func BenchmarkSign(b *testing.B) {
	key := randomKey(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Sign(testDigest, key, rand.Reader)
	}
}

func BenchmarkVerify(b *testing.B) {
	key := randomKey(b)
	sig, _ := Sign(testDigest, key, rand.Reader)
	pub := key.PublicKey(true)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !Verify(pub, sig, testDigest) {
			b.Fatal("verification failed")
		}
	}
}

func BenchmarkRecover(b *testing.B) {
	key := randomKey(b)
	compact, _ := SignCompact(testDigest, key, true, rand.Reader)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = compact.Recover(testDigest)
	}
}
