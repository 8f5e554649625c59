package ecdsa

import (
	"io"
	"math/big"

	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto/curve"
	"git.gammaspectra.live/P2Pool/secp256k1/types"
)

// maxSignAttempts nonces yielding R = 0 or S = 0 are discarded and a new one is drawn
const maxSignAttempts = 8

// Sign signs digest with key using a nonce sampled from reader, crypto/rand when nil
func Sign(digest types.Hash, key *crypto.PrivateKey, reader io.Reader) (*Signature, error) {
	if key == nil {
		return nil, curve.MakeError(curve.ErrOutOfRange, "missing private key")
	}

	var lastErr error
	for range maxSignAttempts {
		nonce, err := crypto.RandomScalar(reader)
		if err != nil {
			return nil, err
		}

		sig, err := SignWithNonce(digest, key, nonce)
		if err == nil {
			return sig, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// SignWithNonce signs digest with key and the caller supplied nonce:
// R = x(nonce·G) mod N, S = nonce⁻¹·(digest + key·R) mod N.
// Reusing a nonce across different digests reveals the private key
func SignWithNonce(digest types.Hash, key *crypto.PrivateKey, nonce *big.Int) (*Signature, error) {
	if key == nil {
		return nil, curve.MakeError(curve.ErrOutOfRange, "missing private key")
	}

	params := curve.S256()
	if !params.InScalarRange(nonce) {
		return nil, curve.MakeError(curve.ErrOutOfRange, "nonce is not within [1, n-1]")
	}

	point, err := params.ScalarBaseMult(nonce)
	if err != nil {
		return nil, err
	}

	r := new(big.Int).Mod(point.X, params.N)
	if r.Sign() == 0 {
		return nil, curve.MakeError(curve.ErrOutOfRange, "signature R is zero")
	}

	nonceInv, err := curve.Inverse(nonce, params.N)
	if err != nil {
		return nil, err
	}

	s := key.Scalar()
	s.Mul(s, r)
	s.Add(s, digest.Big())
	s.Mul(s, nonceInv)
	s.Mod(s, params.N)
	if s.Sign() == 0 {
		return nil, curve.MakeError(curve.ErrOutOfRange, "signature S is zero")
	}

	return &Signature{R: r, S: s}, nil
}

// Verify checks sig over digest against pub. Any arithmetic failure reports false
func Verify(pub *crypto.PublicKey, sig *Signature, digest types.Hash) bool {
	params := curve.S256()
	if pub == nil || !pub.Point.Valid() || !sig.inRange(params) {
		return false
	}

	w, err := curve.Inverse(sig.S, params.N)
	if err != nil {
		return false
	}

	u1 := digest.Big()
	u1.Mul(u1, w)
	u1.Mod(u1, params.N)

	u2 := new(big.Int).Mul(sig.R, w)
	u2.Mod(u2, params.N)

	point, err := linearCombination(params, u1, u2, pub.Point)
	if err != nil {
		return false
	}

	x := curve.FieldBytes(new(big.Int).Mod(point.X, params.N))
	return x == curve.FieldBytes(sig.R)
}

// linearCombination returns u1·G + u2·pt, skipping the u1 term when it is zero
func linearCombination(params *curve.Params, u1, u2 *big.Int, pt curve.Point) (curve.Point, error) {
	right, err := params.ScalarMult(u2, pt)
	if err != nil {
		return curve.Point{}, err
	}
	if u1.Sign() == 0 {
		return right, nil
	}

	left, err := params.ScalarBaseMult(u1)
	if err != nil {
		return curve.Point{}, err
	}
	return params.Add(left, right)
}
