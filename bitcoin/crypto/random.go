package crypto

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"

	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto/curve"
)

var ErrNoRandom = errors.New("random source exhausted")

// maxScalarAttempts bounds rejection sampling. For secp256k1 a single attempt is rejected with probability below 2^-127
const maxScalarAttempts = 64

// RandomScalar returns a uniform scalar in [1, N-1] read from reader, or crypto/rand when reader is nil.
// Out of range candidates are rejected and sampled again
func RandomScalar(reader io.Reader) (*big.Int, error) {
	if reader == nil {
		reader = rand.Reader
	}

	params := curve.S256()
	var buf [32]byte
	for range maxScalarAttempts {
		if _, err := io.ReadFull(reader, buf[:]); err != nil {
			return nil, err
		}

		k := new(big.Int).SetBytes(buf[:])
		if params.InScalarRange(k) {
			return k, nil
		}
	}
	return nil, ErrNoRandom
}
