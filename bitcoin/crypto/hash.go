package crypto

import (
	"crypto/sha256"
	"hash"
	"sync"

	"git.gammaspectra.live/P2Pool/secp256k1/types"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck
)

const Hash160Size = ripemd160.Size

type Hash160Bytes [Hash160Size]byte

var sha256Pool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

func getSha256() hash.Hash {
	//nolint:forcetypeassert
	h := sha256Pool.Get().(hash.Hash)
	h.Reset()
	return h
}

func Sha256[T ~string | ~[]byte](data ...T) (result types.Hash) {
	h := getSha256()
	defer sha256Pool.Put(h)
	for _, b := range data {
		_, _ = h.Write([]byte(b))
	}
	h.Sum(result[:0])
	return
}

// DoubleSha256 SHA-256 applied twice, used for Base58Check checksums and message digests
func DoubleSha256[T ~string | ~[]byte](data ...T) types.Hash {
	first := Sha256(data...)
	return Sha256(first[:])
}

// Hash160 RIPEMD-160 of the SHA-256 of data
func Hash160(data []byte) (result Hash160Bytes) {
	first := Sha256(data)
	h := ripemd160.New()
	_, _ = h.Write(first[:])
	h.Sum(result[:0])
	return
}
