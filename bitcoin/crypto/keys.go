package crypto

import (
	"io"
	"math/big"

	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto/curve"
	"git.gammaspectra.live/P2Pool/secp256k1/types"
	fasthex "github.com/tmthrgd/go-hex"
)

const (
	PublicKeyCompressedSize   = 1 + types.HashSize
	PublicKeyUncompressedSize = 1 + types.HashSize*2

	PublicKeyEvenPrefix         = 0x02
	PublicKeyOddPrefix          = 0x03
	PublicKeyUncompressedPrefix = 0x04
)

// PrivateKey a secp256k1 scalar within [1, N-1] and its derived public point
type PrivateKey struct {
	d     *big.Int
	point curve.Point
}

func NewPrivateKey(d *big.Int) (*PrivateKey, error) {
	params := curve.S256()
	if !params.InScalarRange(d) {
		return nil, curve.MakeError(curve.ErrOutOfRange, "private key is not within [1, n-1]")
	}

	point, err := params.ScalarBaseMult(d)
	if err != nil {
		return nil, err
	}

	return &PrivateKey{
		d:     new(big.Int).Set(d),
		point: point,
	}, nil
}

func PrivateKeyFromBytes(buf []byte) (*PrivateKey, error) {
	if len(buf) != types.HashSize {
		return nil, curve.MakeError(curve.ErrInvalidFormat, "private key must be 32 bytes")
	}
	return NewPrivateKey(new(big.Int).SetBytes(buf))
}

func PrivateKeyFromString(s string) (*PrivateKey, error) {
	h, err := types.HashFromString(s)
	if err != nil {
		return nil, curve.MakeError(curve.ErrInvalidFormat, "private key is not 32 hex bytes: "+err.Error())
	}
	return NewPrivateKey(h.Big())
}

// GeneratePrivateKey samples a new key from reader, crypto/rand when nil
func GeneratePrivateKey(reader io.Reader) (*PrivateKey, error) {
	d, err := RandomScalar(reader)
	if err != nil {
		return nil, err
	}
	return NewPrivateKey(d)
}

// Scalar returns a copy of the private scalar
func (k *PrivateKey) Scalar() *big.Int {
	return new(big.Int).Set(k.d)
}

func (k *PrivateKey) Bytes() types.Hash {
	return curve.FieldBytes(k.d)
}

func (k *PrivateKey) String() string {
	return k.Bytes().String()
}

// PublicKey returns the public key k·G serialized in the requested form
func (k *PrivateKey) PublicKey(compressed bool) *PublicKey {
	return &PublicKey{Point: k.point, Compressed: compressed}
}

// PublicKey a point on secp256k1 together with its preferred serialization
type PublicKey struct {
	Point      curve.Point
	Compressed bool
}

// CompressPoint returns 0x02 or 0x03 depending on y parity, followed by x
func CompressPoint(pt curve.Point) []byte {
	buf := make([]byte, 0, PublicKeyCompressedSize)
	if pt.Y.Bit(0) == 1 {
		buf = append(buf, PublicKeyOddPrefix)
	} else {
		buf = append(buf, PublicKeyEvenPrefix)
	}
	x := curve.FieldBytes(pt.X)
	return append(buf, x[:]...)
}

// UncompressPoint returns 0x04 ‖ x ‖ y
func UncompressPoint(pt curve.Point) []byte {
	buf := make([]byte, 0, PublicKeyUncompressedSize)
	x, y := curve.FieldBytes(pt.X), curve.FieldBytes(pt.Y)
	buf = append(buf, PublicKeyUncompressedPrefix)
	buf = append(buf, x[:]...)
	return append(buf, y[:]...)
}

// ParsePublicKey decodes compressed and uncompressed public keys
func ParsePublicKey(buf []byte) (*PublicKey, error) {
	params := curve.S256()

	switch {
	case len(buf) == PublicKeyCompressedSize && (buf[0] == PublicKeyEvenPrefix || buf[0] == PublicKeyOddPrefix):
		x := new(big.Int).SetBytes(buf[1:])
		if x.Cmp(params.P) >= 0 {
			return nil, curve.MakeError(curve.ErrInvalidFormat, "public key x is not a field element")
		}
		y, err := params.DecompressY(x, buf[0] == PublicKeyOddPrefix)
		if err != nil {
			return nil, err
		}
		return &PublicKey{Point: curve.Point{X: x, Y: y}, Compressed: true}, nil
	case len(buf) == PublicKeyUncompressedSize && buf[0] == PublicKeyUncompressedPrefix:
		x, y := new(big.Int).SetBytes(buf[1:1+types.HashSize]), new(big.Int).SetBytes(buf[1+types.HashSize:])
		if x.Cmp(params.P) >= 0 || y.Cmp(params.P) >= 0 {
			return nil, curve.MakeError(curve.ErrInvalidFormat, "public key coordinates are not field elements")
		}
		pt, err := params.NewPoint(x, y)
		if err != nil {
			return nil, err
		}
		return &PublicKey{Point: pt, Compressed: false}, nil
	case len(buf) == 0:
		return nil, curve.MakeError(curve.ErrInvalidFormat, "empty public key")
	default:
		return nil, curve.MakeError(curve.ErrInvalidFormat, "unknown public key format")
	}
}

func ParsePublicKeyString(s string) (*PublicKey, error) {
	buf, err := fasthex.DecodeString(s)
	if err != nil {
		return nil, curve.MakeError(curve.ErrInvalidFormat, "public key is not hex: "+err.Error())
	}
	return ParsePublicKey(buf)
}

func (p *PublicKey) Bytes() []byte {
	if p.Compressed {
		return CompressPoint(p.Point)
	}
	return UncompressPoint(p.Point)
}

func (p *PublicKey) Hash160() Hash160Bytes {
	return Hash160(p.Bytes())
}

// Equal compares the underlying point and serialization form
func (p *PublicKey) Equal(other *PublicKey) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Compressed == other.Compressed && p.Point.Equal(other.Point)
}

func (p *PublicKey) String() string {
	return fasthex.EncodeToString(p.Bytes())
}

func (p *PublicKey) MarshalJSON() ([]byte, error) {
	return types.Bytes(p.Bytes()).MarshalJSON()
}

func (p *PublicKey) UnmarshalJSON(b []byte) error {
	var buf types.Bytes
	if err := buf.UnmarshalJSON(b); err != nil {
		return curve.MakeError(curve.ErrInvalidFormat, "public key is not hex: "+err.Error())
	}

	key, err := ParsePublicKey(buf)
	if err != nil {
		return err
	}
	*p = *key
	return nil
}
