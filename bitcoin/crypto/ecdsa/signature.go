package ecdsa

import (
	"errors"
	"math/big"

	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto/curve"
	"git.gammaspectra.live/P2Pool/secp256k1/types"
	"git.gammaspectra.live/P2Pool/secp256k1/utils"
	fasthex "github.com/tmthrgd/go-hex"
)

const SignatureSize = types.HashSize * 2

// Signature an ECDSA (R, S) pair. Values are not range checked on construction
type Signature struct {
	R, S *big.Int
}

func NewSignature(r, s *big.Int) *Signature {
	return &Signature{R: new(big.Int).Set(r), S: new(big.Int).Set(s)}
}

// NewSignatureFromBytes decodes the 64-byte R ‖ S form, nil when the size is wrong
func NewSignatureFromBytes(buf []byte) *Signature {
	if len(buf) != SignatureSize {
		return nil
	}
	return &Signature{
		R: new(big.Int).SetBytes(buf[:types.HashSize]),
		S: new(big.Int).SetBytes(buf[types.HashSize:]),
	}
}

func ParseSignature(buf []byte) (*Signature, error) {
	if sig := NewSignatureFromBytes(buf); sig != nil {
		return sig, nil
	}
	return nil, curve.MakeError(curve.ErrInvalidFormat, "signature must be 64 bytes")
}

func ParseSignatureString(s string) (*Signature, error) {
	buf, err := fasthex.DecodeString(s)
	if err != nil {
		return nil, curve.MakeError(curve.ErrInvalidFormat, "signature is not hex: "+err.Error())
	}
	return ParseSignature(buf)
}

// Bytes the fixed width R ‖ S form. Values outside [0, 2²⁵⁶) are written as zero, use Valid to check beforehand
func (s *Signature) Bytes() (buf [SignatureSize]byte) {
	r, sv := curve.FieldBytes(s.R), curve.FieldBytes(s.S)
	copy(buf[:types.HashSize], r[:])
	copy(buf[types.HashSize:], sv[:])
	return buf
}

// Valid reports whether R and S fit the fixed width encodings without loss
func (s *Signature) Valid() bool {
	return s != nil && fitsField(s.R) && fitsField(s.S)
}

func fitsField(v *big.Int) bool {
	return v != nil && v.Sign() >= 0 && v.BitLen() <= types.HashSize*8
}

// inRange reports whether both R and S are within [1, N-1]
func (s *Signature) inRange(params *curve.Params) bool {
	return s != nil && params.InScalarRange(s.R) && params.InScalarRange(s.S)
}

func (s *Signature) Equal(other *Signature) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.R.Cmp(other.R) == 0 && s.S.Cmp(other.S) == 0
}

func (s *Signature) String() string {
	buf := s.Bytes()
	return fasthex.EncodeToString(buf[:])
}

func (s *Signature) MarshalJSON() ([]byte, error) {
	return utils.MarshalJSON(s.String())
}

func (s *Signature) UnmarshalJSON(b []byte) error {
	var str string
	if err := utils.UnmarshalJSON(b, &str); err != nil {
		return err
	}
	if str == "" {
		return errors.New("empty signature")
	}
	sig, err := ParseSignatureString(str)
	if err != nil {
		return err
	}
	*s = *sig
	return nil
}
