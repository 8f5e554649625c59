package ecdsa

import (
	"math/big"

	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto/curve"
	"git.gammaspectra.live/P2Pool/secp256k1/types"
)

const (
	derSequenceId = 0x30
	derIntegerId  = 0x02

	// minimum: sequence header plus two integer headers with one byte each
	derMinSize = 2 + (2+1)*2
	// 32-byte integers with a possible sign padding byte
	derMaxIntegerSize = types.HashSize + 1
)

// SerializeDER encodes the signature as 0x30 len 0x02 lenR R 0x02 lenS S using fixed 32-byte fields.
// Like Bytes, values failing Valid are written as zero
func (s *Signature) SerializeDER() []byte {
	r, sv := curve.FieldBytes(s.R), curve.FieldBytes(s.S)

	buf := make([]byte, 0, 2+(2+types.HashSize)*2)
	buf = append(buf, derSequenceId, (2+types.HashSize)*2)
	buf = append(buf, derIntegerId, types.HashSize)
	buf = append(buf, r[:]...)
	buf = append(buf, derIntegerId, types.HashSize)
	buf = append(buf, sv[:]...)
	return buf
}

func derError(desc string) error {
	return curve.MakeError(curve.ErrInvalidFormat, "malformed DER signature: "+desc)
}

// ParseDERSignature decodes a DER style signature, reading length bytes literally.
// Both fixed width and minimally encoded integers are accepted, a 33rd byte only as leading zero padding.
// R and S are not range checked against N here, Verify and Recover reject them
func ParseDERSignature(buf []byte) (*Signature, error) {
	if len(buf) < derMinSize {
		return nil, derError("too short")
	}
	if buf[0] != derSequenceId {
		return nil, derError("missing sequence id")
	}
	if int(buf[1]) != len(buf)-2 {
		return nil, derError("sequence length does not match data")
	}

	offset := 2
	readInteger := func(name string) (*big.Int, error) {
		if offset+2 > len(buf) {
			return nil, derError("missing " + name)
		}
		if buf[offset] != derIntegerId {
			return nil, derError("missing integer id for " + name)
		}
		size := int(buf[offset+1])
		offset += 2
		if size == 0 || size > derMaxIntegerSize {
			return nil, derError("invalid length for " + name)
		}
		if offset+size > len(buf) {
			return nil, derError(name + " exceeds data")
		}
		if size == derMaxIntegerSize && buf[offset] != 0 {
			return nil, derError(name + " does not fit in 256 bits")
		}
		v := new(big.Int).SetBytes(buf[offset : offset+size])
		offset += size
		return v, nil
	}

	r, err := readInteger("R")
	if err != nil {
		return nil, err
	}
	s, err := readInteger("S")
	if err != nil {
		return nil, err
	}
	if offset != len(buf) {
		return nil, derError("trailing data")
	}

	return &Signature{R: r, S: s}, nil
}
