package types

import (
	"bytes"
	"errors"
	"math/big"

	fasthex "github.com/tmthrgd/go-hex"
)

const HashSize = 32

// Hash a 32 byte big-endian value: message digests, field elements and scalars in their canonical form
//
//nolint:recvcheck
type Hash [HashSize]byte

var ZeroHash Hash

func (h Hash) MarshalJSON() ([]byte, error) {
	var buf [HashSize*2 + 2]byte
	buf[0] = '"'
	buf[HashSize*2+1] = '"'
	fasthex.Encode(buf[1:], h[:])
	return buf[:], nil
}

func Bytes32FromString[T ~[32]byte](s string) (T, error) {
	var h T
	if buf, err := fasthex.DecodeString(s); err != nil {
		return h, err
	} else {
		if len(buf) != 32 {
			return h, errors.New("wrong size")
		}
		copy(h[:], buf)
		return h, nil
	}
}

func HashFromString(s string) (Hash, error) {
	return Bytes32FromString[Hash](s)
}

// HashFromBig Left pads v into a Hash. Values that do not fit in HashSize bytes or are negative return ZeroHash
func HashFromBig(v *big.Int) (h Hash) {
	if v == nil || v.Sign() < 0 || v.BitLen() > HashSize*8 {
		return
	}
	v.FillBytes(h[:])
	return
}

// Big Interprets the hash as a big-endian unsigned integer
func (h Hash) Big() *big.Int {
	return new(big.Int).SetBytes(h[:])
}

// Compare byte-wise big-endian comparison, matches the numeric order of Big
func (h Hash) Compare(other Hash) int {
	return bytes.Compare(h[:], other[:])
}

func (h Hash) Slice() []byte {
	return h[:]
}

func (h Hash) String() string {
	return fasthex.EncodeToString(h[:])
}

func (h *Hash) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || len(b) == 2 {
		return nil
	}

	if len(b) != HashSize*2+2 {
		return errors.New("wrong hash size")
	}

	if _, err := fasthex.Decode(h[:], b[1:len(b)-1]); err != nil {
		return err
	}

	return nil
}

//nolint:recvcheck
type Bytes []byte

func (b Bytes) MarshalJSON() ([]byte, error) {
	buf := make([]byte, len(b)*2+2)
	buf[0] = '"'
	buf[len(buf)-1] = '"'
	fasthex.Encode(buf[1:], b)
	return buf, nil
}

func (b Bytes) String() string {
	return fasthex.EncodeToString(b)
}

func (b *Bytes) UnmarshalJSON(buf []byte) error {
	if len(buf) < 2 || (len(buf)%2) != 0 || buf[0] != '"' || buf[len(buf)-1] != '"' {
		return errors.New("invalid bytes")
	}

	*b = make(Bytes, (len(buf)-2)/2)

	if _, err := fasthex.Decode(*b, buf[1:len(buf)-1]); err != nil {
		return err
	}

	return nil
}
