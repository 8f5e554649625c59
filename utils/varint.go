package utils

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

var ErrNonCanonicalEncoding = errors.New("compactsize: value has non canonical encoding")

// CompactSize markers. Values below CompactSizeMarker16 are encoded as a single byte.
const (
	CompactSizeMarker16 = 0xfd
	CompactSizeMarker32 = 0xfe
	CompactSizeMarker64 = 0xff
)

// CompactSizeLen returns the number of bytes AppendCompactSize will use to encode v
func CompactSizeLen[T uint64 | int](v T) int {
	x := uint64(v)

	if x < CompactSizeMarker16 {
		return 1
	} else if x <= math.MaxUint16 {
		return 1 + 2
	} else if x <= math.MaxUint32 {
		return 1 + 4
	} else {
		return 1 + 8
	}
}

// AppendCompactSize encodes v in the Bitcoin variable length integer format, also known as CompactSize:
//   - 1 byte if v < 0xfd
//   - 0xfd marker followed by little-endian uint16
//   - 0xfe marker followed by little-endian uint32
//   - 0xff marker followed by little-endian uint64
func AppendCompactSize[T uint64 | int](buf []byte, v T) []byte {
	x := uint64(v)

	if x < CompactSizeMarker16 {
		return append(buf, byte(x))
	} else if x <= math.MaxUint16 {
		return binary.LittleEndian.AppendUint16(append(buf, CompactSizeMarker16), uint16(x))
	} else if x <= math.MaxUint32 {
		return binary.LittleEndian.AppendUint32(append(buf, CompactSizeMarker32), uint32(x))
	} else {
		return binary.LittleEndian.AppendUint64(append(buf, CompactSizeMarker64), x)
	}
}

// ReadCompactSize reads an encoded unsigned integer from r and returns it as a uint64.
// The error is ErrNonCanonicalEncoding if the value could have been encoded in fewer bytes.
// The error is [io.EOF] only if no bytes were read.
// If an [io.EOF] happens after reading some but not all the bytes,
// ReadCompactSize returns [io.ErrUnexpectedEOF].
func ReadCompactSize(r io.ByteReader) (uint64, error) {
	marker, err := r.ReadByte()
	if err != nil {
		return 0, err
	}

	var n int
	var minimum uint64
	switch marker {
	case CompactSizeMarker16:
		n, minimum = 2, CompactSizeMarker16
	case CompactSizeMarker32:
		n, minimum = 4, math.MaxUint16+1
	case CompactSizeMarker64:
		n, minimum = 8, math.MaxUint32+1
	default:
		return uint64(marker), nil
	}

	var buf [8]byte
	for i := range n {
		if buf[i], err = r.ReadByte(); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
	}

	x := binary.LittleEndian.Uint64(buf[:])
	if x < minimum {
		return x, ErrNonCanonicalEncoding
	}
	return x, nil
}

// CompactSize decodes a uint64 from buf and returns that value and the
// number of bytes read (> 0). If an error occurred, the value is 0
// and the number of bytes n is <= 0 meaning:
//   - n == 0: buf too small;
//   - n < 0: non-canonical encoding and -n is the number of bytes read.
func CompactSize(buf []byte) (uint64, int) {
	if len(buf) == 0 {
		return 0, 0
	}

	var n int
	var minimum uint64
	switch buf[0] {
	case CompactSizeMarker16:
		n, minimum = 2, CompactSizeMarker16
	case CompactSizeMarker32:
		n, minimum = 4, math.MaxUint16+1
	case CompactSizeMarker64:
		n, minimum = 8, math.MaxUint32+1
	default:
		return uint64(buf[0]), 1
	}

	if len(buf) < 1+n {
		return 0, 0
	}

	var tmp [8]byte
	copy(tmp[:], buf[1:1+n])
	x := binary.LittleEndian.Uint64(tmp[:])
	if x < minimum {
		return 0, -(1 + n)
	}
	return x, 1 + n
}
