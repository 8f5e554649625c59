package base58

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
)

const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var ErrInvalidCharacter = errors.New("base58: invalid character")

var radix = big.NewInt(58)

var decodeTable = func() (table [256]int8) {
	for i := range table {
		table[i] = -1
	}
	for i := range len(Alphabet) {
		table[Alphabet[i]] = int8(i)
	}
	return table
}()

// Encode converts buf to its Base58 representation. Each leading zero byte is emitted as a leading '1'
func Encode(buf []byte) string {
	return string(AppendEncode(nil, buf))
}

// AppendEncode appends the Base58 encoding of buf to dst
func AppendEncode(dst, buf []byte) []byte {
	var zeros int
	for zeros < len(buf) && buf[zeros] == 0 {
		zeros++
	}

	start := len(dst)
	value := new(big.Int).SetBytes(buf[zeros:])
	remainder := new(big.Int)
	for value.Sign() > 0 {
		value.DivMod(value, radix, remainder)
		dst = append(dst, Alphabet[remainder.Int64()])
	}
	for range zeros {
		dst = append(dst, Alphabet[0])
	}

	// digits were produced least significant first
	slices.Reverse(dst[start:])
	return dst
}

// Decode converts Base58 text back into bytes. Each leading '1' becomes a leading zero byte
func Decode(text string) ([]byte, error) {
	var zeros int
	for zeros < len(text) && text[zeros] == Alphabet[0] {
		zeros++
	}

	value := new(big.Int)
	digit := new(big.Int)
	for i := zeros; i < len(text); i++ {
		index := decodeTable[text[i]]
		if index < 0 {
			return nil, fmt.Errorf("%w %q at position %d", ErrInvalidCharacter, text[i], i)
		}
		value.Mul(value, radix)
		value.Add(value, digit.SetInt64(int64(index)))
	}

	result := make([]byte, zeros+(value.BitLen()+7)/8)
	value.FillBytes(result[zeros:])
	return result, nil
}
