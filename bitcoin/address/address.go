package address

import (
	"bytes"
	"errors"

	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/base58"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto/curve"
	"git.gammaspectra.live/P2Pool/secp256k1/utils"
)

const ChecksumLength = 4

// Size prefix ‖ hash160 ‖ checksum
const Size = 1 + crypto.Hash160Size + ChecksumLength

type Checksum [ChecksumLength]byte

// Address a Base58Check encoded hash160 of a public key or script
type Address struct {
	Prefix uint8
	Hash   crypto.Hash160Bytes
}

func checksumHash(payload []byte) (result Checksum) {
	h := crypto.DoubleSha256(payload)
	copy(result[:], h[:ChecksumLength])
	return
}

func FromHash160(hash crypto.Hash160Bytes, prefix uint8) *Address {
	return &Address{
		Prefix: prefix,
		Hash:   hash,
	}
}

// FromPublicKey hashes the key in its own serialization form, compressed and uncompressed keys yield different addresses
func FromPublicKey(pub *crypto.PublicKey, prefix uint8) *Address {
	return FromHash160(pub.Hash160(), prefix)
}

// FromBase58 decodes and validates an address, nil on any failure
func FromBase58(text string) *Address {
	a, err := ParseAddress(text)
	if err != nil {
		return nil
	}
	return a
}

func ParseAddress(text string) (*Address, error) {
	payload, err := DecodeCheck(text)
	if err != nil {
		return nil, err
	}
	if len(payload) != 1+crypto.Hash160Size {
		return nil, curve.MakeError(curve.ErrInvalidFormat, "address payload must be 21 bytes")
	}

	a := &Address{Prefix: payload[0]}
	copy(a.Hash[:], payload[1:])
	return a, nil
}

// Validate reports whether text decodes to a 25 byte payload with a matching checksum
func Validate(text string) bool {
	_, err := ParseAddress(text)
	return err == nil
}

// EncodeCheck Base58 encodes payload followed by its checksum
func EncodeCheck(payload []byte) string {
	checksum := checksumHash(payload)
	buf := make([]byte, 0, len(payload)+ChecksumLength)
	buf = append(buf, payload...)
	buf = append(buf, checksum[:]...)
	return base58.Encode(buf)
}

// DecodeCheck decodes Base58Check text of any payload length, verifying and stripping the checksum
func DecodeCheck(text string) ([]byte, error) {
	raw, err := base58.Decode(text)
	if err != nil {
		return nil, curve.MakeError(curve.ErrInvalidFormat, err.Error())
	}
	if len(raw) <= ChecksumLength {
		return nil, curve.MakeError(curve.ErrInvalidFormat, "payload too short")
	}

	payload := raw[:len(raw)-ChecksumLength]
	checksum := checksumHash(payload)
	if !bytes.Equal(checksum[:], raw[len(payload):]) {
		return nil, curve.MakeError(curve.ErrInvalidFormat, "checksum mismatch")
	}
	return payload, nil
}

// ValidateChecksum reports whether text is valid Base58Check with any payload length, such as an exported private key
func ValidateChecksum(text string) bool {
	_, err := DecodeCheck(text)
	return err == nil
}

func (a *Address) payload() []byte {
	buf := make([]byte, 0, Size)
	buf = append(buf, a.Prefix)
	return append(buf, a.Hash[:]...)
}

func (a *Address) Checksum() Checksum {
	return checksumHash(a.payload())
}

func (a *Address) ToBase58() string {
	return EncodeCheck(a.payload())
}

func (a *Address) String() string {
	return a.ToBase58()
}

// NetworkName a human readable name for the address prefix
func (a *Address) NetworkName() string {
	return bitcoin.PrefixName(a.Prefix)
}

func (a *Address) Compare(b *Address) int {
	if a.Prefix != b.Prefix {
		if a.Prefix < b.Prefix {
			return -1
		}
		return 1
	}
	return bytes.Compare(a.Hash[:], b.Hash[:])
}

func (a *Address) Equal(b *Address) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Compare(b) == 0
}

func (a *Address) MarshalJSON() ([]byte, error) {
	return utils.MarshalJSON(a.ToBase58())
}

func (a *Address) UnmarshalJSON(b []byte) error {
	var s string
	if err := utils.UnmarshalJSON(b, &s); err != nil {
		return err
	}

	if addr := FromBase58(s); addr != nil {
		*a = *addr
		return nil
	}
	return errors.New("invalid address")
}
