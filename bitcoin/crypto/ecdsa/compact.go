package ecdsa

import (
	"encoding/base64"
	"errors"
	"io"

	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto/curve"
	"git.gammaspectra.live/P2Pool/secp256k1/types"
	"git.gammaspectra.live/P2Pool/secp256k1/utils"
)

const CompactSignatureSize = 1 + SignatureSize

// CompactSignature a signature prefixed by the recovery flag of its signer key
type CompactSignature struct {
	Flag RecoveryFlag
	Signature
}

// SignCompact signs digest and attaches the recovery flag reproducing the key in the requested form
func SignCompact(digest types.Hash, key *crypto.PrivateKey, compressed bool, reader io.Reader) (*CompactSignature, error) {
	sig, err := Sign(digest, key, reader)
	if err != nil {
		return nil, err
	}

	flag, err := FindRecoveryFlag(sig, digest, key.PublicKey(compressed))
	if err != nil {
		return nil, err
	}

	return &CompactSignature{Flag: flag, Signature: *sig}, nil
}

// Recover returns the public key selected by the embedded flag
func (c *CompactSignature) Recover(digest types.Hash) (*crypto.PublicKey, error) {
	return Recover(&c.Signature, digest, c.Flag)
}

// Bytes flag ‖ R ‖ S
func (c *CompactSignature) Bytes() (buf [CompactSignatureSize]byte) {
	buf[0] = byte(c.Flag)
	sig := c.Signature.Bytes()
	copy(buf[1:], sig[:])
	return buf
}

func (c *CompactSignature) Base64() string {
	buf := c.Bytes()
	return base64.StdEncoding.EncodeToString(buf[:])
}

func (c *CompactSignature) String() string {
	return c.Base64()
}

func ParseCompactSignature(buf []byte) (*CompactSignature, error) {
	if len(buf) != CompactSignatureSize {
		return nil, curve.MakeError(curve.ErrInvalidFormat, "compact signature must be 65 bytes")
	}

	flag := RecoveryFlag(buf[0])
	if !flag.Valid() {
		return nil, curve.MakeError(curve.ErrInvalidFormat, "invalid recovery flag")
	}

	return &CompactSignature{
		Flag:      flag,
		Signature: *NewSignatureFromBytes(buf[1:]),
	}, nil
}

func ParseCompactSignatureBase64(s string) (*CompactSignature, error) {
	buf, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, curve.MakeError(curve.ErrInvalidFormat, "compact signature is not base64: "+err.Error())
	}
	return ParseCompactSignature(buf)
}

func (c *CompactSignature) MarshalJSON() ([]byte, error) {
	return utils.MarshalJSON(c.Base64())
}

func (c *CompactSignature) UnmarshalJSON(b []byte) error {
	var s string
	if err := utils.UnmarshalJSON(b, &s); err != nil {
		return err
	}
	if s == "" {
		return errors.New("empty compact signature")
	}
	sig, err := ParseCompactSignatureBase64(s)
	if err != nil {
		return err
	}
	*c = *sig
	return nil
}
