package message

import (
	"io"

	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/address"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto/ecdsa"
	"git.gammaspectra.live/P2Pool/secp256k1/types"
	"git.gammaspectra.live/P2Pool/secp256k1/utils"
)

const magicSuffix = " Signed Message:\n"

// DefaultMagic CompactSize(len(name + " Signed Message:\n")) ‖ name ‖ " Signed Message:\n"
func DefaultMagic(networkName string) []byte {
	text := networkName + magicSuffix
	buf := make([]byte, 0, utils.CompactSizeLen(len(text))+len(text))
	buf = utils.AppendCompactSize(buf, len(text))
	return append(buf, text...)
}

// Digest DoubleSha256(magic ‖ CompactSize(len(message)) ‖ message)
func Digest(magic []byte, message string) types.Hash {
	buf := make([]byte, 0, len(magic)+utils.CompactSizeLen(len(message))+len(message))
	buf = append(buf, magic...)
	buf = utils.AppendCompactSize(buf, len(message))
	buf = append(buf, message...)
	return crypto.DoubleSha256(buf)
}

// SignedMessage a message together with the signer address and base64 compact signature
type SignedMessage struct {
	Network   string `json:"network"`
	Message   string `json:"message"`
	Address   string `json:"address"`
	Signature string `json:"signature"`
}

// Sign signs message with key. The signer address and recovery flag follow the requested key form
func Sign(key *crypto.PrivateKey, network bitcoin.Network, magic []byte, message string, compressed bool, reader io.Reader) (*SignedMessage, error) {
	if magic == nil {
		magic = DefaultMagic(network.Name)
	}

	compact, err := ecdsa.SignCompact(Digest(magic, message), key, compressed, reader)
	if err != nil {
		return nil, err
	}

	return &SignedMessage{
		Network:   network.Name,
		Message:   message,
		Address:   address.FromPublicKey(key.PublicKey(compressed), network.Prefix).ToBase58(),
		Signature: compact.Base64(),
	}, nil
}
