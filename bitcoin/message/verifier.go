package message

import (
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/address"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto/curve"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto/ecdsa"
	"git.gammaspectra.live/P2Pool/secp256k1/utils"
)

const DefaultCacheSize = 1024

// Verifier checks signed messages of one network. Recovered public keys are mapped to addresses through a cache
type Verifier struct {
	network bitcoin.Network
	magic   []byte

	addressCache utils.Cache[string, string]
}

// NewVerifier creates a Verifier using magic, or the network default when nil.
// cacheSize <= 0 keeps every recovered key in an unbounded cache
func NewVerifier(network bitcoin.Network, magic []byte, cacheSize int) *Verifier {
	if magic == nil {
		magic = DefaultMagic(network.Name)
	}

	v := &Verifier{
		network: network,
		magic:   magic,
	}
	if cacheSize > 0 {
		v.addressCache = utils.NewLRUCache[string, string](cacheSize)
	} else {
		v.addressCache = utils.NewMapCache[string, string](DefaultCacheSize)
	}
	return v
}

func (v *Verifier) Network() bitcoin.Network {
	return v.network
}

func (v *Verifier) Magic() []byte {
	return v.magic
}

func (v *Verifier) addressOf(pub *crypto.PublicKey) string {
	key := string(pub.Bytes())
	if text, ok := v.addressCache.Get(key); ok {
		return text
	}

	text := address.FromPublicKey(pub, v.network.Prefix).ToBase58()
	utils.Debugf("Verifier", "address cache miss for %s: %s", pub, text)
	v.addressCache.Set(key, text)
	return text
}

// Recover returns the address of the key that produced the base64 compact signature over message
func (v *Verifier) Recover(signature, message string) (string, error) {
	compact, err := ecdsa.ParseCompactSignatureBase64(signature)
	if err != nil {
		return "", err
	}

	pub, err := compact.Recover(Digest(v.magic, message))
	if err != nil {
		return "", err
	}

	return v.addressOf(pub), nil
}

// Verify checks that signature over message was produced by the key behind addr
func (v *Verifier) Verify(addr, signature, message string) error {
	if !address.Validate(addr) {
		return curve.MakeError(curve.ErrInvalidFormat, "invalid address "+addr)
	}

	recovered, err := v.Recover(signature, message)
	if err != nil {
		return err
	}

	if recovered != addr {
		return curve.MakeError(curve.ErrVerificationFailed, "signature belongs to "+recovered)
	}
	return nil
}

// VerifyArmored parses and checks a clear-signed block, returning its contents on success
func (v *Verifier) VerifyArmored(text string) (*SignedMessage, error) {
	m, err := ParseArmored(v.network.Name, text)
	if err != nil {
		return nil, err
	}
	if err = v.Verify(m.Address, m.Signature, m.Message); err != nil {
		return nil, err
	}
	return m, nil
}
