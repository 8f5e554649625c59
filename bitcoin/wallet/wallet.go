package wallet

import (
	"crypto/rand"
	"io"

	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/address"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto/curve"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/message"
	"git.gammaspectra.live/P2Pool/secp256k1/utils"
)

type Option func(w *Wallet)

// WithNetwork sets the address prefix and the name used in message magic and armored blocks
func WithNetwork(network bitcoin.Network) Option {
	return func(w *Wallet) {
		w.network = network
	}
}

// WithMessageMagic replaces the default "<name> Signed Message:\n" prefix
func WithMessageMagic(magic []byte) Option {
	return func(w *Wallet) {
		w.magic = magic
	}
}

func WithRandom(reader io.Reader) Option {
	return func(w *Wallet) {
		w.random = reader
	}
}

func WithVerifierCacheSize(size int) Option {
	return func(w *Wallet) {
		w.cacheSize = size
	}
}

// Wallet owns a private key and signs or checks messages on one network
type Wallet struct {
	key       *crypto.PrivateKey
	network   bitcoin.Network
	magic     []byte
	random    io.Reader
	cacheSize int

	verifier *message.Verifier
}

func New(key *crypto.PrivateKey, opts ...Option) (*Wallet, error) {
	if key == nil {
		return nil, curve.MakeError(curve.ErrOutOfRange, "missing private key")
	}

	w := &Wallet{
		key:       key,
		network:   bitcoin.Bitcoin,
		random:    rand.Reader,
		cacheSize: message.DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.verifier = message.NewVerifier(w.network, w.magic, w.cacheSize)
	w.magic = w.verifier.Magic()
	return w, nil
}

// Generate creates a Wallet around a fresh private key
func Generate(opts ...Option) (*Wallet, error) {
	w := &Wallet{random: rand.Reader}
	for _, opt := range opts {
		opt(w)
	}

	key, err := crypto.GeneratePrivateKey(w.random)
	if err != nil {
		return nil, err
	}
	return New(key, opts...)
}

func (w *Wallet) PrivateKey() *crypto.PrivateKey {
	return w.key
}

func (w *Wallet) Network() bitcoin.Network {
	return w.network
}

func (w *Wallet) MessageMagic() []byte {
	return w.magic
}

func (w *Wallet) PublicKey(compressed bool) *crypto.PublicKey {
	return w.key.PublicKey(compressed)
}

// Address the compressed key address
func (w *Wallet) Address() *address.Address {
	return address.FromPublicKey(w.key.PublicKey(true), w.network.Prefix)
}

func (w *Wallet) UncompressedAddress() *address.Address {
	return address.FromPublicKey(w.key.PublicKey(false), w.network.Prefix)
}

// SignMessage returns the armored clear-signed block of msg
func (w *Wallet) SignMessage(msg string, compressed bool) (string, error) {
	m, err := message.Sign(w.key, w.network, w.magic, msg, compressed, w.random)
	if err != nil {
		utils.Errorf("Wallet", "could not sign message: %s", err)
		return "", err
	}
	return m.Armor(), nil
}

// VerifyArmored checks a clear-signed block, signed by any key of this network
func (w *Wallet) VerifyArmored(text string) error {
	_, err := w.verifier.VerifyArmored(text)
	return err
}

// VerifyMessage checks a base64 compact signature over msg against addr
func (w *Wallet) VerifyMessage(addr, signature, msg string) error {
	return w.verifier.Verify(addr, signature, msg)
}
