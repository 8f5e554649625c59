package address

import (
	"crypto/rand"
	"testing"

	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/base58"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto/curve"
	"git.gammaspectra.live/P2Pool/secp256k1/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	fasthex "github.com/tmthrgd/go-hex"
)

const testPublicKey = "03a34b99f22c790c4e36b2b3c2c35a36db06226e41c692fc82b8b56ac1c540c5bd"

var testAddress = FromBase58("1F3sAm6ZtwLAUnj7d38pGFxtP3RVEvtsbV")

func TestFromPublicKey(t *testing.T) {
	pub, err := crypto.ParsePublicKeyString(testPublicKey)
	require.NoError(t, err)

	a := FromPublicKey(pub, bitcoin.MainNetwork)
	assert.Equal(t, "1F3sAm6ZtwLAUnj7d38pGFxtP3RVEvtsbV", a.ToBase58())
	assert.Equal(t, "9a1c78a507689f6f54b847ad1cef1e614ee23f1e", fasthex.EncodeToString(a.Hash[:]))
	assert.True(t, Validate(a.ToBase58()))
	assert.True(t, a.Equal(testAddress))

	pub.Compressed = false
	assert.Equal(t, "1HZwkjkeaoZfTSaJxDw6aKkxp45agDiEzN", FromPublicKey(pub, bitcoin.MainNetwork).ToBase58())
}

func TestKnownKeys(t *testing.T) {
	key, err := crypto.PrivateKeyFromString("0000000000000000000000000000000000000000000000000000000000000001")
	require.NoError(t, err)

	assert.Equal(t, "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", FromPublicKey(key.PublicKey(true), bitcoin.MainNetwork).ToBase58())
	assert.Equal(t, "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm", FromPublicKey(key.PublicKey(false), bitcoin.MainNetwork).ToBase58())

	testnet := FromPublicKey(key.PublicKey(true), bitcoin.TestNetwork)
	assert.Equal(t, "mrCDrCybB6J1vRfbwM5hemdJz73FwDBC8r", testnet.ToBase58())
	assert.Equal(t, "test", testnet.NetworkName())
}

func TestChecksum(t *testing.T) {
	require.NotNil(t, testAddress)
	assert.Equal(t, Checksum{0xa6, 0xef, 0xa9, 0x40}, testAddress.Checksum())
}

func TestSingleCharacterFlip(t *testing.T) {
	text := testAddress.ToBase58()

	for i := range len(text) {
		for _, c := range []byte(base58.Alphabet) {
			if c == text[i] {
				continue
			}
			flipped := []byte(text)
			flipped[i] = c
			if Validate(string(flipped)) {
				t.Fatalf("flipped address %s at %d validated", flipped, i)
			}
		}
	}
}

func TestValidateErrors(t *testing.T) {
	for _, text := range []string{
		"",
		"1",
		"0F3sAm6ZtwLAUnj7d38pGFxtP3RVEvtsbV",
		"1F3sAm6ZtwLAUnj7d38pGFxtP3RVEvtsb",
		"1F3sAm6ZtwLAUnj7d38pGFxtP3RVEvtsbVV",
	} {
		assert.False(t, Validate(text), text)
		assert.Nil(t, FromBase58(text), text)
		_, err := ParseAddress(text)
		assert.ErrorIs(t, err, curve.ErrInvalidFormat, text)
	}
}

func TestEncodeCheck(t *testing.T) {
	// exported private key style payload
	payload := make([]byte, 34)
	_, err := rand.Read(payload)
	require.NoError(t, err)
	payload[0] = 0x80

	text := EncodeCheck(payload)
	assert.True(t, ValidateChecksum(text))
	assert.False(t, Validate(text))

	decoded, err := DecodeCheck(text)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestRandomRoundTrip(t *testing.T) {
	for range 32 {
		key, err := crypto.GeneratePrivateKey(rand.Reader)
		require.NoError(t, err)

		for _, compressed := range []bool{true, false} {
			a := FromPublicKey(key.PublicKey(compressed), bitcoin.TestNetwork)
			parsed := FromBase58(a.ToBase58())
			require.NotNil(t, parsed)
			assert.True(t, a.Equal(parsed))
		}
	}
}

func TestJSON(t *testing.T) {
	type wrapper struct {
		Address *Address `json:"address"`
	}

	buf, err := utils.MarshalJSON(wrapper{Address: testAddress})
	require.NoError(t, err)
	assert.Equal(t, `{"address":"1F3sAm6ZtwLAUnj7d38pGFxtP3RVEvtsbV"}`, string(buf))

	var out wrapper
	require.NoError(t, utils.UnmarshalJSON(buf, &out))
	assert.True(t, out.Address.Equal(testAddress))

	assert.Error(t, utils.UnmarshalJSON([]byte(`{"address":"1F3sAm6ZtwLAUnj7d38pGFxtP3RVEvtsbW"}`), &out))
}

func TestCompare(t *testing.T) {
	a := FromHash160(crypto.Hash160Bytes{1}, bitcoin.MainNetwork)
	b := FromHash160(crypto.Hash160Bytes{2}, bitcoin.MainNetwork)
	c := FromHash160(crypto.Hash160Bytes{1}, bitcoin.TestNetwork)
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, -1, a.Compare(c))
	assert.False(t, a.Equal(c))
}
