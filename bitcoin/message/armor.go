package message

import (
	"strings"

	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto/curve"
)

const armorSignatureHeader = "-----BEGIN SIGNATURE-----"

func armorHeader(networkName string) string {
	return "-----BEGIN " + strings.ToUpper(networkName) + " SIGNED MESSAGE-----"
}

func armorFooter(networkName string) string {
	return "-----END " + strings.ToUpper(networkName) + " SIGNED MESSAGE-----"
}

// Armor renders the clear-signed block
func (m *SignedMessage) Armor() string {
	var b strings.Builder
	b.WriteString(armorHeader(m.Network))
	b.WriteByte('\n')
	b.WriteString(m.Message)
	b.WriteByte('\n')
	b.WriteString(armorSignatureHeader)
	b.WriteByte('\n')
	b.WriteString(m.Address)
	b.WriteByte('\n')
	b.WriteString(m.Signature)
	b.WriteByte('\n')
	b.WriteString(armorFooter(m.Network))
	return b.String()
}

func armorError(desc string) error {
	return curve.MakeError(curve.ErrInvalidFormat, "malformed signed message: "+desc)
}

// ParseArmored extracts message, address and signature from a clear-signed block of the named network.
// Surrounding whitespace is ignored, the message itself may span several lines
func ParseArmored(networkName, text string) (*SignedMessage, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))

	header := armorHeader(networkName) + "\n"
	footer := "\n" + armorFooter(networkName)

	if !strings.HasPrefix(text, header) {
		return nil, armorError("missing header")
	}
	if !strings.HasSuffix(text, footer) || len(text) < len(header)+len(footer) {
		return nil, armorError("missing footer")
	}
	body := text[len(header) : len(text)-len(footer)]

	separator := "\n" + armorSignatureHeader + "\n"
	prefixed := "\n" + body
	index := strings.LastIndex(prefixed, separator)
	if index < 0 {
		return nil, armorError("missing signature header")
	}

	var message string
	if index > 0 {
		message = prefixed[1:index]
	}
	lines := strings.Split(prefixed[index+len(separator):], "\n")
	if len(lines) != 2 {
		return nil, armorError("expected address and signature lines")
	}

	m := &SignedMessage{
		Network:   networkName,
		Message:   message,
		Address:   strings.TrimSpace(lines[0]),
		Signature: strings.TrimSpace(lines[1]),
	}
	if m.Address == "" || m.Signature == "" {
		return nil, armorError("empty address or signature")
	}
	return m, nil
}
