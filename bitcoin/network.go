package bitcoin

import "strings"

// Address version prefixes
const (
	MainNetwork = 0x00
	TestNetwork = 0x6f

	ScriptHashMainNetwork = 0x05
	ScriptHashTestNetwork = 0xc4
)

// Network identifies a coin by its address version prefix and display name.
// The name is used for the message signing magic and the armored block header.
type Network struct {
	Prefix uint8
	Name   string
}

var (
	Bitcoin        = Network{Prefix: MainNetwork, Name: "Bitcoin"}
	BitcoinTestnet = Network{Prefix: TestNetwork, Name: "Bitcoin"}
)

// UpperName the network name as written in armored block headers
func (n Network) UpperName() string {
	return strings.ToUpper(n.Name)
}

func (n Network) IsScriptHash() bool {
	return n.Prefix == ScriptHashMainNetwork || n.Prefix == ScriptHashTestNetwork
}

// PrefixName returns a human readable name for well known address prefixes
func PrefixName(prefix uint8) string {
	switch prefix {
	case MainNetwork:
		return "main"
	case TestNetwork:
		return "test"
	case ScriptHashMainNetwork:
		return "script-main"
	case ScriptHashTestNetwork:
		return "script-test"
	default:
		return "unknown"
	}
}
