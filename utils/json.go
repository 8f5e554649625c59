//go:build !purego

package utils

import (
	gojson "github.com/goccy/go-json"
)

var jsonEncodeOptions = []gojson.EncodeOptionFunc{gojson.DisableHTMLEscape(), gojson.DisableNormalizeUTF8()}

// MarshalJSON encodes val without HTML escaping, so armored messages and base64 survive verbatim
func MarshalJSON(val any) ([]byte, error) {
	return gojson.MarshalWithOption(val, jsonEncodeOptions...)
}

func UnmarshalJSON(data []byte, val any) error {
	return gojson.UnmarshalWithOption(data, val)
}
