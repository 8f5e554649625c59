//go:build purego

package utils

import (
	"bytes"
	"encoding/json" //nolint:depguard
)

func MarshalJSON(val any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(val); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

func UnmarshalJSON(data []byte, val any) error {
	return json.Unmarshal(data, val)
}
