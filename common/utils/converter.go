package utils

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	prt "github.com/abcfe/abcfe-wallet/protocol"
)

// AddressToString Address 타입을 16진수 문자열로 변환
func AddressToString(address prt.Address) string {
	return hex.EncodeToString(address[:])
}

// StringToAddress 16진수 문자열을 Address 타입으로 변환
func StringToAddress(str string) (prt.Address, error) {
	bytes, err := DecodeHex(str)
	if err != nil {
		return prt.Address{}, fmt.Errorf("invalid address string: %w", err)
	}

	if len(bytes) != len(prt.Address{}) {
		return prt.Address{}, fmt.Errorf("invalid address length: %d (need 20 bytes)", len(bytes))
	}

	var address prt.Address
	copy(address[:], bytes)
	return address, nil
}

// DecodeHex decodes a hex string with an optional 0x prefix.
func DecodeHex(str string) ([]byte, error) {
	str = strings.TrimSpace(str)
	if len(str) >= 2 && (str[0:2] == "0x" || str[0:2] == "0X") {
		str = str[2:]
	}
	return hex.DecodeString(str)
}

// SerializeData 객체를 JSON 바이트 배열로 직렬화
func SerializeData(data interface{}) ([]byte, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("JSON encoding error: %w", err)
	}
	return b, nil
}

// DeserializeData JSON 바이트 배열을 객체로 역직렬화
func DeserializeData(data []byte, result interface{}) error {
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("JSON decoding error: %w", err)
	}
	return nil
}
