package utils

import (
	"bytes"
	stdjson "encoding/json"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson serializa o valor e indenta com tabs; bytes já serializados são apenas reformatados
func PrettyJson(in any) (string, error) {
	raw, ok := in.([]byte)
	if !ok {
		var err error
		raw, err = json.Marshal(in)
		if err != nil {
			return "", err
		}
	}

	// jsoniter só indenta com espaços
	var out bytes.Buffer
	if err := stdjson.Indent(&out, raw, "", "\t"); err != nil {
		return "", err
	}

	return out.String(), nil
}
