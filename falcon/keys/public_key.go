package keys

import (
	"encoding/json"
	"fmt"
	"os"
)

// PublicVersion tags the persisted public key document format.
const PublicVersion = "falcon-public-v1"

// PublicKey wraps the canonical public key encoding for persistence.
type PublicKey struct {
	Version string `json:"version"`
	N       int    `json:"N"`
	Data    string `json:"data"`
}

// NewPublic wraps an encoded public key into a document.
func NewPublic(n int, encoded []byte) *PublicKey {
	return &PublicKey{Version: PublicVersion, N: n, Data: EncodeData(encoded)}
}

// Bytes returns the canonical encoding carried by the document.
func (pk *PublicKey) Bytes() ([]byte, error) {
	if pk.Version != PublicVersion {
		return nil, fmt.Errorf("keys: unsupported public key version %q", pk.Version)
	}
	return DecodeData(pk.Data)
}

// SavePublic writes the public key document to path.
func SavePublic(path string, pk *PublicKey) error {
	if pk == nil {
		return nil
	}
	return writeJSON(path, pk, "falcon/keys/public_json")
}

// LoadPublic reads a public key document from path.
func LoadPublic(path string) (*PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pk PublicKey
	if err := json.Unmarshal(data, &pk); err != nil {
		return nil, err
	}
	return &pk, nil
}
