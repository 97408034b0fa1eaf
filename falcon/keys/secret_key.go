package keys

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"falcon-signature/measure"
)

// SecretVersion tags the persisted secret key document format.
const SecretVersion = "falcon-secret-v1"

// SecretKey wraps the canonical secret key encoding for persistence. Only
// the canonical bytes are stored; the signing state (Fourier rows, tree)
// is rebuilt when the encoding is decoded.
type SecretKey struct {
	Version string `json:"version"`
	N       int    `json:"N"`
	Data    string `json:"data"`
}

// NewSecret wraps an encoded secret key into a document.
func NewSecret(n int, encoded []byte) *SecretKey {
	return &SecretKey{Version: SecretVersion, N: n, Data: EncodeData(encoded)}
}

// Bytes returns the canonical encoding carried by the document.
func (sk *SecretKey) Bytes() ([]byte, error) {
	if sk.Version != SecretVersion {
		return nil, fmt.Errorf("keys: unsupported secret key version %q", sk.Version)
	}
	return DecodeData(sk.Data)
}

// SaveSecret writes the secret key document to path, readable only by the
// owning user.
func SaveSecret(path string, sk *SecretKey) error {
	if sk == nil {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sk); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if measure.Enabled {
		if info, err := os.Stat(path); err == nil {
			measure.Global.Add("falcon/keys/secret_json", info.Size())
		}
	}
	return nil
}

// LoadSecret reads a secret key document from path.
func LoadSecret(path string) (*SecretKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sk SecretKey
	if err := json.Unmarshal(data, &sk); err != nil {
		return nil, err
	}
	return &sk, nil
}
