package keys

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// SignatureVersion tags the persisted signature document format.
const SignatureVersion = "falcon-signature-v1"

// Signature bundles one encoded signature with its creation time and,
// when the signer reports it, the number of sampling attempts used.
type Signature struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	N         int    `json:"N"`
	Attempts  int    `json:"attempts,omitempty"`
	Data      string `json:"data"`
}

// NewSignature wraps an encoded signature with the current timestamp.
func NewSignature(n int, encoded []byte) *Signature {
	return &Signature{
		Version:   SignatureVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		N:         n,
		Data:      EncodeData(encoded),
	}
}

// Bytes returns the canonical encoding carried by the document.
func (sig *Signature) Bytes() ([]byte, error) {
	if sig.Version != SignatureVersion {
		return nil, fmt.Errorf("keys: unsupported signature version %q", sig.Version)
	}
	return DecodeData(sig.Data)
}

// SaveSignature writes the signature document to path.
func SaveSignature(path string, sig *Signature) error {
	if sig == nil {
		return nil
	}
	return writeJSON(path, sig, "falcon/keys/signature_json")
}

// LoadSignature reads a signature document from path.
func LoadSignature(path string) (*Signature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sig Signature
	if err := json.Unmarshal(data, &sig); err != nil {
		return nil, err
	}
	return &sig, nil
}

// EncodeData returns the base64 form of a canonical encoding.
func EncodeData(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeData converts a base64 data field back to bytes.
func DecodeData(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
