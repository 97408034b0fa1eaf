// Package keys persists encoded Falcon artifacts as versioned JSON
// documents, plus a raw passthrough for the canonical byte forms.
package keys

import (
	"encoding/json"
	"os"
	"path/filepath"

	"falcon-signature/measure"
)

func writeJSON(path string, v any, measureKey string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if measure.Enabled {
		if info, err := os.Stat(path); err == nil {
			measure.Global.Add(measureKey, info.Size())
		}
	}
	return nil
}

// SaveRaw writes the canonical encoding itself, the form consumed on the
// device side.
func SaveRaw(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadRaw reads a canonical encoding written by SaveRaw.
func LoadRaw(path string) ([]byte, error) {
	return os.ReadFile(path)
}
