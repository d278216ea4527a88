package vault

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/MKhiriev/go-graph-vault/models"
)

// Decode reads a JSON vault. Missing maps are initialized so the result can
// be merged into directly.
func Decode(r io.Reader) (models.Vault, error) {
	var v models.Vault
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return models.Vault{}, fmt.Errorf("decode vault: %w", err)
	}
	if v.Certificates == nil {
		v.Certificates = map[string]models.SecretEntry{}
	}
	if v.Tokens == nil {
		v.Tokens = map[string]models.SecretEntry{}
	}
	if v.Hosts == nil {
		v.Hosts = map[string]models.HostEntry{}
	}
	return v, nil
}

// Encode writes v as indented JSON.
func Encode(w io.Writer, v models.Vault) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode vault: %w", err)
	}
	return nil
}
