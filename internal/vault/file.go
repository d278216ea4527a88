package vault

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-graph-vault/models"
)

// LoadFile reads the vault stored at path.
func LoadFile(path string) (models.Vault, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Vault{}, fmt.Errorf("open vault: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// SaveFile writes v to path. The file is written next to path first and
// renamed into place, so readers never observe a partial vault.
func SaveFile(path string, v models.Vault) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".vault-*")
	if err != nil {
		return fmt.Errorf("create vault file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err = tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod vault file: %w", err)
	}
	if err = Encode(tmp, v); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close vault file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace vault file: %w", err)
	}
	return nil
}
