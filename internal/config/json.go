package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// StructuredJSONConfig mirrors [StructuredConfig] with the JSON field names
// accepted in a config file.
type StructuredJSONConfig struct {
	App struct {
		HashAlgorithm string `json:"hash_algorithm"`
		Iterations    int    `json:"pbkdf2_iterations"`
		Workers       int    `json:"workers"`
		LogLevel      string `json:"log_level"`
	} `json:"app,omitempty"`

	Policy struct {
		ProtectedActions []string `json:"protected_actions"`
	} `json:"policy,omitempty"`

	Vault struct {
		Path    string `json:"path"`
		BaseURL string `json:"base_url"`
	} `json:"vault,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			HashAlgorithm: jsonCfg.App.HashAlgorithm,
			Iterations:    jsonCfg.App.Iterations,
			Workers:       jsonCfg.App.Workers,
			LogLevel:      jsonCfg.App.LogLevel,
		},
		Policy: Policy{
			ProtectedActions: jsonCfg.Policy.ProtectedActions,
		},
		Vault: Vault{
			Path:    jsonCfg.Vault.Path,
			BaseURL: jsonCfg.Vault.BaseURL,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}
