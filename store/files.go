// Package store persists all configuration and bingo game data as flat
// JSON documents. Files are re-read on every access and written whole on
// every mutation; there is no lock, the last writer wins.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// readJSONFile loads path into v. A missing or corrupt file is treated as
// an empty/default document, never as a fatal error.
func readJSONFile(path string, v any) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("⚠️ Failed to read %s: %v", path, err)
		}
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("⚠️ Corrupt JSON in %s, falling back to defaults: %v", path, err)
	}
}

func writeJSONFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
