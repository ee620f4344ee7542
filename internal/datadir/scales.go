package datadir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/fuikk/fuikk/schema"
)

// Scale file names, in lookup order.
const (
	ScalesJSON = "scales.json"
	ScalesTOML = "scales.toml"
)

// ErrNoScales is returned when a semester has neither scales.json nor scales.toml.
var ErrNoScales = errors.New("no scales file")

// LoadScales reads the answer scales from dir, preferring JSON over TOML.
func LoadScales(dir string) (schema.Scales, error) {
	jsonPath := filepath.Join(dir, ScalesJSON)
	if _, err := os.Stat(jsonPath); err == nil {
		scales := make(schema.Scales)
		if err := ReadJSON(jsonPath, &scales); err != nil {
			return nil, err
		}
		return scales, nil
	}

	tomlPath := filepath.Join(dir, ScalesTOML)
	if _, err := os.Stat(tomlPath); err == nil {
		return decodeScalesTOML(tomlPath)
	}
	return nil, fmt.Errorf("%w in %s", ErrNoScales, dir)
}

func decodeScalesTOML(path string) (schema.Scales, error) {
	scales := make(schema.Scales)
	meta, err := toml.DecodeFile(path, &scales)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in %s: %v", path, undecoded)
	}
	return scales, nil
}
