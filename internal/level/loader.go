package level

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/samdwyer/tilenav/data"
)

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := data.FS().ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// MustLoad reads and unmarshals a JSON file, panicking on error.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}

// LoadFile reads a level definition from disk and validates it.
func LoadFile(path string) (*Def, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file %s: %w", path, err)
	}

	var def Def
	if err := json.Unmarshal(content, &def); err != nil {
		return nil, fmt.Errorf("failed to parse JSON from %s: %w", path, err)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("level file %s: %w", path, err)
	}
	return &def, nil
}

// LoadEmbedded loads every embedded level definition, sorted by file name.
func LoadEmbedded() ([]Def, error) {
	entries, err := fs.Glob(data.FS(), "*.json")
	if err != nil {
		return nil, err
	}

	defs := make([]Def, 0, len(entries))
	for _, name := range entries {
		def, err := Load[Def](name)
		if err != nil {
			return nil, err
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("embedded level %s: %w", name, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}
