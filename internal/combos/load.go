package combos

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const ResultFile = "combos.json"

// Load reads a combos.json document back into a ResultSet, keeping the
// character order of the file.
func Load(path string) (*ResultSet, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rs := NewResultSet()
	err = json.Unmarshal(contents, rs)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// Save writes the ResultSet to path with 4-space indentation, creating
// parent directories as needed.
func Save(path string, rs *ResultSet) error {
	err := os.MkdirAll(filepath.Dir(path), 0777)
	if err != nil {
		return err
	}
	contents, err := json.MarshalIndent(rs, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, contents, 0644)
}
