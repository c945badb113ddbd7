package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brequin/brequin/soc/catalog"
	"github.com/brequin/brequin/soc/rating"
)

// Mode is the permission every snapshot ends up with. os.CreateTemp opens
// files owner-only.
const Mode os.FileMode = 0o644

// WriteJSON encodes v into a temporary file next to path and renames it
// into place, so path always holds either the previous or the new snapshot.
func WriteJSON(path string, v any, indent bool) (err error) {
	file, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer func() {
		if err != nil {
			file.Close()
			os.Remove(file.Name())
		}
	}()

	encoder := json.NewEncoder(file)
	if indent {
		encoder.SetIndent("", "  ")
	}
	if err = encoder.Encode(v); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err = file.Chmod(Mode); err != nil {
		return fmt.Errorf("chmod snapshot: %w", err)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err = os.Rename(file.Name(), path); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}

func ReadCatalog(path string) (*catalog.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := catalog.New()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	return c, nil
}

func ReadProfessors(path string) ([]rating.ProfessorRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return rating.ReadRecords(file)
}
