package checkpoint

import (
	"os"
	"path/filepath"
)

// LocalStore persists slabs as plain files under Dir, one file per named
// slab per checkpoint time, matching §6's naming convention exactly.
type LocalStore struct {
	Dir string
}

func (s LocalStore) WriteSlab(name string, step int, data []byte) error {
	path := filepath.Join(s.Dir, slabFileName(name, step))
	return retryIOFailed("checkpoint.LocalStore.WriteSlab", func() error {
		return os.WriteFile(path, data, 0o644)
	}, nil)
}

func (s LocalStore) ReadSlab(name string, step int) ([]byte, error) {
	path := filepath.Join(s.Dir, slabFileName(name, step))
	var data []byte
	err := retryIOFailed("checkpoint.LocalStore.ReadSlab", func() error {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		data = b
		return nil
	}, nil)
	return data, err
}
