package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Lilsadiq8345/Todo/models"
)

// FileStorage je trajni slot za jedan kredencijal, JSON fajl sa ključevima "token" i "user".
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load čita sačuvani kredencijal; pokvaren ili nepostojeći fajl se tretira kao odsutan.
func (f *FileStorage) Load() (models.Credential, bool) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return models.Credential{}, false
	}

	var cred models.Credential
	if err := json.Unmarshal(data, &cred); err != nil || cred.Token == "" {
		return models.Credential{}, false
	}
	return cred, true
}

// Save upisuje kredencijal atomski (temp fajl pa rename).
func (f *FileStorage) Save(cred models.Credential) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create credential directory: %w", err)
	}

	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "cred-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp credential file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write credential file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close credential file: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set credential file mode: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace credential file: %w", err)
	}
	return nil
}

// Clear briše sačuvani kredencijal; nepostojeći fajl nije greška.
func (f *FileStorage) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credential file: %w", err)
	}
	return nil
}
