package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Lilsadiq8345/Todo/models"

	"github.com/stretchr/testify/assert"
)

func TestStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cred.json")
	storage := NewFileStorage(path)

	cred := models.Credential{Token: "tok-abc", Role: "admin"}
	assert.NoError(t, storage.Save(cred))

	loaded, ok := storage.Load()
	assert.True(t, ok)
	assert.Equal(t, cred, loaded)
}

func TestStorageUsesSpecKeys(t *testing.T) {
	// Trajni zapis mora imati ključeve "token" i "user"
	path := filepath.Join(t.TempDir(), "cred.json")
	storage := NewFileStorage(path)

	assert.NoError(t, storage.Save(models.Credential{Token: "tok", Role: "user"}))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"token":"tok","user":"user"}`, string(data))
}

func TestStorageMissingFile(t *testing.T) {
	storage := NewFileStorage(filepath.Join(t.TempDir(), "missing.json"))

	_, ok := storage.Load()
	assert.False(t, ok)
}

func TestStorageCorruptFileTreatedAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cred.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	storage := NewFileStorage(path)
	_, ok := storage.Load()
	assert.False(t, ok)
}

func TestStorageClearIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cred.json")
	storage := NewFileStorage(path)

	assert.NoError(t, storage.Save(models.Credential{Token: "tok", Role: "user"}))
	assert.NoError(t, storage.Clear())
	assert.NoError(t, storage.Clear())

	_, ok := storage.Load()
	assert.False(t, ok)
}

func TestStorageCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cred.json")
	storage := NewFileStorage(path)

	assert.NoError(t, storage.Save(models.Credential{Token: "tok", Role: "user"}))

	_, ok := storage.Load()
	assert.True(t, ok)
}
