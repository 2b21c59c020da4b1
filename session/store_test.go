package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Lilsadiq8345/Todo/gateway"
	"github.com/Lilsadiq8345/Todo/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T, credFile string, handler http.Handler) *Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := NewStore(NewFileStorage(credFile))
	store.SetClient(gateway.NewClient(srv.URL, 2*time.Second, store))
	return store
}

func loginHandler(t *testing.T, access, userType string) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body["password"] != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access": access, "user_type": userType})
	})
	return mux
}

func TestLoginPersistsAcrossRestart(t *testing.T) {
	credFile := filepath.Join(t.TempDir(), "cred.json")
	store := newTestStore(t, credFile, loginHandler(t, "tok-xyz", "user"))

	cred, err := store.Login(context.Background(), "a@b.com", "correct")
	assert.NoError(t, err)
	assert.Equal(t, models.Credential{Token: "tok-xyz", Role: "user"}, cred)

	// Novi proces: novi store nad istim fajlom
	restarted := NewStore(NewFileStorage(credFile))
	restored, ok := restarted.Restore()
	assert.True(t, ok)
	assert.Equal(t, cred, restored)

	current, ok := restarted.Current()
	assert.True(t, ok)
	assert.Equal(t, cred, current)
}

func TestLogoutClearsMemoryAndDisk(t *testing.T) {
	credFile := filepath.Join(t.TempDir(), "cred.json")
	store := newTestStore(t, credFile, loginHandler(t, "tok", "admin"))

	_, err := store.Login(context.Background(), "a@b.com", "correct")
	assert.NoError(t, err)

	store.Logout()

	_, ok := store.Current()
	assert.False(t, ok)

	_, ok = NewFileStorage(credFile).Load()
	assert.False(t, ok)

	// Logout je idempotentan
	store.Logout()
}

func TestFailedLoginLeavesStateUntouched(t *testing.T) {
	credFile := filepath.Join(t.TempDir(), "cred.json")
	store := newTestStore(t, credFile, loginHandler(t, "tok-old", "user"))

	existing, err := store.Login(context.Background(), "a@b.com", "correct")
	assert.NoError(t, err)

	_, err = store.Login(context.Background(), "bad@x.com", "wrong")
	assert.ErrorIs(t, err, gateway.ErrUnauthorized)

	current, ok := store.Current()
	assert.True(t, ok)
	assert.Equal(t, existing, current)

	persisted, ok := NewFileStorage(credFile).Load()
	assert.True(t, ok)
	assert.Equal(t, existing, persisted)
}

func TestLoginValidatesInputLocally(t *testing.T) {
	store := newTestStore(t, filepath.Join(t.TempDir(), "cred.json"), loginHandler(t, "tok", "user"))

	_, err := store.Login(context.Background(), "", "secret")
	var vErr *gateway.ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = store.Login(context.Background(), "a@b.com", "")
	assert.ErrorAs(t, err, &vErr)
}

func TestLoginRejectsResponseWithoutToken(t *testing.T) {
	store := newTestStore(t, filepath.Join(t.TempDir(), "cred.json"), loginHandler(t, "", "user"))

	_, err := store.Login(context.Background(), "a@b.com", "correct")

	var sErr *gateway.ServerError
	assert.ErrorAs(t, err, &sErr)

	_, ok := store.Current()
	assert.False(t, ok)
}

func TestRestoreWithoutCredential(t *testing.T) {
	store := NewStore(NewFileStorage(filepath.Join(t.TempDir(), "cred.json")))

	_, ok := store.Restore()
	assert.False(t, ok)

	_, ok = store.Current()
	assert.False(t, ok)
}

func TestUnauthorizedDuringOperationInvalidatesSession(t *testing.T) {
	credFile := filepath.Join(t.TempDir(), "cred.json")

	mux := http.NewServeMux()
	mux.HandleFunc("/api/login/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access": "tok", "user_type": "user"})
	})
	mux.HandleFunc("/api/tasks/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := NewStore(NewFileStorage(credFile))
	api := gateway.NewClient(srv.URL, 2*time.Second, store)
	store.SetClient(api)

	_, err := store.Login(context.Background(), "a@b.com", "x")
	assert.NoError(t, err)

	// Server odbija sačuvani token tokom običnog poziva
	err = api.Get(context.Background(), "/api/tasks/", nil)
	assert.ErrorIs(t, err, gateway.ErrUnauthorized)

	_, ok := store.Current()
	assert.False(t, ok)

	_, ok = NewFileStorage(credFile).Load()
	assert.False(t, ok)
}

func TestRegisterValidatesFields(t *testing.T) {
	store := newTestStore(t, filepath.Join(t.TempDir(), "cred.json"), http.NewServeMux())

	err := store.Register(context.Background(), "", "", "")

	var vErr *gateway.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 3)
}

func TestTokenInfoReadsClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	credFile := filepath.Join(t.TempDir(), "cred.json")
	storage := NewFileStorage(credFile)
	assert.NoError(t, storage.Save(models.Credential{Token: signed, Role: "user"}))

	store := NewStore(storage)
	_, ok := store.Restore()
	assert.True(t, ok)

	info, err := store.TokenInfo()
	assert.NoError(t, err)
	assert.Equal(t, "42", info.Subject)
	assert.Equal(t, exp.Unix(), info.ExpiresAt.Unix())
	assert.False(t, info.Expired)
}

func TestTokenInfoOpaqueToken(t *testing.T) {
	credFile := filepath.Join(t.TempDir(), "cred.json")
	storage := NewFileStorage(credFile)
	assert.NoError(t, storage.Save(models.Credential{Token: "opaque-token", Role: "user"}))

	store := NewStore(storage)
	store.Restore()

	_, err := store.TokenInfo()
	assert.Error(t, err)
}
