package webui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Lilsadiq8345/Todo/gateway"
	"github.com/Lilsadiq8345/Todo/guard"
	"github.com/Lilsadiq8345/Todo/models"
	"github.com/Lilsadiq8345/Todo/services"
	"github.com/Lilsadiq8345/Todo/session"

	"github.com/stretchr/testify/assert"
)

// newTestServer podiže kompletan klijent nad lažnim API serverom.
func newTestServer(t *testing.T, api http.Handler) *Server {
	t.Helper()
	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)

	store := session.NewStore(session.NewFileStorage(filepath.Join(t.TempDir(), "cred.json")))
	client := gateway.NewClient(apiSrv.URL, 2*time.Second, store)
	store.SetClient(client)

	return NewServer(
		store,
		guard.New(store),
		services.NewTaskService(client),
		services.NewUserService(client),
		services.NewProfileService(client),
	)
}

func fakeAPI(role string, tasks []models.Task) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access": "tok", "user_type": role})
	})
	mux.HandleFunc("/api/tasks/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(tasks)
	})
	mux.HandleFunc("/api/users/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.User{{ID: 1, Username: "alice", Email: "alice@x.com", Role: "admin"}})
	})
	mux.HandleFunc("/api/profile/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.Profile{Name: "Alice", Email: "alice@x.com"})
	})
	return mux
}

func postForm(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, srv *Server, email string) {
	t.Helper()
	rec := postForm(t, srv, "/login", url.Values{"email": {email}, "password": {"correct"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tasks", rec.Header().Get("Location"))
}

func TestUnauthenticatedIsRedirectedToLogin(t *testing.T) {
	srv := newTestServer(t, fakeAPI("user", nil))

	for _, path := range []string{"/", "/tasks", "/profile", "/api/view/tasks"} {
		rec := get(t, srv, path)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}
}

func TestNonAdminIsRedirectedToAdminLogin(t *testing.T) {
	srv := newTestServer(t, fakeAPI("user", nil))
	login(t, srv, "user@x.com")

	rec := get(t, srv, "/admin/users")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
}

func TestLoginFailureRendersError(t *testing.T) {
	srv := newTestServer(t, fakeAPI("user", nil))

	rec := postForm(t, srv, "/login", url.Values{"email": {"a@b.com"}, "password": {"wrong"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password.")
}

func TestTasksPageRendersDerivedView(t *testing.T) {
	srv := newTestServer(t, fakeAPI("user", []models.Task{
		{ID: 1, Title: "Buy milk", Status: models.StatusPending},
		{ID: 2, Title: "Walk dog", Status: models.StatusCompleted, IsCompleted: true},
	}))
	login(t, srv, "user@x.com")

	rec := get(t, srv, "/tasks?q=milk")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Buy milk")
	assert.NotContains(t, rec.Body.String(), "Walk dog")
	assert.Contains(t, rec.Body.String(), "1 of 2 completed")
}

func TestTasksJSONAppliesFilters(t *testing.T) {
	srv := newTestServer(t, fakeAPI("user", []models.Task{
		{ID: 1, Title: "Buy milk", Status: models.StatusPending},
		{ID: 2, Title: "Pay bills", Status: models.StatusCompleted, IsCompleted: true},
	}))
	login(t, srv, "user@x.com")

	rec := get(t, srv, "/api/view/tasks?status=completed")
	assert.Equal(t, http.StatusOK, rec.Code)

	var view []models.Task
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Len(t, view, 1)
	assert.Equal(t, 2, view[0].ID)
}

func TestAdminLoginRejectsPlainUser(t *testing.T) {
	srv := newTestServer(t, fakeAPI("user", nil))

	rec := postForm(t, srv, "/admin/login", url.Values{"email": {"u@x.com"}, "password": {"correct"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "not an administrator")

	// Neuspela administratorska prijava ne sme da ostavi sesiju
	follow := get(t, srv, "/tasks")
	assert.Equal(t, http.StatusSeeOther, follow.Code)
}

func TestAdminCanOpenUsersPage(t *testing.T) {
	srv := newTestServer(t, fakeAPI("admin", nil))

	rec := postForm(t, srv, "/admin/login", url.Values{"email": {"a@x.com"}, "password": {"correct"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/users", rec.Header().Get("Location"))

	page := get(t, srv, "/admin/users")
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "alice@x.com")
}

func TestLogoutResetsManagersAndRedirects(t *testing.T) {
	srv := newTestServer(t, fakeAPI("user", []models.Task{{ID: 1, Title: "Secret task"}}))
	login(t, srv, "user@x.com")

	// Popuni stanje menadžera
	assert.Equal(t, http.StatusOK, get(t, srv, "/tasks").Code)

	rec := postForm(t, srv, "/logout", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	// Sesija i lokalno stanje su očišćeni
	_, ok := srv.session.Current()
	assert.False(t, ok)
	assert.Empty(t, srv.tasks.DerivedView())

	follow := get(t, srv, "/tasks")
	assert.Equal(t, http.StatusSeeOther, follow.Code)
}

func TestExpiredSessionRedirectsDuringOperation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access": "tok", "user_type": "user"})
	})
	mux.HandleFunc("/api/tasks/", func(w http.ResponseWriter, r *http.Request) {
		// Token je u međuvremenu istekao
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := newTestServer(t, mux)
	login(t, srv, "user@x.com")

	rec := get(t, srv, "/tasks")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/login"))

	_, ok := srv.session.Current()
	assert.False(t, ok)
}
