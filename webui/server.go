package webui

import (
	"fmt"
	"net/http"

	"github.com/Lilsadiq8345/Todo/guard"
	"github.com/Lilsadiq8345/Todo/logging"
	"github.com/Lilsadiq8345/Todo/services"
	"github.com/Lilsadiq8345/Todo/session"

	"github.com/gorilla/mux"
)

// Server je lokalni veb prikaz nad menadžerima kolekcija: ne drži sopstveno
// stanje, samo renderuje menadžere i prosleđuje im namere korisnika.
type Server struct {
	session *session.Store
	guard   *guard.Guard
	tasks   *services.TaskService
	users   *services.UserService
	profile *services.ProfileService
	router  *mux.Router
}

func NewServer(store *session.Store, g *guard.Guard, tasks *services.TaskService, users *services.UserService, profile *services.ProfileService) *Server {
	s := &Server{
		session: store,
		guard:   g,
		tasks:   tasks,
		users:   users,
		profile: profile,
	}

	r := mux.NewRouter()

	// Javne rute
	r.HandleFunc("/login", s.LoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", s.LoginSubmit).Methods(http.MethodPost)
	r.HandleFunc("/admin/login", s.AdminLoginPage).Methods(http.MethodGet)
	r.HandleFunc("/admin/login", s.AdminLoginSubmit).Methods(http.MethodPost)
	r.HandleFunc("/register", s.RegisterPage).Methods(http.MethodGet)
	r.HandleFunc("/register", s.RegisterSubmit).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.Logout).Methods(http.MethodPost)

	// Rute koje zahtevaju prijavu
	r.Handle("/", s.requireAuth(http.HandlerFunc(s.Home))).Methods(http.MethodGet)
	r.Handle("/tasks", s.requireAuth(http.HandlerFunc(s.TasksPage))).Methods(http.MethodGet)
	r.Handle("/tasks/create", s.requireAuth(http.HandlerFunc(s.TaskCreate))).Methods(http.MethodPost)
	r.Handle("/tasks/{id}/toggle", s.requireAuth(http.HandlerFunc(s.TaskToggle))).Methods(http.MethodPost)
	r.Handle("/tasks/{id}/delete", s.requireAuth(http.HandlerFunc(s.TaskDelete))).Methods(http.MethodPost)
	r.Handle("/profile", s.requireAuth(http.HandlerFunc(s.ProfilePage))).Methods(http.MethodGet)
	r.Handle("/profile", s.requireAuth(http.HandlerFunc(s.ProfileSubmit))).Methods(http.MethodPost)
	r.Handle("/api/view/tasks", s.requireAuth(http.HandlerFunc(s.TasksJSON))).Methods(http.MethodGet)

	// Administratorske rute
	r.Handle("/admin/users", s.requireAdmin(http.HandlerFunc(s.UsersPage))).Methods(http.MethodGet)
	r.Handle("/admin/users/create", s.requireAdmin(http.HandlerFunc(s.UserCreate))).Methods(http.MethodPost)
	r.Handle("/admin/users/{id}/delete", s.requireAdmin(http.HandlerFunc(s.UserDelete))).Methods(http.MethodPost)

	s.router = r
	return s
}

// Handler vraća kompletan handler sa CORS omotačem.
func (s *Server) Handler() http.Handler {
	return enableCORS(s.router)
}

// Run pokreće lokalni server na datom portu.
func (s *Server) Run(port string) error {
	addr := fmt.Sprintf(":%s", port)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Dashboard running on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// requireAuth preusmerava neprijavljene posetioce na stranicu za prijavu.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.guard.Check(guard.RequireAuth) != guard.Allow {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin preusmerava sve koji nisu prijavljeni kao administrator.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.guard.Check(guard.RequireAdmin) != guard.Allow {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
