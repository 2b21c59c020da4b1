package webui

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Lilsadiq8345/Todo/gateway"
	"github.com/Lilsadiq8345/Todo/models"

	"github.com/gorilla/mux"
)

// Home preusmerava na listu zadataka.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

type loginPageData struct {
	Admin bool
	Error string
}

func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login", loginPageData{Error: r.URL.Query().Get("err")})
}

func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if _, err := s.session.Login(r.Context(), email, password); err != nil {
		s.render(w, "login", loginPageData{Error: loginMessage(err)})
		return
	}
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// loginMessage: odbijena prijava su pogrešni kredencijali, ne istekla sesija.
func loginMessage(err error) string {
	if errors.Is(err, gateway.ErrUnauthorized) {
		return "Invalid email or password."
	}
	return gateway.UserMessage(err)
}

func (s *Server) AdminLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login", loginPageData{Admin: true, Error: r.URL.Query().Get("err")})
}

func (s *Server) AdminLoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	cred, err := s.session.Login(r.Context(), email, password)
	if err != nil {
		s.render(w, "login", loginPageData{Admin: true, Error: loginMessage(err)})
		return
	}

	// Administratorska prijava ne sme da ostavi običnu sesiju za sobom
	if !cred.IsAdmin() {
		s.session.Logout()
		s.render(w, "login", loginPageData{Admin: true, Error: "This account is not an administrator."})
		return
	}
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

type registerPageData struct {
	Error string
}

func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "register", registerPageData{})
}

func (s *Server) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	err := s.session.Register(r.Context(), r.FormValue("username"), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		s.render(w, "register", registerPageData{Error: gateway.UserMessage(err)})
		return
	}
	http.Redirect(w, r, "/login?err="+url.QueryEscape("Account created. You can sign in now."), http.StatusSeeOther)
}

// Logout gasi sesiju i prazni sve zavisne menadžere umesto ponovnog učitavanja.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.session.Logout()
	s.tasks.Reset()
	s.users.Reset()
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type tasksPageData struct {
	Tasks     []models.Task
	Search    string
	Filter    string
	Total     int
	Completed int
	Message   string
	Error     string
}

func (s *Server) TasksPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.tasks.SetSearchTerm(q.Get("q"))
	if err := s.tasks.SetStatusFilter(q.Get("status")); err != nil {
		s.tasks.SetStatusFilter("all")
	}

	data := tasksPageData{
		Search:  q.Get("q"),
		Filter:  q.Get("status"),
		Message: q.Get("msg"),
		Error:   q.Get("err"),
	}
	if data.Filter == "" {
		data.Filter = "all"
	}

	if err := s.tasks.FetchAll(r.Context()); err != nil {
		if s.redirectIfLoggedOut(w, r, err) {
			return
		}
		// Lista ostaje na poslednjem poznatom stanju
		data.Error = gateway.UserMessage(err)
	}

	data.Tasks = s.tasks.DerivedView()
	data.Total, data.Completed = s.tasks.Counts()
	s.render(w, "tasks", data)
}

// TasksJSON vraća izvedeni prikaz kao JSON, za programske potrošače prikaza.
func (s *Server) TasksJSON(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.tasks.SetSearchTerm(q.Get("q"))
	if err := s.tasks.SetStatusFilter(q.Get("status")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.tasks.FetchAll(r.Context()); err != nil {
		if s.redirectIfLoggedOut(w, r, err) {
			return
		}
		http.Error(w, gateway.UserMessage(err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.tasks.DerivedView())
}

func (s *Server) TaskCreate(w http.ResponseWriter, r *http.Request) {
	draft := models.TaskDraft{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		DueDate:     r.FormValue("due_date"),
	}
	if v := r.FormValue("status"); v != "" {
		draft.Status = models.TaskStatus(v)
	}

	if _, err := s.tasks.Create(r.Context(), draft); err != nil {
		s.redirectTasks(w, r, "", gateway.UserMessage(err))
		return
	}
	s.redirectTasks(w, r, "Task created successfully!", "")
}

func (s *Server) TaskToggle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		s.redirectTasks(w, r, "", "Invalid task id.")
		return
	}

	if _, err := s.tasks.ToggleCompletion(r.Context(), id); err != nil {
		s.redirectTasks(w, r, "", gateway.UserMessage(err))
		return
	}
	s.redirectTasks(w, r, "Task updated successfully!", "")
}

func (s *Server) TaskDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		s.redirectTasks(w, r, "", "Invalid task id.")
		return
	}

	if err := s.tasks.Remove(r.Context(), id); err != nil {
		s.redirectTasks(w, r, "", gateway.UserMessage(err))
		return
	}
	s.redirectTasks(w, r, "Task deleted successfully!", "")
}

type usersPageData struct {
	Users   []models.User
	Search  string
	Message string
	Error   string
}

func (s *Server) UsersPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.users.SetSearchTerm(q.Get("q"))

	data := usersPageData{
		Search:  q.Get("q"),
		Message: q.Get("msg"),
		Error:   q.Get("err"),
	}

	if err := s.users.FetchAll(r.Context()); err != nil {
		if s.redirectIfLoggedOut(w, r, err) {
			return
		}
		data.Error = gateway.UserMessage(err)
	}

	data.Users = s.users.DerivedView()
	s.render(w, "users", data)
}

func (s *Server) UserCreate(w http.ResponseWriter, r *http.Request) {
	draft := models.UserDraft{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Role:     r.FormValue("role"),
	}

	if _, err := s.users.Create(r.Context(), draft); err != nil {
		s.redirectUsers(w, r, "", gateway.UserMessage(err))
		return
	}
	s.redirectUsers(w, r, "User created successfully!", "")
}

func (s *Server) UserDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		s.redirectUsers(w, r, "", "Invalid user id.")
		return
	}

	if err := s.users.Remove(r.Context(), id); err != nil {
		s.redirectUsers(w, r, "", gateway.UserMessage(err))
		return
	}
	s.redirectUsers(w, r, "User deleted successfully!", "")
}

type profilePageData struct {
	Profile models.Profile
	Message string
	Error   string
}

func (s *Server) ProfilePage(w http.ResponseWriter, r *http.Request) {
	data := profilePageData{
		Message: r.URL.Query().Get("msg"),
		Error:   r.URL.Query().Get("err"),
	}

	profile, err := s.profile.Fetch(r.Context())
	if err != nil {
		if s.redirectIfLoggedOut(w, r, err) {
			return
		}
		data.Error = gateway.UserMessage(err)
	}
	data.Profile = profile
	s.render(w, "profile", data)
}

func (s *Server) ProfileSubmit(w http.ResponseWriter, r *http.Request) {
	update := models.ProfileUpdate{
		Name:            r.FormValue("name"),
		Email:           r.FormValue("email"),
		CurrentPassword: r.FormValue("current_password"),
		NewPassword:     r.FormValue("new_password"),
	}

	if _, err := s.profile.Update(r.Context(), update); err != nil {
		if s.redirectIfLoggedOut(w, r, err) {
			return
		}
		http.Redirect(w, r, "/profile?err="+url.QueryEscape(gateway.UserMessage(err)), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/profile?msg="+url.QueryEscape("Profile updated successfully!"), http.StatusSeeOther)
}

// redirectIfLoggedOut hvata 401 tokom rada: store je već poništio sesiju,
// ovde se korisnik samo vraća na prijavu.
func (s *Server) redirectIfLoggedOut(w http.ResponseWriter, r *http.Request, err error) bool {
	if errors.Is(err, gateway.ErrUnauthorized) {
		s.tasks.Reset()
		s.users.Reset()
		http.Redirect(w, r, "/login?err="+url.QueryEscape("Session expired. Please log in again."), http.StatusSeeOther)
		return true
	}
	return false
}

func (s *Server) redirectTasks(w http.ResponseWriter, r *http.Request, msg, errMsg string) {
	target := "/tasks"
	if msg != "" {
		target += "?msg=" + url.QueryEscape(msg)
	} else if errMsg != "" {
		target += "?err=" + url.QueryEscape(errMsg)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) redirectUsers(w http.ResponseWriter, r *http.Request, msg, errMsg string) {
	target := "/admin/users"
	if msg != "" {
		target += "?msg=" + url.QueryEscape(msg)
	} else if errMsg != "" {
		target += "?err=" + url.QueryEscape(errMsg)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}
