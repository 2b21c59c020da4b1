package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/Lilsadiq8345/Todo/gateway"
	"github.com/Lilsadiq8345/Todo/logging"
	"github.com/Lilsadiq8345/Todo/models"
)

// UserService je administratorski pandan TaskService-u nad korisničkim nalozima.
// Sam ne proverava ulogu; pristup čuva route guard, a krajnji autoritet je server.
type UserService struct {
	mu         sync.RWMutex
	api        *gateway.Client
	users      []models.User
	searchTerm string
}

func NewUserService(api *gateway.Client) *UserService {
	return &UserService{api: api}
}

// FetchAll zamenjuje listu korisnika stanjem sa servera.
func (s *UserService) FetchAll(ctx context.Context) error {
	var fetched []models.User
	if err := s.api.Get(ctx, "/api/users/", &fetched); err != nil {
		logging.Logger.Warnf("Event ID: USERS_FETCH_FAILED, Description: failed to fetch users: %v", err)
		return fmt.Errorf("failed to fetch users: %w", err)
	}

	s.mu.Lock()
	s.users = fetched
	s.mu.Unlock()

	logging.Logger.Infof("Event ID: USERS_FETCHED, Description: fetched %d users", len(fetched))
	return nil
}

// Create zahteva korisničko ime, email, lozinku i ulogu; vraćeni zapis ide na kraj liste.
func (s *UserService) Create(ctx context.Context, draft models.UserDraft) (models.User, error) {
	fields := map[string][]string{}
	if draft.Username == "" {
		fields["username"] = []string{"username is required"}
	}
	if draft.Email == "" {
		fields["email"] = []string{"email is required"}
	}
	if draft.Password == "" {
		fields["password"] = []string{"password is required"}
	}
	if draft.Role == "" {
		fields["role"] = []string{"role is required"}
	}
	if len(fields) > 0 {
		return models.User{}, &gateway.ValidationError{Fields: fields}
	}

	var created models.User
	if err := s.api.Post(ctx, "/api/users/", draft, &created); err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	s.users = append(s.users, created)
	s.mu.Unlock()

	logging.Logger.Infof("Event ID: USER_CREATED, Description: user %d created", created.ID)
	return created, nil
}

// Update šalje izmenu i zamenjuje lokalni zapis odgovorom servera.
func (s *UserService) Update(ctx context.Context, id int, patch models.UserPatch) (models.User, error) {
	var updated models.User
	if err := s.api.Put(ctx, fmt.Sprintf("/api/users/%d/", id), patch, &updated); err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i] = updated
			break
		}
	}
	s.mu.Unlock()

	logging.Logger.Infof("Event ID: USER_UPDATED, Description: user %d updated", id)
	return updated, nil
}

// Remove briše korisnika na serveru pa iz liste.
func (s *UserService) Remove(ctx context.Context, id int) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/api/users/%d/", id)); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	logging.Logger.Infof("Event ID: USER_REMOVED, Description: user %d removed", id)
	return nil
}

// SetSearchTerm postavlja termin pretrage po korisničkom imenu i email-u.
func (s *UserService) SetSearchTerm(term string) {
	s.mu.Lock()
	s.searchTerm = term
	s.mu.Unlock()
}

// DerivedView je projekcija liste korisnika kroz pretragu, u redosledu servera.
func (s *UserService) DerivedView() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		if !matchesSearch(s.searchTerm, u.Username, u.Email) {
			continue
		}
		view = append(view, u)
	}
	return view
}

// Reset prazni lokalno stanje pri odjavi.
func (s *UserService) Reset() {
	s.mu.Lock()
	s.users = nil
	s.searchTerm = ""
	s.mu.Unlock()
}
