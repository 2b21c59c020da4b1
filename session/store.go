package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Lilsadiq8345/Todo/gateway"
	"github.com/Lilsadiq8345/Todo/logging"
	"github.com/Lilsadiq8345/Todo/models"

	"github.com/golang-jwt/jwt/v5"
)

// Store je jedini izvor istine o prijavljenom korisniku i njegovom kredencijalu.
// Instanca se eksplicitno prosleđuje svakoj komponenti, nema globalnog stanja.
type Store struct {
	mu      sync.RWMutex
	cred    *models.Credential
	storage *FileStorage
	api     *gateway.Client
}

func NewStore(storage *FileStorage) *Store {
	return &Store{storage: storage}
}

// SetClient povezuje store sa gateway-em; gateway istovremeno koristi store kao TokenSource.
func (s *Store) SetClient(api *gateway.Client) {
	s.api = api
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Access   string `json:"access"`
	UserType string `json:"user_type"`
}

// Login šalje kredencijale na /api/login/ i čuva token i ulogu u memoriji i na disku.
// Neuspeh ne menja postojeće stanje.
func (s *Store) Login(ctx context.Context, email, password string) (models.Credential, error) {
	if email == "" {
		return models.Credential{}, gateway.NewFieldError("email", "email is required")
	}
	if password == "" {
		return models.Credential{}, gateway.NewFieldError("password", "password is required")
	}

	var resp loginResponse
	if err := s.api.PostPublic(ctx, "/api/login/", loginRequest{Email: email, Password: password}, &resp); err != nil {
		logging.Logger.Warnf("Event ID: LOGIN_FAILED, Description: login rejected for %s: %v", email, err)
		return models.Credential{}, err
	}

	// Odgovor bez tokena je pokvaren odgovor servera
	if resp.Access == "" {
		return models.Credential{}, &gateway.ServerError{StatusCode: 200, Body: "login response missing access token"}
	}
	role := resp.UserType
	if role == "" {
		role = models.RoleUser
	}

	cred := models.Credential{Token: resp.Access, Role: role}

	// Trajno stanje se upisuje pre povratka, da restart procesa vidi poslednju prijavu
	if err := s.storage.Save(cred); err != nil {
		logging.Logger.Errorf("Event ID: CRED_SAVE_FAILED, Description: failed to persist credential: %v", err)
		return models.Credential{}, err
	}

	s.mu.Lock()
	s.cred = &cred
	s.mu.Unlock()

	logging.Logger.Infof("Event ID: LOGIN_SUCCESS, Description: user %s logged in with role %s", email, role)
	return cred, nil
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register kreira novi nalog preko /api/register/; ne prijavljuje korisnika.
func (s *Store) Register(ctx context.Context, username, email, password string) error {
	fields := map[string][]string{}
	if username == "" {
		fields["username"] = []string{"username is required"}
	}
	if email == "" {
		fields["email"] = []string{"email is required"}
	}
	if password == "" {
		fields["password"] = []string{"password is required"}
	}
	if len(fields) > 0 {
		return &gateway.ValidationError{Fields: fields}
	}

	if err := s.api.PostPublic(ctx, "/api/register/", registerRequest{Username: username, Email: email, Password: password}, nil); err != nil {
		return err
	}

	logging.Logger.Infof("Event ID: REGISTER_SUCCESS, Description: account created for %s", email)
	return nil
}

// Restore čita trajni kredencijal pri startu procesa, bez provere kod servera.
func (s *Store) Restore() (models.Credential, bool) {
	cred, ok := s.storage.Load()
	if !ok {
		return models.Credential{}, false
	}

	s.mu.Lock()
	s.cred = &cred
	s.mu.Unlock()
	return cred, true
}

// Logout bezuslovno briše kredencijal iz memorije i sa diska; idempotentan.
func (s *Store) Logout() {
	s.mu.Lock()
	s.cred = nil
	s.mu.Unlock()

	if err := s.storage.Clear(); err != nil {
		logging.Logger.Warnf("Event ID: CRED_CLEAR_FAILED, Description: failed to clear stored credential: %v", err)
	}
	logging.Logger.Info("Event ID: LOGOUT, Description: session cleared")
}

// Current vraća trenutni kredencijal; koristi ga route guard.
func (s *Store) Current() (models.Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == nil {
		return models.Credential{}, false
	}
	return *s.cred, true
}

// Token implementira gateway.TokenSource.
func (s *Store) Token() (string, bool) {
	cred, ok := s.Current()
	if !ok {
		return "", false
	}
	return cred.Token, true
}

// Invalidate implementira gateway.TokenSource: server je odbio token tokom rada,
// pa se sesija gasi kao kod eksplicitnog logout-a.
func (s *Store) Invalidate() {
	logging.Logger.Warn("Event ID: SESSION_INVALIDATED, Description: server rejected the stored token")
	s.Logout()
}

// TokenInfo su tvrdnje pročitane iz tokena bez provere potpisa (klijent nema tajni ključ).
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
	Expired   bool
}

// TokenInfo parsira sačuvani JWT radi prikaza; token kome ne može da se veruje
// svakako biva odbijen od servera pri prvom pozivu.
func (s *Store) TokenInfo() (TokenInfo, error) {
	cred, ok := s.Current()
	if !ok {
		return TokenInfo{}, fmt.Errorf("no active session")
	}
	if strings.Count(cred.Token, ".") != 2 {
		return TokenInfo{}, fmt.Errorf("stored token is not a JWT")
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(cred.Token, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("failed to parse token: %w", err)
	}

	info := TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
		info.Expired = exp.Before(time.Now())
	}
	return info, nil
}
