package guard

import (
	"github.com/Lilsadiq8345/Todo/models"
)

// Requirement je nivo pristupa koji prikaz zahteva.
type Requirement int

const (
	Public Requirement = iota
	RequireAuth
	RequireAdmin
)

// Decision je ishod provere: pusti prikaz ili preusmeri na prijavu.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectAdminLogin
)

// State je trenutno stanje sesije iz ugla guard-a.
type State struct {
	Authenticated bool
	Role          string
}

// SessionState je ono što guard čita iz session store-a.
type SessionState interface {
	Current() (models.Credential, bool)
}

// Guard gleda sesiju pre ulaska u bilo koji zaštićeni prikaz. Optimističan je:
// veruje vraćenom kredencijalu dok ga server ne odbije, kada store sam
// prelazi u neprijavljeno stanje.
type Guard struct {
	session SessionState
}

func New(session SessionState) *Guard {
	return &Guard{session: session}
}

// State vraća trenutno stanje: Unauthenticated ili Authenticated(role).
func (g *Guard) State() State {
	cred, ok := g.session.Current()
	if !ok {
		return State{}
	}
	return State{Authenticated: true, Role: cred.Role}
}

// Check odlučuje da li prikaz sa datim zahtevom sme da se prikaže.
func (g *Guard) Check(req Requirement) Decision {
	state := g.State()

	switch req {
	case Public:
		return Allow
	case RequireAuth:
		if !state.Authenticated {
			return RedirectLogin
		}
		return Allow
	case RequireAdmin:
		if !state.Authenticated {
			return RedirectAdminLogin
		}
		if state.Role != models.RoleAdmin {
			return RedirectAdminLogin
		}
		return Allow
	}
	return Allow
}
