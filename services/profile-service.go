package services

import (
	"context"

	"github.com/Lilsadiq8345/Todo/gateway"
	"github.com/Lilsadiq8345/Todo/logging"
	"github.com/Lilsadiq8345/Todo/models"
)

// ProfileService radi sa profilom trenutno prijavljenog korisnika.
type ProfileService struct {
	api *gateway.Client
}

func NewProfileService(api *gateway.Client) *ProfileService {
	return &ProfileService{api: api}
}

// Fetch vraća trenutni profil sa servera.
func (s *ProfileService) Fetch(ctx context.Context) (models.Profile, error) {
	var profile models.Profile
	if err := s.api.Get(ctx, "/api/profile/", &profile); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

// Update menja ime i email, uz opcionu promenu lozinke; za promenu lozinke
// obavezna su oba polja.
func (s *ProfileService) Update(ctx context.Context, update models.ProfileUpdate) (models.Profile, error) {
	if update.Name == "" {
		return models.Profile{}, gateway.NewFieldError("name", "name is required")
	}
	if update.Email == "" {
		return models.Profile{}, gateway.NewFieldError("email", "email is required")
	}
	if update.NewPassword != "" && update.CurrentPassword == "" {
		return models.Profile{}, gateway.NewFieldError("current_password", "current password is required to set a new one")
	}

	var profile models.Profile
	if err := s.api.Put(ctx, "/api/profile/", update, &profile); err != nil {
		return models.Profile{}, err
	}

	logging.Logger.Info("Event ID: PROFILE_UPDATED, Description: profile updated")
	return profile, nil
}
