package settingsstore

import (
	"errors"

	"github.com/mrlokans/shelf/internal/catalog"
	"github.com/mrlokans/shelf/internal/entities"
)

// ErrOwnerNotSet is returned when no catalog owner has been registered.
var ErrOwnerNotSet = errors.New("catalog owner not set")

// GetOwner returns the catalog owner (database > OWNER_NAME/OWNER_EMAIL).
func (s *SettingsStore) GetOwner() (catalog.User, error) {
	name, _ := s.resolve(entities.SettingKeyOwnerName, "OWNER_NAME", "")
	email, _ := s.resolve(entities.SettingKeyOwnerEmail, "OWNER_EMAIL", "")
	if name == "" && email == "" {
		return catalog.User{}, ErrOwnerNotSet
	}
	return catalog.NewUser(name, email)
}

func (s *SettingsStore) SetOwner(u catalog.User) error {
	return s.repo.SetSettings(map[string]string{
		entities.SettingKeyOwnerName:  u.Name,
		entities.SettingKeyOwnerEmail: u.Email,
	})
}

func (s *SettingsStore) ClearOwner() error {
	return s.clear(entities.SettingKeyOwnerName, entities.SettingKeyOwnerEmail)
}
