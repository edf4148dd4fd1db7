package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"yuyingbao/internal/models"
	"yuyingbao/internal/storage"
)

// Store holds the identity state of the running client: the signed-in
// user, the active family and the active baby. All reads and writes go
// through it; no other package touches the persisted identity keys.
type Store struct {
	mu     sync.RWMutex
	user   *models.User
	family *models.Family
	baby   *models.Baby
	token  string
	epoch  uint64

	persist *storage.Store
	sealer  *storage.Sealer
}

// NewStore creates a session store over the durable key-value store.
// The sealer protects the token at rest and may differ per device.
func NewStore(persist *storage.Store, sealer *storage.Sealer) *Store {
	return &Store{persist: persist, sealer: sealer}
}

// Restore loads any persisted identity into memory without touching the
// network. It reports whether a token was recovered; a corrupt or
// missing token leaves the session signed out.
func (s *Store) Restore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, err := s.persist.Get(storage.KeyUserInfo); err == nil {
		var user models.User
		if err := json.Unmarshal([]byte(raw), &user); err == nil {
			s.user = &user
		} else {
			log.Printf("discarding unreadable user info: %v", err)
		}
	}
	if raw, err := s.persist.Get(storage.KeyFamilyInfo); err == nil {
		var family models.Family
		if err := json.Unmarshal([]byte(raw), &family); err == nil {
			s.family = &family
		} else {
			log.Printf("discarding unreadable family info: %v", err)
		}
	}
	if raw, err := s.persist.Get(storage.KeyBabyInfo); err == nil {
		var baby models.Baby
		if err := json.Unmarshal([]byte(raw), &baby); err == nil {
			s.baby = &baby
		} else {
			log.Printf("discarding unreadable baby info: %v", err)
		}
	}

	sealed, err := s.persist.Get(storage.KeyToken)
	if err != nil {
		return false
	}
	token, err := s.sealer.Open(sealed)
	if err != nil {
		log.Printf("discarding unreadable token: %v", err)
		return false
	}
	s.token = token
	return true
}

// Token returns the current bearer token if the session is signed in
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetToken stores and persists the bearer token
func (s *Store) SetToken(token string) error {
	sealed, err := s.sealer.Seal(token)
	if err != nil {
		return fmt.Errorf("failed to seal token: %w", err)
	}
	if err := s.persist.Put(storage.KeyToken, sealed); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// User returns the signed-in user, or nil
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetUser stores and persists the signed-in user
func (s *Store) SetUser(user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.persist.Put(storage.KeyUserInfo, string(raw)); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// Family returns the active family, or nil
func (s *Store) Family() *models.Family {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.family
}

// SetFamily stores and persists the active family
func (s *Store) SetFamily(family *models.Family) error {
	raw, err := json.Marshal(family)
	if err != nil {
		return fmt.Errorf("failed to encode family: %w", err)
	}
	if err := s.persist.Put(storage.KeyFamilyInfo, string(raw)); err != nil {
		return err
	}

	s.mu.Lock()
	s.family = family
	s.mu.Unlock()
	return nil
}

// ActiveBaby returns the baby records are attributed to, or nil
func (s *Store) ActiveBaby() *models.Baby {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baby
}

// SetActiveBaby stores and persists the active baby selection.
// Passing nil clears the selection.
func (s *Store) SetActiveBaby(baby *models.Baby) error {
	if baby == nil {
		if err := s.persist.Delete(storage.KeyBabyInfo); err != nil {
			return err
		}
		s.mu.Lock()
		s.baby = nil
		s.mu.Unlock()
		return nil
	}

	raw, err := json.Marshal(baby)
	if err != nil {
		return fmt.Errorf("failed to encode baby: %w", err)
	}
	if err := s.persist.Put(storage.KeyBabyInfo, string(raw)); err != nil {
		return err
	}

	s.mu.Lock()
	s.baby = baby
	s.mu.Unlock()
	return nil
}

// ReconcileRoster checks the active baby against the family's current
// roster. If the selection no longer exists it falls back to the first
// baby, or clears the selection when the roster is empty.
func (s *Store) ReconcileRoster(babies []models.Baby) error {
	s.mu.RLock()
	current := s.baby
	s.mu.RUnlock()

	if current != nil {
		for i := range babies {
			if babies[i].ID == current.ID {
				// Refresh stored details in case the profile changed.
				return s.SetActiveBaby(&babies[i])
			}
		}
	}
	if len(babies) > 0 {
		return s.SetActiveBaby(&babies[0])
	}
	if current != nil {
		return s.SetActiveBaby(nil)
	}
	return nil
}

// Epoch returns the current session generation. It increases every
// time the session is cleared, so in-flight work started before a
// logout can detect it finished against a dead session.
func (s *Store) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// Clear wipes the session identity in memory and on disk. The persisted
// keys are removed in one transaction so a crash cannot leave a token
// without its user.
func (s *Store) Clear() error {
	err := s.persist.Clear(
		storage.KeyToken,
		storage.KeyUserInfo,
		storage.KeyFamilyInfo,
		storage.KeyBabyInfo,
	)

	s.mu.Lock()
	s.user = nil
	s.family = nil
	s.baby = nil
	s.token = ""
	s.epoch++
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// SignedIn reports whether the session currently holds a token
func (s *Store) SignedIn() bool {
	_, ok := s.Token()
	return ok
}

// RequireBaby returns the active baby or an error when none is selected
func (s *Store) RequireBaby() (*models.Baby, error) {
	if baby := s.ActiveBaby(); baby != nil {
		return baby, nil
	}
	return nil, errors.New("no baby selected")
}
