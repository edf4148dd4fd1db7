package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"yuyingbao/internal/api"
	"yuyingbao/internal/config"
	"yuyingbao/internal/models"
	"yuyingbao/internal/session"
	"yuyingbao/internal/validation"
)

// FamilyService handles family membership and the baby roster
type FamilyService struct {
	client     *api.Client
	session    *session.Store
	retryCount int
	retryDelay time.Duration
}

// NewFamilyService creates a new family service
func NewFamilyService(client *api.Client, sess *session.Store, cfg *config.Config) *FamilyService {
	return &FamilyService{
		client:     client,
		session:    sess,
		retryCount: cfg.MemberRetryCount,
		retryDelay: cfg.MemberRetryDelay,
	}
}

// EnsureFamily loads the user's family into the session. When the user
// belongs to several families the first one is used. Returns nil family
// when the user has none yet.
func (s *FamilyService) EnsureFamily(ctx context.Context) (*models.Family, error) {
	families, err := s.client.MyFamilies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load families: %w", err)
	}
	if len(families) == 0 {
		return nil, nil
	}

	family := &families[0]
	if err := s.session.SetFamily(family); err != nil {
		return nil, err
	}
	return family, nil
}

// CreateFamily creates a family and makes it the active one
func (s *FamilyService) CreateFamily(ctx context.Context, name string) (*models.Family, error) {
	if err := validation.ValidateFamilyName(name); err != nil {
		return nil, err
	}

	family, err := s.client.CreateFamily(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}
	if err := s.session.SetFamily(family); err != nil {
		return nil, err
	}
	return family, nil
}

// JoinFamily validates an invite code, joins the family and makes it
// the active one.
func (s *FamilyService) JoinFamily(ctx context.Context, inviteCode string) (*models.Family, error) {
	if err := validation.ValidateInviteCode(inviteCode); err != nil {
		return nil, err
	}
	if _, err := s.client.ValidateInviteCode(ctx, inviteCode); err != nil {
		return nil, fmt.Errorf("invite code rejected: %w", err)
	}

	family, err := s.client.JoinFamily(ctx, inviteCode)
	if err != nil {
		return nil, fmt.Errorf("failed to join family: %w", err)
	}
	if err := s.session.SetFamily(family); err != nil {
		return nil, err
	}
	return family, nil
}

// Members fetches the member list of the active family. Member data
// lags briefly after a join on some deployments, so an empty result is
// retried a bounded number of times before being accepted as truth.
func (s *FamilyService) Members(ctx context.Context) ([]models.FamilyMember, error) {
	family := s.session.Family()
	if family == nil {
		return nil, fmt.Errorf("no active family")
	}

	var members []models.FamilyMember
	var err error
	// One initial attempt plus retryCount retries, 4 calls total by default.
	for attempt := 0; attempt <= s.retryCount; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.retryDelay):
			}
		}

		members, err = s.client.FamilyMembers(ctx, family.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load members: %w", err)
		}
		if len(members) > 0 {
			return members, nil
		}
		log.Printf("member list empty, retry %d/%d", attempt+1, s.retryCount)
	}
	return members, nil
}

// UpdateMemberRole changes a member's role in the active family
func (s *FamilyService) UpdateMemberRole(ctx context.Context, memberID int64, role models.MemberRole) (*models.FamilyMember, error) {
	family := s.session.Family()
	if family == nil {
		return nil, fmt.Errorf("no active family")
	}
	member, err := s.client.UpdateMemberRole(ctx, family.ID, memberID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return member, nil
}

// RefreshRoster reloads the baby roster and reconciles the active baby
// selection against it. A logout during the fetch makes the result
// stale; the epoch check discards it instead of resurrecting identity
// state into the signed-out session.
func (s *FamilyService) RefreshRoster(ctx context.Context) ([]models.Baby, error) {
	family := s.session.Family()
	if family == nil {
		return nil, fmt.Errorf("no active family")
	}

	epoch := s.session.Epoch()
	babies, err := s.client.ListBabies(ctx, family.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load babies: %w", err)
	}

	if s.session.Epoch() != epoch {
		log.Print("session changed during roster refresh, discarding result")
		return nil, ErrNotSignedIn
	}

	if err := s.session.ReconcileRoster(babies); err != nil {
		return nil, err
	}
	return babies, nil
}

// AddBaby registers a baby in the active family and refreshes the roster
func (s *FamilyService) AddBaby(ctx context.Context, baby models.Baby) (*models.Baby, error) {
	if err := validation.ValidateBaby(baby); err != nil {
		return nil, err
	}
	family := s.session.Family()
	if family == nil {
		return nil, fmt.Errorf("no active family")
	}

	created, err := s.client.CreateBaby(ctx, family.ID, baby)
	if err != nil {
		return nil, fmt.Errorf("failed to create baby: %w", err)
	}
	if _, err := s.RefreshRoster(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateBaby updates a baby profile and refreshes the roster
func (s *FamilyService) UpdateBaby(ctx context.Context, baby models.Baby) (*models.Baby, error) {
	if err := validation.ValidateBaby(baby); err != nil {
		return nil, err
	}
	family := s.session.Family()
	if family == nil {
		return nil, fmt.Errorf("no active family")
	}

	updated, err := s.client.UpdateBaby(ctx, family.ID, baby)
	if err != nil {
		return nil, fmt.Errorf("failed to update baby: %w", err)
	}
	if _, err := s.RefreshRoster(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveBaby deletes a baby and refreshes the roster, which clears or
// moves the active selection as needed.
func (s *FamilyService) RemoveBaby(ctx context.Context, babyID int64) error {
	family := s.session.Family()
	if family == nil {
		return fmt.Errorf("no active family")
	}
	if err := s.client.DeleteBaby(ctx, family.ID, babyID); err != nil {
		return fmt.Errorf("failed to delete baby: %w", err)
	}
	_, err := s.RefreshRoster(ctx)
	return err
}

// SelectBaby makes one of the roster babies the active selection
func (s *FamilyService) SelectBaby(ctx context.Context, babyID int64) (*models.Baby, error) {
	family := s.session.Family()
	if family == nil {
		return nil, fmt.Errorf("no active family")
	}
	babies, err := s.client.ListBabies(ctx, family.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load babies: %w", err)
	}
	for i := range babies {
		if babies[i].ID == babyID {
			if err := s.session.SetActiveBaby(&babies[i]); err != nil {
				return nil, err
			}
			return &babies[i], nil
		}
	}
	return nil, fmt.Errorf("baby %d not in family", babyID)
}
