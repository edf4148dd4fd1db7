package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"yuyingbao/internal/api"
	"yuyingbao/internal/models"
	"yuyingbao/internal/session"
	"yuyingbao/internal/storage"
)

// ErrNotSignedIn is returned when an operation needs a live session
var ErrNotSignedIn = errors.New("not signed in")

// AuthService handles login, session restore and logout
type AuthService struct {
	client  *api.Client
	session *session.Store
	persist *storage.Store
}

// NewAuthService creates a new auth service
func NewAuthService(client *api.Client, sess *session.Store, persist *storage.Store) *AuthService {
	return &AuthService{client: client, session: sess, persist: persist}
}

// DeviceID returns the stable device identifier, creating and
// persisting one on first use. It survives logout.
func DeviceID(persist *storage.Store) (string, error) {
	if id, err := persist.Get(storage.KeyDeviceID); err == nil {
		return id, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return "", err
	}

	id := uuid.NewString()
	if err := persist.Put(storage.KeyDeviceID, id); err != nil {
		return "", fmt.Errorf("failed to persist device id: %w", err)
	}
	return id, nil
}

// Login exchanges a WeChat login code for a session. The profile fields
// are whatever the user consented to share; empty values are allowed.
func (s *AuthService) Login(ctx context.Context, code, nickname, avatarURL string) (*models.User, error) {
	if code == "" {
		return nil, errors.New("login code is required")
	}

	deviceID, err := DeviceID(s.persist)
	if err != nil {
		return nil, err
	}

	result, err := s.client.LoginComplete(ctx, models.LoginRequest{
		Code:      code,
		Nickname:  nickname,
		AvatarURL: avatarURL,
		DeviceID:  deviceID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to complete login: %w", err)
	}

	// Some deployments return the token already prefixed.
	token := strings.TrimPrefix(result.Token, "Bearer ")
	if token == "" {
		return nil, errors.New("login response carried no token")
	}

	if err := s.session.SetToken(token); err != nil {
		return nil, err
	}
	if err := s.session.SetUser(&result.UserInfo); err != nil {
		return nil, err
	}
	return &result.UserInfo, nil
}

// Restore loads the persisted session and drops it when the token has
// already expired, so the first network call never burns on a 401 the
// client could predict.
func (s *AuthService) Restore() bool {
	if !s.session.Restore() {
		return false
	}

	token, _ := s.session.Token()
	if tokenExpired(token, time.Now()) {
		log.Print("stored token expired, clearing session")
		if err := s.session.Clear(); err != nil {
			log.Printf("failed to clear expired session: %v", err)
		}
		return false
	}
	return true
}

// Logout wipes the local session. The backend keeps no session state
// beyond the token, so there is nothing to call remotely.
func (s *AuthService) Logout() error {
	return s.session.Clear()
}

// tokenExpired checks the exp claim without verifying the signature.
// Verification happens server-side; this is only a local pre-check and
// an unparseable token is left for the server to reject.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
