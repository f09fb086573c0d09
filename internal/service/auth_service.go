package service

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/propoffice/Property-Office-Backend/internal/errors"
	"github.com/propoffice/Property-Office-Backend/internal/model"
	"github.com/propoffice/Property-Office-Backend/internal/repository"
)

// AuthService handles login, registration and session tokens. Sessions
// are fernet tokens carrying the caller identity; they are stateless on
// the server side, so the service works unchanged behind any number of
// worker processes.
type AuthService struct {
	userRepo   *repository.UserRepository
	key        *fernet.Key
	sessionTTL time.Duration
}

// NewAuthService creates a new AuthService. keyString is a base64 fernet
// key; when empty, a fresh key is generated and existing sessions stop
// verifying after a restart.
func NewAuthService(userRepo *repository.UserRepository, keyString string, sessionTTL time.Duration) (*AuthService, error) {
	var key *fernet.Key
	if keyString == "" {
		key = new(fernet.Key)
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
		log.Println("SESSION_KEY not set, generated ephemeral key; sessions will not survive restarts")
	} else {
		var err error
		key, err = fernet.DecodeKey(keyString)
		if err != nil {
			return nil, fmt.Errorf("failed to decode session key: %w", err)
		}
	}

	return &AuthService{
		userRepo:   userRepo,
		key:        key,
		sessionTTL: sessionTTL,
	}, nil
}

// SessionTTL returns the configured session lifetime.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Login verifies a login/password pair and returns the user together
// with a session token. Wrong login and wrong password produce the same
// error so the endpoint does not leak which logins exist.
func (s *AuthService) Login(login, password string) (model.User, string, error) {
	user, err := s.userRepo.GetUserOnLogin(login)
	if err == apperrors.ErrUserNotFound {
		return model.User{}, "", apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return model.User{}, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.issueToken(model.Caller{ID: user.ID, Login: user.Login, Role: user.Role})
	if err != nil {
		return model.User{}, "", err
	}

	return user, token, nil
}

// Register creates a new owner-role user. Staff roles are assigned
// through administration, never through self-registration.
func (s *AuthService) Register(login, password, firstName, lastName, phone string) (model.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" || firstName == "" || lastName == "" {
		return model.User{}, apperrors.ErrMissingRequiredField
	}

	if _, err := s.userRepo.GetUserOnLogin(login); err == nil {
		return model.User{}, apperrors.ErrDuplicateEntry
	} else if err != apperrors.ErrUserNotFound {
		return model.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New().String(),
		Login:        login,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		Role:         model.RoleOwner,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(userID string) (model.User, error) {
	return s.userRepo.GetUserOnID(userID)
}

// ListUsers retrieves users, optionally restricted to one role.
func (s *AuthService) ListUsers(role model.Role) ([]model.User, error) {
	return s.userRepo.GetUsers(role)
}

// VerifyToken decodes a session token into the caller identity. Expired
// or tampered tokens yield ErrInvalidCredentials.
func (s *AuthService) VerifyToken(token string) (model.Caller, error) {
	payload := fernet.VerifyAndDecrypt([]byte(token), s.sessionTTL, []*fernet.Key{s.key})
	if payload == nil {
		return model.Caller{}, apperrors.ErrInvalidCredentials
	}

	var caller model.Caller
	if err := json.Unmarshal(payload, &caller); err != nil {
		return model.Caller{}, apperrors.ErrInvalidCredentials
	}

	return caller, nil
}

func (s *AuthService) issueToken(caller model.Caller) (string, error) {
	payload, err := json.Marshal(caller)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session payload: %w", err)
	}

	token, err := fernet.EncryptAndSign(payload, s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return string(token), nil
}
