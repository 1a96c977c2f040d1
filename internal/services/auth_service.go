package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/metlabs/backend/internal/models"
	"github.com/metlabs/backend/internal/store"
)

// AuthService owns registration, password and Google login, session tokens,
// and user lookups. All user state lives in the injected store; nothing is
// cached between calls.
type AuthService struct {
	users  store.Store[models.User]
	google GoogleVerifier
}

func NewAuthService(users store.Store[models.User], google GoogleVerifier) *AuthService {
	return &AuthService{
		users:  users,
		google: google,
	}
}

// AuthResult is what every successful authentication returns.
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// UpdateUserRequest lists the fields a caller may change. Only walletAddress
// is mutable; id, email and credentials are not client-writable.
type UpdateUserRequest struct {
	WalletAddress *string `json:"walletAddress" validate:"required"`
}

// Register creates a user with the given credentials and issues a session
// token. Email matching is exact; no normalization is applied.
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	var created models.User
	err := s.users.Update(ctx, func(users []models.User) ([]models.User, bool, error) {
		for _, u := range users {
			if u.Email == email {
				return nil, false, ErrDuplicateEmail
			}
		}

		hash, err := hashPassword(password)
		if err != nil {
			return nil, false, fmt.Errorf("hash password: %w", err)
		}

		created = models.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: hash,
		}
		return append(users, created), true, nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[AUTH] User registered - ID: %s, Email: %s", created.ID, created.Email)

	token, err := GenerateToken(created.ID, created.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &AuthResult{Token: token, User: created.Public()}, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password return the same error on purpose.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	users, err := s.users.Load(ctx)
	if err != nil {
		return nil, err
	}

	var user *models.User
	for i := range users {
		if users[i].Email == email {
			user = &users[i]
			break
		}
	}
	if user == nil {
		log.Printf("[AUTH] Login failed - unknown email")
		return nil, ErrInvalidCredentials
	}

	if !verifyPassword(password, user.PasswordHash) {
		log.Printf("[AUTH] Login failed - wrong password for user %s", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	log.Printf("[AUTH] Login successful for user %s", user.ID)
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// LoginWithGoogle verifies a Google ID token and resolves it to a user:
// by googleId first, then by email (linking the account permanently), and
// otherwise by creating a new user with an unusable random password hash.
// The pure-lookup path does not touch the file.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (*AuthResult, error) {
	clientID := viper.GetString("google.client_id")
	if clientID == "" {
		log.Printf("[AUTH] Google login rejected - google.client_id is not configured")
		return nil, ErrServerMisconfigured
	}

	claims, err := s.google.Verify(ctx, idToken, clientID)
	if err != nil {
		log.Printf("[AUTH] Google token verification failed: %v", err)
		return nil, ErrInvalidGoogleToken
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, ErrInvalidGoogleToken
	}

	var user models.User
	err = s.users.Update(ctx, func(users []models.User) ([]models.User, bool, error) {
		for _, u := range users {
			if u.GoogleID != "" && u.GoogleID == claims.Subject {
				user = u
				return users, false, nil
			}
		}

		for i := range users {
			if users[i].Email == claims.Email {
				// Existing password account: link it to the Google identity.
				users[i].GoogleID = claims.Subject
				user = users[i]
				log.Printf("[AUTH] Linked Google identity to existing user %s", user.ID)
				return users, true, nil
			}
		}

		// This account will only ever log in through Google, so fill the
		// password slot with a hash of random data.
		hash, err := hashPassword(uuid.NewString())
		if err != nil {
			return nil, false, fmt.Errorf("hash placeholder password: %w", err)
		}

		user = models.User{
			ID:           uuid.NewString(),
			Email:        claims.Email,
			PasswordHash: hash,
			GoogleID:     claims.Subject,
		}
		log.Printf("[AUTH] Created user %s from Google identity", user.ID)
		return append(users, user), true, nil
	})
	if err != nil {
		return nil, err
	}

	token, err := GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &AuthResult{Token: token, User: user.Public()}, nil
}

// ListUsers returns the public projection of every user.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.users.Load(ctx)
	if err != nil {
		return nil, err
	}

	public := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	return public, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id string) (*models.PublicUser, error) {
	users, err := s.users.Load(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.ID == id {
			public := u.Public()
			return &public, nil
		}
	}
	return nil, ErrNotFound
}

// UpdateUser applies the allow-listed fields to the user with the given ID.
func (s *AuthService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*models.PublicUser, error) {
	var updated models.User
	err := s.users.Update(ctx, func(users []models.User) ([]models.User, bool, error) {
		for i := range users {
			if users[i].ID != id {
				continue
			}
			if req.WalletAddress != nil {
				users[i].WalletAddress = *req.WalletAddress
			}
			updated = users[i]
			return users, true, nil
		}
		return nil, false, ErrNotFound
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[AUTH] Updated user %s", updated.ID)
	public := updated.Public()
	return &public, nil
}
