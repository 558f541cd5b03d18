package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	dmn "github.com/mazehub/mazehub-api/domain"
	"github.com/mazehub/mazehub-api/service/i"
)

const tokenLifetime = 24 * time.Hour

// Auth implements registration and both sign-in flows, password and
// guest, on top of the user repository and the tokenizer.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
}

// NewAuthService creates an Auth backed by the given repository and
// tokenizer.
func NewAuthService(userRepo i.UserRepo, tokenizer i.Tokenizer) (*Auth, error) {
	return &Auth{
		userRepo:  userRepo,
		tokenizer: tokenizer,
	}, nil
}

// Register creates a new password-backed user. Username conflicts come
// back from the repository.
func (a *Auth) Register(username, password string) error {
	userConfig := dmn.UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	}

	user, err := dmn.NewUser(userConfig)
	if err != nil {
		return err
	}

	return a.userRepo.Save(user)
}

// SignIn verifies credentials and mints a session token.
func (a *Auth) SignIn(username, password string) (*dmn.User, string, error) {
	user, err := a.userRepo.ByUsername(username)
	if err != nil {
		return nil, "", errors.New("invalid username or password")
	}

	if !user.VerifyPassword(password) {
		return nil, "", errors.New("invalid username or password")
	}

	token, err := a.tokenizer.Generate(claimsFor(user), tokenLifetime)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// SignInGuest mints an anonymous user and signs it straight in. The
// guest is persisted so its mazes stay attributed to the same identity.
func (a *Auth) SignInGuest() (*dmn.User, string, error) {
	user := dmn.NewGuestUser(uuid.New())
	if err := a.userRepo.Save(user); err != nil {
		return nil, "", err
	}

	token, err := a.tokenizer.Generate(claimsFor(user), tokenLifetime)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func claimsFor(user *dmn.User) map[string]interface{} {
	return map[string]interface{}{
		"userID":   user.ID.String(),
		"username": user.Username,
		"guest":    user.Guest,
	}
}
