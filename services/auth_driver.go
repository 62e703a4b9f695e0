package services

import (
	"errors"
	"fmt"
	"os"

	"shelter-grants-api/config"
	"shelter-grants-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned for any login failure, whether the
// account is missing or the password is wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Authenticator verifies login credentials against a configured identity
// backend. The driver is chosen once at startup, so an unsupported driver
// fails the process before it accepts traffic rather than on first login.
type Authenticator interface {
	Name() string
	Authenticate(email, password string) (*models.User, error)
}

// DefaultAuthenticator is the process-wide driver set by InitAuthenticator.
var DefaultAuthenticator Authenticator

// InitAuthenticator selects the auth driver from AUTH_DRIVER. "local" (the
// default) checks bcrypt hashes in the users table; "mock" skips the
// password check for development. Federated drivers are recognized but not
// shipped, so naming one is a startup error.
func InitAuthenticator() error {
	driver := os.Getenv("AUTH_DRIVER")
	if driver == "" {
		driver = "local"
	}

	switch driver {
	case "local":
		DefaultAuthenticator = &localAuthenticator{}
	case "mock":
		DefaultAuthenticator = &mockAuthenticator{}
	case "saml", "entra":
		return fmt.Errorf("auth driver %q is not available in this build", driver)
	default:
		return fmt.Errorf("unknown auth driver %q", driver)
	}

	return nil
}

type localAuthenticator struct{}

func (a *localAuthenticator) Name() string { return "local" }

func (a *localAuthenticator) Authenticate(email, password string) (*models.User, error) {
	user, err := lookupActiveUser(email)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// mockAuthenticator accepts any password for an existing account. Dev only.
type mockAuthenticator struct{}

func (a *mockAuthenticator) Name() string { return "mock" }

func (a *mockAuthenticator) Authenticate(email, _ string) (*models.User, error) {
	return lookupActiveUser(email)
}

func lookupActiveUser(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.Preload("Organization").
		Where("email = ? AND delete_at IS NULL", email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &user, nil
}

// HashPassword hashes a password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
