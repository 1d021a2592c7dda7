package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"pizzeria/internal/models"
	"pizzeria/internal/storage"
	"pizzeria/internal/token"
)

const (
	usersCollection = "users"
	cartsCollection = "carts"
)

// UserService owns the user account lifecycle. Email is the record id
// and immutable after signup.
type UserService struct {
	store *storage.Store
	auth  *token.Authority
}

// NewUserService wires the service to its store and token authority.
func NewUserService(store *storage.Store, auth *token.Authority) *UserService {
	return &UserService{store: store, auth: auth}
}

// CreateUserInput is the signup payload. All fields are required.
type CreateUserInput struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	StreetAddress string
}

// UpdateUserInput is a partial update; nil fields are left untouched.
// Email selects the record and never changes.
type UpdateUserInput struct {
	Email         string
	FirstName     *string
	LastName      *string
	Password      *string
	StreetAddress *string
}

// Create registers a new user. The store's exclusive create is what
// makes the email-uniqueness check race-free.
func (s *UserService) Create(input CreateUserInput) (models.User, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return models.User{}, err
	}
	firstName, err := requireField("firstName", input.FirstName)
	if err != nil {
		return models.User{}, err
	}
	lastName, err := requireField("lastName", input.LastName)
	if err != nil {
		return models.User{}, err
	}
	password, err := requireField("password", input.Password)
	if err != nil {
		return models.User{}, err
	}
	streetAddress, err := requireField("streetAddress", input.StreetAddress)
	if err != nil {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		HashedPassword: string(hash),
		StreetAddress:  streetAddress,
		CreatedAt:      time.Now(),
	}
	if err := s.store.Create(usersCollection, email, user); err != nil {
		return models.User{}, err
	}

	log.Println("[USER] [INFO] user created:", email)
	return user.Public(), nil
}

// Get returns the user behind email, hashed password stripped. The
// caller's token must belong to that same email.
func (s *UserService) Get(tokenID, email string) (models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return models.User{}, err
	}
	tokenID, err = normalizeTokenID(tokenID)
	if err != nil {
		return models.User{}, err
	}

	if !s.auth.Verify(tokenID, email) {
		return models.User{}, ErrUnauthorized
	}

	var user models.User
	if err := s.store.Read(usersCollection, email, &user); err != nil {
		return models.User{}, err
	}
	return user.Public(), nil
}

// Update applies the provided fields over a full read-modify-write of
// the record. At least one updatable field must be present.
func (s *UserService) Update(tokenID string, input UpdateUserInput) (models.User, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return models.User{}, err
	}
	tokenID, err = normalizeTokenID(tokenID)
	if err != nil {
		return models.User{}, err
	}
	if input.FirstName == nil && input.LastName == nil && input.Password == nil && input.StreetAddress == nil {
		return models.User{}, invalid("body", "must include at least one field to update")
	}

	if !s.auth.Verify(tokenID, email) {
		return models.User{}, ErrUnauthorized
	}

	var user models.User
	if err := s.store.Read(usersCollection, email, &user); err != nil {
		return models.User{}, err
	}

	if input.FirstName != nil {
		user.FirstName, err = requireField("firstName", *input.FirstName)
		if err != nil {
			return models.User{}, err
		}
	}
	if input.LastName != nil {
		user.LastName, err = requireField("lastName", *input.LastName)
		if err != nil {
			return models.User{}, err
		}
	}
	if input.StreetAddress != nil {
		user.StreetAddress, err = requireField("streetAddress", *input.StreetAddress)
		if err != nil {
			return models.User{}, err
		}
	}
	if input.Password != nil {
		password, err := requireField("password", *input.Password)
		if err != nil {
			return models.User{}, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, fmt.Errorf("hash password: %w", err)
		}
		user.HashedPassword = string(hash)
	}

	if err := s.store.Update(usersCollection, email, user); err != nil {
		return models.User{}, err
	}

	log.Println("[USER] [INFO] user updated:", email)
	return user.Public(), nil
}

// Delete removes the account and, if one is linked, its active cart.
func (s *UserService) Delete(tokenID, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	tokenID, err = normalizeTokenID(tokenID)
	if err != nil {
		return err
	}

	if !s.auth.Verify(tokenID, email) {
		return ErrUnauthorized
	}

	var user models.User
	if err := s.store.Read(usersCollection, email, &user); err != nil {
		return err
	}

	if err := s.store.Delete(usersCollection, email); err != nil {
		return err
	}

	if user.ActiveCart != "" {
		if err := s.store.Delete(cartsCollection, user.ActiveCart); err != nil && !errors.Is(err, storage.ErrNotFound) {
			log.Println("[USER] [ERROR] orphaned cart cleanup failed:", err)
		}
	}

	log.Println("[USER] [INFO] user deleted:", email)
	return nil
}
