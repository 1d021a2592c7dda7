package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"pizzeria/internal/models"
	"pizzeria/internal/storage"
)

var (
	// ErrInvalidCredentials means the email/password pair did not match
	// a stored user.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrExpired means the token exists but is past its expiry.
	ErrExpired = errors.New("token expired")
	// ErrNotFound means no token record exists for the id.
	ErrNotFound = errors.New("token not found")
)

const (
	// IDLength is the exact length of every token id.
	IDLength = 20

	idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

	usersCollection  = "users"
	tokensCollection = "tokens"
)

// Authority owns the session-token lifecycle: issue on login, renew,
// revoke on logout, and the ownership check every protected operation
// runs through.
type Authority struct {
	store *storage.Store
	ttl   time.Duration
	now   func() time.Time
}

// New returns an authority persisting tokens through store, each valid
// for ttl from issue or renewal.
func New(store *storage.Store, ttl time.Duration) *Authority {
	return &Authority{store: store, ttl: ttl, now: time.Now}
}

// WithClock overrides the time source. Tests only.
func (a *Authority) WithClock(now func() time.Time) *Authority {
	a.now = now
	return a
}

// Issue verifies the password against the stored user hash and, on
// match, persists and returns a fresh token. Id collisions are not
// checked up front; the store's exclusive create would surface one as
// an error rather than an overwrite.
func (a *Authority) Issue(email, password string) (models.Token, error) {
	var user models.User
	if err := a.store.Read(usersCollection, email, &user); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Token{}, ErrInvalidCredentials
		}
		return models.Token{}, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return models.Token{}, ErrInvalidCredentials
	}

	id, err := randomID(IDLength)
	if err != nil {
		return models.Token{}, fmt.Errorf("generate token id: %w", err)
	}

	tok := models.Token{
		ID:      id,
		Email:   email,
		Expires: a.now().Add(a.ttl),
	}
	if err := a.store.Create(tokensCollection, tok.ID, tok); err != nil {
		return models.Token{}, fmt.Errorf("persist token: %w", err)
	}
	return tok, nil
}

// Get returns the token record for id.
func (a *Authority) Get(id string) (models.Token, error) {
	var tok models.Token
	if err := a.store.Read(tokensCollection, id, &tok); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Token{}, ErrNotFound
		}
		return models.Token{}, fmt.Errorf("read token: %w", err)
	}
	return tok, nil
}

// Renew resets the expiry to now+TTL. An absolute reset, not additive.
// Renewing an expired token fails with ErrExpired and leaves the stored
// expiry untouched.
func (a *Authority) Renew(id string) error {
	tok, err := a.Get(id)
	if err != nil {
		return err
	}
	if tok.ExpiredAt(a.now()) {
		return ErrExpired
	}

	tok.Expires = a.now().Add(a.ttl)
	if err := a.store.Update(tokensCollection, id, tok); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update token: %w", err)
	}
	return nil
}

// Revoke deletes the token record.
func (a *Authority) Revoke(id string) error {
	if err := a.store.Delete(tokensCollection, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Verify is the authorization gate: true iff a token with the id
// exists, belongs to email, and has not expired. It is a pure
// predicate — absence, expiry, and owner mismatch all read as plain
// false, which callers must treat as unauthorized, not as a fault.
func (a *Authority) Verify(id, email string) bool {
	tok, err := a.Get(id)
	if err != nil {
		return false
	}
	return tok.Email == email && !tok.ExpiredAt(a.now())
}

func randomID(length int) (string, error) {
	max := big.NewInt(int64(len(idCharset)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = idCharset[n.Int64()]
	}
	return string(buf), nil
}

// RandomID exposes the token-id generator for callers that need ids in
// the same format, such as cart and order creation.
func RandomID() (string, error) {
	return randomID(IDLength)
}
