package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria/internal/models"
	"pizzeria/internal/storage"
)

func TestCreateUser(t *testing.T) {
	f := newFixture(t)

	user, err := f.users.Create(CreateUserInput{
		FirstName:     "  Alice ",
		LastName:      "Smith",
		Email:         " Alice@Example.com ",
		Password:      alicePassword,
		StreetAddress: "1 Main St",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email, "email is trimmed and lowercased")
	assert.Equal(t, "Alice", user.FirstName)
	assert.Empty(t, user.HashedPassword, "hash never leaves the service")

	var stored models.User
	require.NoError(t, f.store.Read("users", "alice@example.com", &stored))
	assert.NotEmpty(t, stored.HashedPassword)
	assert.NotEqual(t, alicePassword, stored.HashedPassword, "password is stored hashed")
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "alice@example.com", alicePassword)

	_, err := f.users.Create(CreateUserInput{
		FirstName:     "Other",
		LastName:      "Alice",
		Email:         "alice@example.com",
		Password:      "different",
		StreetAddress: "2 Side St",
	})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestCreateUserValidation(t *testing.T) {
	f := newFixture(t)

	base := CreateUserInput{
		FirstName:     "Alice",
		LastName:      "Smith",
		Email:         "alice@example.com",
		Password:      alicePassword,
		StreetAddress: "1 Main St",
	}

	noAt := base
	noAt.Email = "alice.example.com"
	_, err := f.users.Create(noAt)
	assertValidation(t, err, "email")

	blankFirst := base
	blankFirst.FirstName = "   "
	_, err = f.users.Create(blankFirst)
	assertValidation(t, err, "firstName")

	blankAddress := base
	blankAddress.StreetAddress = ""
	_, err = f.users.Create(blankAddress)
	assertValidation(t, err, "streetAddress")
}

func TestGetUserOwnershipGate(t *testing.T) {
	f := newFixture(t)
	aliceToken := f.signup(t, "alice@example.com", alicePassword)
	f.signup(t, "bob@example.com", bobPassword)

	user, err := f.users.Get(aliceToken, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Empty(t, user.HashedPassword)

	// Alice's token does not open Bob's record.
	_, err = f.users.Get(aliceToken, "bob@example.com")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateUserPartial(t *testing.T) {
	f := newFixture(t)
	aliceToken := f.signup(t, "alice@example.com", alicePassword)

	updated, err := f.users.Update(aliceToken, UpdateUserInput{
		Email:         "alice@example.com",
		StreetAddress: strPtr("99 New Ave"),
	})
	require.NoError(t, err)
	assert.Equal(t, "99 New Ave", updated.StreetAddress)
	assert.Equal(t, "Test", updated.FirstName, "untouched fields survive")

	_, err = f.users.Update(aliceToken, UpdateUserInput{Email: "alice@example.com"})
	assertValidation(t, err, "body")
}

func TestUpdateUserPasswordChangesLogin(t *testing.T) {
	f := newFixture(t)
	aliceToken := f.signup(t, "alice@example.com", alicePassword)

	_, err := f.users.Update(aliceToken, UpdateUserInput{
		Email:    "alice@example.com",
		Password: strPtr("new-secret"),
	})
	require.NoError(t, err)

	_, err = f.auth.Issue("alice@example.com", alicePassword)
	assert.Error(t, err, "old password no longer works")

	_, err = f.auth.Issue("alice@example.com", "new-secret")
	assert.NoError(t, err)
}

func TestDeleteUserRemovesActiveCart(t *testing.T) {
	f := newFixture(t)
	aliceToken := f.signup(t, "alice@example.com", alicePassword)

	cart, err := f.carts.Create(aliceToken, CartInput{
		Email:   "alice@example.com",
		Pizzas:  []int{0},
		Amounts: []int{1},
	})
	require.NoError(t, err)

	require.NoError(t, f.users.Delete(aliceToken, "alice@example.com"))

	var gone models.User
	assert.ErrorIs(t, f.store.Read("users", "alice@example.com", &gone), storage.ErrNotFound)

	var goneCart models.Cart
	assert.ErrorIs(t, f.store.Read("carts", cart.ID, &goneCart), storage.ErrNotFound)
}

func TestDeleteUserRequiresOwnership(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "alice@example.com", alicePassword)
	bobToken := f.signup(t, "bob@example.com", bobPassword)

	err := f.users.Delete(bobToken, "alice@example.com")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
