package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pizzeria/internal/gateway"
	"pizzeria/internal/menu"
	"pizzeria/internal/storage"
	"pizzeria/internal/token"
)

const (
	alicePassword = "correct-horse"
	bobPassword   = "battery-staple"
)

var (
	_ gateway.Payment = (*fakePayment)(nil)
	_ gateway.Email   = (*fakeEmail)(nil)
)

// fakePayment records charges and can be told to decline.
type fakePayment struct {
	charges []fakeCharge
	err     error
}

type fakeCharge struct {
	Source      string
	AmountCents int
	Description string
}

func (f *fakePayment) Charge(_ context.Context, source string, amountCents int, description string) error {
	if f.err != nil {
		return f.err
	}
	f.charges = append(f.charges, fakeCharge{Source: source, AmountCents: amountCents, Description: description})
	return nil
}

// fakeEmail records receipts and can be told to fail.
type fakeEmail struct {
	receipts []fakeReceipt
	err      error
}

type fakeReceipt struct {
	To      string
	Subject string
	Body    string
}

func (f *fakeEmail) SendReceipt(_ context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.receipts = append(f.receipts, fakeReceipt{To: to, Subject: subject, Body: body})
	return nil
}

type fixture struct {
	store   *storage.Store
	auth    *token.Authority
	catalog *menu.Catalog
	users   *UserService
	carts   *CartService
	orders  *OrderService
	payment *fakePayment
	email   *fakeEmail
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	auth := token.New(store, time.Hour)
	catalog := menu.NewCatalog(
		menu.Item{ID: 0, Name: "Margherita", Price: 899},
		menu.Item{ID: 1, Name: "Pepperoni", Price: 1099},
		menu.Item{ID: 2, Name: "Hawaii", Price: 999},
	)
	payment := &fakePayment{}
	email := &fakeEmail{}

	return &fixture{
		store:   store,
		auth:    auth,
		catalog: catalog,
		users:   NewUserService(store, auth),
		carts:   NewCartService(store, auth, catalog),
		orders:  NewOrderService(store, auth, catalog, payment, email),
		payment: payment,
		email:   email,
	}
}

// signup creates a user and logs them in, returning the token id.
func (f *fixture) signup(t *testing.T, email, password string) string {
	t.Helper()

	_, err := f.users.Create(CreateUserInput{
		FirstName:     "Test",
		LastName:      "User",
		Email:         email,
		Password:      password,
		StreetAddress: "1 Main St",
	})
	require.NoError(t, err)

	tok, err := f.auth.Issue(email, password)
	require.NoError(t, err)
	return tok.ID
}

func strPtr(s string) *string { return &s }

func assertValidation(t *testing.T, err error, field string) {
	t.Helper()
	var v ValidationError
	require.True(t, errors.As(err, &v), "expected ValidationError, got %v", err)
	require.Equal(t, field, v.Field)
}
