package services

import (
	"fmt"
	"log"

	"pizzeria/internal/menu"
	"pizzeria/internal/models"
	"pizzeria/internal/storage"
	"pizzeria/internal/token"
)

// CartService manages the single active cart each user may hold. The
// cart id lives on the user record as a weak reference.
type CartService struct {
	store   *storage.Store
	auth    *token.Authority
	catalog *menu.Catalog
}

// NewCartService wires the service to its collaborators.
func NewCartService(store *storage.Store, auth *token.Authority, catalog *menu.Catalog) *CartService {
	return &CartService{store: store, auth: auth, catalog: catalog}
}

// CartInput carries the parallel line-item arrays for create and
// update. Amounts[i] belongs to Pizzas[i].
type CartInput struct {
	Email   string
	Pizzas  []int
	Amounts []int
}

// Create opens a new active cart for the user. Fails if one already
// exists; every referenced pizza must be on the menu and the arrays
// must line up.
func (s *CartService) Create(tokenID string, input CartInput) (models.Cart, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return models.Cart{}, err
	}
	tokenID, err = normalizeTokenID(tokenID)
	if err != nil {
		return models.Cart{}, err
	}
	if err := s.validateLines(input.Pizzas, input.Amounts); err != nil {
		return models.Cart{}, err
	}

	if !s.auth.Verify(tokenID, email) {
		return models.Cart{}, ErrUnauthorized
	}

	var user models.User
	if err := s.store.Read(usersCollection, email, &user); err != nil {
		return models.Cart{}, err
	}
	if user.ActiveCart != "" {
		return models.Cart{}, ErrActiveCartExists
	}

	id, err := token.RandomID()
	if err != nil {
		return models.Cart{}, fmt.Errorf("generate cart id: %w", err)
	}

	cart := models.Cart{
		ID:      id,
		Email:   email,
		Pizzas:  input.Pizzas,
		Amounts: input.Amounts,
	}
	if err := s.store.Create(cartsCollection, cart.ID, cart); err != nil {
		return models.Cart{}, err
	}

	user.ActiveCart = cart.ID
	if err := s.store.Update(usersCollection, email, user); err != nil {
		// Unlink the orphan so the user is not stuck cartless-but-blocked.
		s.store.Delete(cartsCollection, cart.ID)
		return models.Cart{}, err
	}

	log.Println("[CART] [INFO] cart created:", cart.ID, "for", email)
	return cart, nil
}

// Get returns the user's active cart, or ErrNotFound if none is open.
func (s *CartService) Get(tokenID, email string) (models.Cart, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return models.Cart{}, err
	}
	tokenID, err = normalizeTokenID(tokenID)
	if err != nil {
		return models.Cart{}, err
	}

	if !s.auth.Verify(tokenID, email) {
		return models.Cart{}, ErrUnauthorized
	}

	return s.activeCart(email)
}

// Update replaces the line items of the active cart wholesale; there
// is no per-line merging.
func (s *CartService) Update(tokenID string, input CartInput) (models.Cart, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return models.Cart{}, err
	}
	tokenID, err = normalizeTokenID(tokenID)
	if err != nil {
		return models.Cart{}, err
	}
	if err := s.validateLines(input.Pizzas, input.Amounts); err != nil {
		return models.Cart{}, err
	}

	if !s.auth.Verify(tokenID, email) {
		return models.Cart{}, ErrUnauthorized
	}

	cart, err := s.activeCart(email)
	if err != nil {
		return models.Cart{}, err
	}

	cart.Pizzas = input.Pizzas
	cart.Amounts = input.Amounts
	if err := s.store.Update(cartsCollection, cart.ID, cart); err != nil {
		return models.Cart{}, err
	}

	log.Println("[CART] [INFO] cart updated:", cart.ID)
	return cart, nil
}

// Delete removes the active cart and clears the user's reference to
// it.
func (s *CartService) Delete(tokenID, email string) error {
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
	if user.ActiveCart == "" {
		return storage.ErrNotFound
	}

	if err := s.store.Delete(cartsCollection, user.ActiveCart); err != nil {
		return err
	}

	cartID := user.ActiveCart
	user.ActiveCart = ""
	if err := s.store.Update(usersCollection, email, user); err != nil {
		return err
	}

	log.Println("[CART] [INFO] cart deleted:", cartID)
	return nil
}

func (s *CartService) activeCart(email string) (models.Cart, error) {
	var user models.User
	if err := s.store.Read(usersCollection, email, &user); err != nil {
		return models.Cart{}, err
	}
	if user.ActiveCart == "" {
		return models.Cart{}, storage.ErrNotFound
	}

	var cart models.Cart
	if err := s.store.Read(cartsCollection, user.ActiveCart, &cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// validateLines rejects mismatched arrays and off-menu items up front.
// A mismatch is an error, never a silent reset to empty.
func (s *CartService) validateLines(pizzas, amounts []int) error {
	if len(pizzas) != len(amounts) {
		return invalid("amounts", "must match pizzas in length")
	}
	for i, id := range pizzas {
		if _, ok := s.catalog.Lookup(id); !ok {
			return invalid("pizzas", fmt.Sprintf("item %d is not on the menu", id))
		}
		if amounts[i] <= 0 {
			return invalid("amounts", "must all be greater than zero")
		}
	}
	return nil
}
