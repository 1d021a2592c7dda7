package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"pizzeria/internal/gateway"
	"pizzeria/internal/menu"
	"pizzeria/internal/models"
	"pizzeria/internal/storage"
	"pizzeria/internal/token"
)

const ordersCollection = "orders"

// OrderService turns an active cart into an immutable order. The
// checkout ordering is a hard contract: charge, then persist the
// order, then delete the cart, then send the receipt. Nothing is
// persisted if the charge fails, and the cart is only deleted once the
// order record is durable.
type OrderService struct {
	store   *storage.Store
	auth    *token.Authority
	catalog *menu.Catalog
	payment gateway.Payment
	email   gateway.Email
	now     func() time.Time
}

// NewOrderService wires the service to its collaborators.
func NewOrderService(store *storage.Store, auth *token.Authority, catalog *menu.Catalog, payment gateway.Payment, email gateway.Email) *OrderService {
	return &OrderService{
		store:   store,
		auth:    auth,
		catalog: catalog,
		payment: payment,
		email:   email,
		now:     time.Now,
	}
}

// WithClock overrides the time source. Tests only.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

// Place runs checkout for the user's active cart, charging the given
// payment source. A failed receipt mail does not fail the checkout;
// the order is already durable at that point.
func (s *OrderService) Place(ctx context.Context, tokenID, email, source string) (models.Order, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return models.Order{}, err
	}
	tokenID, err = normalizeTokenID(tokenID)
	if err != nil {
		return models.Order{}, err
	}
	source, err = requireField("source", source)
	if err != nil {
		return models.Order{}, err
	}

	if !s.auth.Verify(tokenID, email) {
		return models.Order{}, ErrUnauthorized
	}

	var user models.User
	if err := s.store.Read(usersCollection, email, &user); err != nil {
		return models.Order{}, err
	}
	if user.ActiveCart == "" {
		return models.Order{}, storage.ErrNotFound
	}

	var cart models.Cart
	if err := s.store.Read(cartsCollection, user.ActiveCart, &cart); err != nil {
		return models.Order{}, err
	}
	if !cart.Consistent() {
		return models.Order{}, fmt.Errorf("cart %s is corrupt: %d pizzas vs %d amounts", cart.ID, len(cart.Pizzas), len(cart.Amounts))
	}
	if len(cart.Pizzas) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	total, err := s.catalog.Total(cart.Pizzas, cart.Amounts)
	if err != nil {
		return models.Order{}, fmt.Errorf("price cart %s: %w", cart.ID, err)
	}

	orderID, err := token.RandomID()
	if err != nil {
		return models.Order{}, fmt.Errorf("generate order id: %w", err)
	}

	if err := s.payment.Charge(ctx, source, total, "pizzeria order "+orderID); err != nil {
		log.Println("[ORDER] [ERROR] charge failed:", err)
		return models.Order{}, err
	}

	order := models.Order{
		ID:        orderID,
		Email:     email,
		Payment:   total,
		Pizzas:    cart.Pizzas,
		Amounts:   cart.Amounts,
		CreatedAt: s.now(),
	}
	if err := s.store.Create(ordersCollection, order.ID, order); err != nil {
		// Charged but not recorded; this needs an operator, not a retry.
		log.Println("[ORDER] [ERROR] order persist failed after charge:", err)
		return models.Order{}, err
	}

	if err := s.store.Delete(cartsCollection, cart.ID); err != nil {
		log.Println("[ORDER] [ERROR] cart cleanup failed:", err)
	}
	user.ActiveCart = ""
	if err := s.store.Update(usersCollection, email, user); err != nil {
		log.Println("[ORDER] [ERROR] active cart unlink failed:", err)
	}

	if err := s.email.SendReceipt(ctx, email, "Your pizzeria receipt", s.receiptBody(order)); err != nil {
		log.Println("[ORDER] [ERROR] receipt mail failed:", err)
	}

	log.Println("[ORDER] [INFO] order placed:", order.ID, "for", email)
	return order, nil
}

// Get returns a single order; the token must belong to the order's
// owner.
func (s *OrderService) Get(tokenID, orderID string) (models.Order, error) {
	orderID, err := normalizeRecordID("id", orderID)
	if err != nil {
		return models.Order{}, err
	}
	tokenID, err = normalizeTokenID(tokenID)
	if err != nil {
		return models.Order{}, err
	}

	var order models.Order
	if err := s.store.Read(ordersCollection, orderID, &order); err != nil {
		return models.Order{}, err
	}

	if !s.auth.Verify(tokenID, order.Email) {
		return models.Order{}, ErrUnauthorized
	}
	return order, nil
}

// History lists the user's orders, newest first, sliced by page and
// limit (both 1-based and positive).
func (s *OrderService) History(tokenID, email string, page, limit int) ([]models.Order, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	tokenID, err = normalizeTokenID(tokenID)
	if err != nil {
		return nil, err
	}

	if !s.auth.Verify(tokenID, email) {
		return nil, ErrUnauthorized
	}

	orders, err := s.allOrders()
	if err != nil {
		return nil, err
	}

	own := orders[:0]
	for _, order := range orders {
		if order.Email == email {
			own = append(own, order)
		}
	}

	start := (page - 1) * limit
	if start >= len(own) {
		return []models.Order{}, nil
	}
	end := start + limit
	if end > len(own) {
		end = len(own)
	}
	return own[start:end], nil
}

// Recent returns every order created at or after since, newest first.
// Operator console use; no token gate.
func (s *OrderService) Recent(since time.Time) ([]models.Order, error) {
	orders, err := s.allOrders()
	if err != nil {
		return nil, err
	}

	recent := orders[:0]
	for _, order := range orders {
		if !order.CreatedAt.Before(since) {
			recent = append(recent, order)
		}
	}
	return recent, nil
}

func (s *OrderService) allOrders() ([]models.Order, error) {
	ids, err := s.store.List(ordersCollection)
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		var order models.Order
		if err := s.store.Read(ordersCollection, id, &order); err != nil {
			log.Println("[ORDER] [ERROR] skipping unreadable order:", id, err)
			continue
		}
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (s *OrderService) receiptBody(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s\n\n", order.ID)
	for i, id := range order.Pizzas {
		name := fmt.Sprintf("item %d", id)
		if item, ok := s.catalog.Lookup(id); ok {
			name = item.Name
		}
		fmt.Fprintf(&b, "%dx %s\n", order.Amounts[i], name)
	}
	fmt.Fprintf(&b, "\nTotal: $%d.%02d\n", order.Payment/100, order.Payment%100)
	return b.String()
}
