package models

// Cart holds a user's pending line items as parallel arrays: Amounts[i]
// is the quantity of menu item Pizzas[i]. len(Pizzas) == len(Amounts)
// always.
type Cart struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Pizzas  []int  `json:"pizzas"`
	Amounts []int  `json:"amounts"`
}

// Consistent reports whether the parallel arrays line up.
func (c Cart) Consistent() bool {
	return len(c.Pizzas) == len(c.Amounts)
}
