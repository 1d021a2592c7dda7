package menu

import "testing"

func testCatalog() *Catalog {
	return NewCatalog(
		Item{ID: 0, Name: "Margherita", Price: 899},
		Item{ID: 1, Name: "Pepperoni", Price: 1099},
	)
}

func TestTotalExactCents(t *testing.T) {
	c := testCatalog()

	got, err := c.Total([]int{0, 1}, []int{2, 1})
	if err != nil {
		t.Fatalf("Total returned error: %v", err)
	}
	want := 899*2 + 1099*1
	if got != want {
		t.Fatalf("expected total %d cents, got %d", want, got)
	}
}

func TestTotalUnknownItem(t *testing.T) {
	c := testCatalog()
	if _, err := c.Total([]int{42}, []int{1}); err == nil {
		t.Fatal("expected error for unknown menu item")
	}
}

func TestTotalLengthMismatch(t *testing.T) {
	c := testCatalog()
	if _, err := c.Total([]int{0, 1}, []int{2}); err == nil {
		t.Fatal("expected error for mismatched arrays")
	}
}

func TestTotalNonPositiveAmount(t *testing.T) {
	c := testCatalog()
	for _, amount := range []int{0, -1} {
		if _, err := c.Total([]int{0}, []int{amount}); err == nil {
			t.Fatalf("expected error for amount %d", amount)
		}
	}
}

func TestItemsSortedByID(t *testing.T) {
	items := Default().Items()
	for i := 1; i < len(items); i++ {
		if items[i-1].ID >= items[i].ID {
			t.Fatalf("items not sorted by id: %v", items)
		}
	}
}
