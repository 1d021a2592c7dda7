package console

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"pizzeria/internal/menu"
	"pizzeria/internal/models"
	"pizzeria/internal/services"
	"pizzeria/internal/storage"
)

// errExit signals a clean shutdown of the input loop.
var errExit = errors.New("exit")

// recentWindow bounds the "recent"/"new" operator queries.
const recentWindow = 24 * time.Hour

// Console is the interactive operator shell: a readline loop over a
// handful of read-only queries against the live datastore.
type Console struct {
	store   *storage.Store
	orders  *services.OrderService
	catalog *menu.Catalog
	now     func() time.Time
}

// New builds a console over the same store and services the HTTP
// surface uses.
func New(store *storage.Store, orders *services.OrderService, catalog *menu.Catalog) *Console {
	return &Console{store: store, orders: orders, catalog: catalog, now: time.Now}
}

// Run blocks on stdin until the operator exits or input closes.
func (con *Console) Run() error {
	rl, err := readline.New(">> ")
	if err != nil {
		return fmt.Errorf("open console: %w", err)
	}
	defer rl.Close()

	log.Println("[CLI] [INFO] console is running")

	for {
		line, err := rl.Readline()
		if err != nil {
			// Ctrl-D or closed stdin ends the loop.
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return nil
			}
			return err
		}

		if err := con.Dispatch(rl.Config.Stdout, line); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			fmt.Fprintln(rl.Config.Stdout, "error:", err)
		}
	}
}

// Dispatch routes one input line to its responder. Unknown input gets
// a nudge, not an error.
func (con *Console) Dispatch(out io.Writer, line string) error {
	input := strings.TrimSpace(line)
	if input == "" {
		return nil
	}

	lower := strings.ToLower(input)
	switch {
	case lower == "exit":
		return errExit
	case lower == "help" || lower == "man":
		con.help(out)
	case lower == "menu":
		con.menu(out)
	case lower == "list recent orders":
		return con.listRecentOrders(out)
	case strings.HasPrefix(lower, "more order info"):
		return con.orderInfo(out, argument(input))
	case lower == "list new users":
		return con.listNewUsers(out)
	case strings.HasPrefix(lower, "more user info"):
		return con.userInfo(out, argument(input))
	default:
		fmt.Fprintln(out, "Sorry, try again. Type 'help' for the command list.")
	}
	return nil
}

// argument pulls the --{value} suffix off commands like
// "more order info --abc123".
func argument(input string) string {
	i := strings.Index(input, "--")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(input[i+2:])
}

func (con *Console) help(out io.Writer) {
	fmt.Fprint(out, `Available commands:

  help / man                 show this help
  menu                       show the current menu
  list recent orders         orders placed in the last 24 hours
  more order info --{id}     details of a specific order
  list new users             users signed up in the last 24 hours
  more user info --{email}   details of a specific user
  exit                       quit the console
`)
}

func (con *Console) menu(out io.Writer) {
	for _, item := range con.catalog.Items() {
		fmt.Fprintf(out, "%2d  %-20s $%d.%02d\n", item.ID, item.Name, item.Price/100, item.Price%100)
	}
}

func (con *Console) listRecentOrders(out io.Writer) error {
	orders, err := con.orders.Recent(con.now().Add(-recentWindow))
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(out, "No orders in the last 24 hours.")
		return nil
	}
	for _, order := range orders {
		fmt.Fprintf(out, "%s  %s  $%d.%02d  %s\n",
			order.ID, order.CreatedAt.Format(time.RFC3339), order.Payment/100, order.Payment%100, order.Email)
	}
	return nil
}

func (con *Console) orderInfo(out io.Writer, id string) error {
	if id == "" {
		fmt.Fprintln(out, "Usage: more order info --{orderId}")
		return nil
	}

	var order models.Order
	if err := con.store.Read("orders", id, &order); err != nil {
		return err
	}

	fmt.Fprintf(out, "Order %s\nPlaced: %s\nCustomer: %s\n", order.ID, order.CreatedAt.Format(time.RFC3339), order.Email)
	for i, itemID := range order.Pizzas {
		name := fmt.Sprintf("item %d", itemID)
		if item, ok := con.catalog.Lookup(itemID); ok {
			name = item.Name
		}
		fmt.Fprintf(out, "  %dx %s\n", order.Amounts[i], name)
	}
	fmt.Fprintf(out, "Total: $%d.%02d\n", order.Payment/100, order.Payment%100)
	return nil
}

func (con *Console) listNewUsers(out io.Writer) error {
	emails, err := con.store.List("users")
	if err != nil {
		return err
	}

	cutoff := con.now().Add(-recentWindow)
	count := 0
	for _, email := range emails {
		var user models.User
		if err := con.store.Read("users", email, &user); err != nil {
			log.Println("[CLI] [ERROR] skipping unreadable user:", email, err)
			continue
		}
		if user.CreatedAt.Before(cutoff) {
			continue
		}
		fmt.Fprintf(out, "%s  %s %s  joined %s\n", user.Email, user.FirstName, user.LastName, user.CreatedAt.Format(time.RFC3339))
		count++
	}
	if count == 0 {
		fmt.Fprintln(out, "No signups in the last 24 hours.")
	}
	return nil
}

func (con *Console) userInfo(out io.Writer, email string) error {
	if email == "" {
		fmt.Fprintln(out, "Usage: more user info --{email}")
		return nil
	}

	var user models.User
	if err := con.store.Read("users", strings.ToLower(email), &user); err != nil {
		return err
	}
	user = user.Public()

	fmt.Fprintf(out, "%s %s <%s>\nAddress: %s\n", user.FirstName, user.LastName, user.Email, user.StreetAddress)
	if user.ActiveCart != "" {
		fmt.Fprintf(out, "Active cart: %s\n", user.ActiveCart)
	}
	fmt.Fprintf(out, "Joined: %s\n", user.CreatedAt.Format(time.RFC3339))
	return nil
}
