// Package console is the seller's terminal: it renders the simulation,
// answers the checkout prompts, and accepts operator commands. One dispatch
// loop owns the input stream, so a purchase prompt and the command loop never
// compete for the same line.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	catalogports "github.com/FrankoBuyern/Proekt2/internal/domains/catalog/ports"
	checkouttypes "github.com/FrankoBuyern/Proekt2/internal/domains/checkout/application/types"
	checkoutdomain "github.com/FrankoBuyern/Proekt2/internal/domains/checkout/domain"
	checkoutports "github.com/FrankoBuyern/Proekt2/internal/domains/checkout/ports"
	customersdomain "github.com/FrankoBuyern/Proekt2/internal/domains/customers/domain"
	inventorydomain "github.com/FrankoBuyern/Proekt2/internal/domains/inventory/domain"
)

var _ checkoutports.SellerPrompt = (*Console)(nil)

// ANSI color codes (may not render on some terminals).
const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiCyan   = "\x1b[36m"
)

// Console wires the seller's terminal to the shop. It implements the
// checkout SellerPrompt port and runs the operator command loop.
type Console struct {
	out      io.Writer
	in       io.Reader
	colors   bool
	logger   *slog.Logger
	ledger   *inventorydomain.Ledger
	catalog  catalogports.Catalog
	register *checkoutdomain.Register

	requests chan chan string
	closed   chan struct{}
	quit     func()
}

// Option configures a Console.
type Option func(*Console)

// WithColors toggles ANSI colors in the output.
func WithColors(enabled bool) Option {
	return func(c *Console) { c.colors = enabled }
}

// WithLogger injects a slog logger for operator command errors.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Console) { c.logger = logger }
}

// New builds a console over the given streams. quit is invoked when the
// operator types exit.
func New(in io.Reader, out io.Writer, ledger *inventorydomain.Ledger, catalog catalogports.Catalog, register *checkoutdomain.Register, quit func(), opts ...Option) *Console {
	c := &Console{
		out:      out,
		in:       in,
		colors:   true,
		logger:   slog.Default(),
		ledger:   ledger,
		catalog:  catalog,
		register: register,
		requests: make(chan chan string),
		closed:   make(chan struct{}),
		quit:     quit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Run reads the input stream until it ends or ctx is canceled. Lines are
// routed to a waiting prompt when one is pending, otherwise treated as
// operator commands.
func (c *Console) Run(ctx context.Context) {
	defer close(c.closed)
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case responder := <-c.requests:
			responder <- line
		default:
			c.handleCommand(line)
		}
	}
}

// ConfirmPayment implements the seller confirmation prompt. A closed input
// stream declines.
func (c *Console) ConfirmPayment(ctx context.Context, payment checkouttypes.PaymentRequest) bool {
	c.printf("%sTotal: %s%s\n", c.color(ansiCyan), payment.Total.StringFixed(2), c.color(ansiReset))
	return c.askYesNo(ctx, "Confirm payment at register? (y/n): ")
}

// RestockAmount asks how many units to add for a shortage; zero declines.
func (c *Console) RestockAmount(ctx context.Context, shortage checkouttypes.Shortage) int {
	c.printf("%s Not enough %s in stock (have %d, need %d)%s\n",
		c.color(ansiRed), shortage.Product.Name, shortage.Have, shortage.Need, c.color(ansiReset))
	if !c.askYesNo(ctx, "Restock now? (y/n): ") {
		return 0
	}
	return c.askInt(ctx, "Enter amount to add (>0): ")
}

// ShowWelcome renders the opening banner, the catalog, and the warehouse.
func (c *Console) ShowWelcome(interval time.Duration) {
	c.banner("STORE INITIALIZED", ansiCyan)
	c.printf("Catalog:\n")
	for _, p := range c.catalog.List() {
		c.printf("  %d: %s - %s\n", p.ID, p.Name, p.Price.StringFixed(2))
	}
	c.printf("\nWarehouse: %s\n", formatSnapshot(c.ledger.Snapshot()))
	c.printf("Interval between customers: %s\n", interval)
	c.printf("Type 'help' and press Enter for commands.\n\n")
}

// ShowFinal renders the closing banner with the end-of-run totals.
func (c *Console) ShowFinal() {
	c.banner("GAME ENDED", ansiRed)
	c.printf("Final warehouse: %s\n", formatSnapshot(c.ledger.Snapshot()))
	c.printf("Cash in register: %s\n", c.register.Total().StringFixed(2))
}

// AnnounceArrival renders an incoming customer and their wishlist.
func (c *Console) AnnounceArrival(customer customersdomain.Customer, desired []checkouttypes.DesiredItem) {
	c.banner("CUSTOMER ARRIVED", ansiYellow)
	c.printf("ID=%d Name=%s Age=%d Type=%s Cash=%s\n",
		customer.ID, customer.Name, customer.Age, customer.Type, customer.Cash.StringFixed(2))
	c.printf("Wants:\n")
	for _, item := range desired {
		name := fmt.Sprintf("id:%d", item.ProductID)
		if p, ok := c.catalog.FindProduct(item.ProductID); ok {
			name = p.Name
		}
		c.printf("  %s x%d\n", name, item.Quantity)
	}
}

// RenderResult reports the outcome of one purchase transaction.
func (c *Console) RenderResult(result *checkouttypes.CheckoutResult) {
	switch result.Outcome {
	case checkouttypes.OutcomeCommitted:
		c.printf("%sPayment successful. Customer leaves.%s\n", c.color(ansiGreen), c.color(ansiReset))
		c.printf("Seller's register now: %s\n", result.RegisterTotal.StringFixed(2))
	case checkouttypes.OutcomeDeclined:
		c.printf("Payment declined by seller. Items returned to stock.\n")
	case checkouttypes.OutcomeInsufficientFunds:
		c.printf("%sCustomer has insufficient funds. Transaction rolled back.%s\n", c.color(ansiRed), c.color(ansiReset))
		c.printf("Items returned to stock.\n")
	case checkouttypes.OutcomeEmpty:
		c.printf("Basket empty, customer leaves.\n")
	}
	for _, lost := range result.LostUnits {
		c.printf("%s WARNING: %d units of product %d could not be returned (warehouse full)%s\n",
			c.color(ansiRed), lost.Quantity, lost.ProductID, c.color(ansiReset))
	}
}

// banner prints a colored section header.
func (c *Console) banner(title, color string) {
	bar := strings.Repeat("=", 40)
	c.printf("%s%s\n= %s\n%s%s\n", c.color(color), bar, title, bar, c.color(ansiReset))
}

// ShowStatus prints the warehouse snapshot and register total.
func (c *Console) ShowStatus() {
	snap := c.ledger.Snapshot()
	c.printf("%sWarehouse:%s %s\n", c.color(ansiYellow), c.color(ansiReset), formatSnapshot(snap))
	c.printf("%sRegister:%s %s\n", c.color(ansiYellow), c.color(ansiReset), c.register.Total().StringFixed(2))
}

// ShowProducts lists the catalog.
func (c *Console) ShowProducts() {
	for _, p := range c.catalog.List() {
		line := fmt.Sprintf("  %d: %s [%s] %s", p.ID, p.Name, p.Category, p.Price.StringFixed(2))
		if p.ExpireDate != nil {
			line += " expires " + p.ExpireDate.Format("2006-01-02")
		}
		c.printf("%s\n", line)
	}
}

func (c *Console) handleCommand(line string) {
	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case "help":
		c.printHelp()
	case "status":
		c.ShowStatus()
	case "products":
		c.ShowProducts()
	case "restock":
		c.handleRestock(parts)
	case "exit":
		if c.quit != nil {
			c.quit()
		}
	default:
		c.printf("Unknown command. Type 'help'.\n")
	}
}

func (c *Console) handleRestock(parts []string) {
	if len(parts) < 3 {
		c.printf("Usage: restock <productId> <amount>\n")
		return
	}
	productID, err1 := strconv.ParseInt(parts[1], 10, 64)
	amount, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		c.printf("Number format error\n")
		return
	}
	if amount <= 0 {
		c.printf("Amount must be > 0\n")
		return
	}
	if _, ok := c.catalog.FindProduct(productID); !ok {
		c.printf("Product id=%d not found\n", productID)
		return
	}
	if err := c.ledger.Restock(productID, amount); err != nil {
		c.printf("%sRestock refused: %v%s\n", c.color(ansiRed), err, c.color(ansiReset))
		c.logger.Warn("operator restock refused",
			slog.Int64("product_id", productID),
			slog.Int("amount", amount),
			slog.String("error", err.Error()),
		)
		return
	}
	c.printf("Restocked productId=%d by %d\n", productID, amount)
}

func (c *Console) printHelp() {
	c.banner("HELP", ansiGreen)
	c.printf(" help              - show this help\n")
	c.printf(" status            - show warehouse + register\n")
	c.printf(" products          - list products\n")
	c.printf(" restock id amt    - restock product by amount\n")
	c.printf(" exit              - exit game\n\n")
}

// readLine blocks until the dispatch loop hands over the next input line.
// Returns false when the input stream is closed or the context ends.
func (c *Console) readLine(ctx context.Context) (string, bool) {
	responder := make(chan string, 1)
	select {
	case c.requests <- responder:
	case <-c.closed:
		return "", false
	case <-ctx.Done():
		return "", false
	}
	select {
	case line := <-responder:
		return line, true
	case <-c.closed:
		return "", false
	case <-ctx.Done():
		return "", false
	}
}

func (c *Console) askYesNo(ctx context.Context, prompt string) bool {
	for {
		c.printf("%s%s%s", c.color(ansiBlue), prompt, c.color(ansiReset))
		line, ok := c.readLine(ctx)
		if !ok {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		c.printf("Please input y or n.\n")
	}
}

func (c *Console) askInt(ctx context.Context, prompt string) int {
	for {
		c.printf("%s%s%s", c.color(ansiBlue), prompt, c.color(ansiReset))
		line, ok := c.readLine(ctx)
		if !ok {
			return 0
		}
		value, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			return value
		}
		c.printf("Invalid number, try again.\n")
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) color(code string) string {
	if !c.colors {
		return ""
	}
	return code
}

func formatSnapshot(snap inventorydomain.Snapshot) string {
	ids := make([]int64, 0, len(snap.Stock))
	for id := range snap.Stock {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var b strings.Builder
	fmt.Fprintf(&b, "capacity=%d used=%d free=%d stock{", snap.Capacity, snap.Size, snap.FreeSpace)
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d:%d", id, snap.Stock[id])
	}
	b.WriteString("}")
	return b.String()
}
