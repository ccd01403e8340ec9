package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/FrankoBuyern/Proekt2/internal/domains/catalog/adapters/memory"
	checkouttypes "github.com/FrankoBuyern/Proekt2/internal/domains/checkout/application/types"
	checkoutdomain "github.com/FrankoBuyern/Proekt2/internal/domains/checkout/domain"
	inventorydomain "github.com/FrankoBuyern/Proekt2/internal/domains/inventory/domain"
)

// syncBuffer makes the output buffer safe for the dispatch goroutine and the
// test to share.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type consoleFixture struct {
	console *Console
	ledger  *inventorydomain.Ledger
	out     *syncBuffer
	input   *io.PipeWriter
	quit    chan struct{}
}

func newConsoleFixture(t *testing.T) *consoleFixture {
	t.Helper()
	ledger := inventorydomain.NewLedger(50)
	require.NoError(t, ledger.Restock(1, 10))
	catalog := catalogmemory.NewCatalog(catalogmemory.SeedProducts(time.Now()))
	register := checkoutdomain.NewRegister()

	reader, writer := io.Pipe()
	out := &syncBuffer{}
	quit := make(chan struct{})
	c := New(reader, out, ledger, catalog, register, func() { close(quit) }, WithColors(false))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go c.Run(ctx)
	t.Cleanup(func() { _ = writer.Close() })

	return &consoleFixture{console: c, ledger: ledger, out: out, input: writer, quit: quit}
}

func (f *consoleFixture) typeLine(t *testing.T, line string) {
	t.Helper()
	_, err := io.WriteString(f.input, line+"\n")
	require.NoError(t, err)
}

func (f *consoleFixture) waitForOutput(t *testing.T, substr string) {
	t.Helper()
	require.Eventually(t, func() bool {
		return strings.Contains(f.out.String(), substr)
	}, time.Second, 5*time.Millisecond, "expected output to contain %q, got %q", substr, f.out.String())
}

func TestConsole_RestockCommandMutatesLedger(t *testing.T) {
	f := newConsoleFixture(t)

	f.typeLine(t, "restock 1 5")
	f.waitForOutput(t, "Restocked productId=1 by 5")
	require.Equal(t, 15, f.ledger.QuantityOf(1))
}

func TestConsole_RestockCommandValidation(t *testing.T) {
	f := newConsoleFixture(t)

	f.typeLine(t, "restock 1")
	f.waitForOutput(t, "Usage: restock <productId> <amount>")

	f.typeLine(t, "restock abc 5")
	f.waitForOutput(t, "Number format error")

	f.typeLine(t, "restock 999 5")
	f.waitForOutput(t, "Product id=999 not found")

	f.typeLine(t, "restock 1 -2")
	f.waitForOutput(t, "Amount must be > 0")

	require.Equal(t, 10, f.ledger.QuantityOf(1))
}

func TestConsole_UnknownCommand(t *testing.T) {
	f := newConsoleFixture(t)
	f.typeLine(t, "dance")
	f.waitForOutput(t, "Unknown command. Type 'help'.")
}

func TestConsole_StatusShowsWarehouseAndRegister(t *testing.T) {
	f := newConsoleFixture(t)
	f.typeLine(t, "status")
	f.waitForOutput(t, "capacity=50 used=10 free=40 stock{1:10}")
	f.waitForOutput(t, "Register: 0.00")
}

func TestConsole_ExitInvokesQuit(t *testing.T) {
	f := newConsoleFixture(t)
	f.typeLine(t, "exit")
	select {
	case <-f.quit:
	case <-time.After(time.Second):
		t.Fatal("exit command did not invoke quit")
	}
}

func TestConsole_ConfirmPaymentReadsYesNo(t *testing.T) {
	f := newConsoleFixture(t)

	answer := make(chan bool, 1)
	go func() {
		answer <- f.console.ConfirmPayment(context.Background(), checkouttypes.PaymentRequest{
			Total: decimal.RequireFromString("12.00"),
		})
	}()

	f.waitForOutput(t, "Confirm payment at register? (y/n): ")
	f.typeLine(t, "maybe")
	f.waitForOutput(t, "Please input y or n.")
	f.typeLine(t, "y")

	select {
	case confirmed := <-answer:
		require.True(t, confirmed)
	case <-time.After(time.Second):
		t.Fatal("prompt did not resolve")
	}
}

func TestConsole_RestockAmountPrompt(t *testing.T) {
	f := newConsoleFixture(t)
	catalog := catalogmemory.NewCatalog(catalogmemory.SeedProducts(time.Now()))
	product, _ := catalog.FindProduct(1)

	amount := make(chan int, 1)
	go func() {
		amount <- f.console.RestockAmount(context.Background(), checkouttypes.Shortage{
			Product: product,
			Have:    2,
			Need:    5,
		})
	}()

	f.waitForOutput(t, "Not enough Apple in stock (have 2, need 5)")
	f.typeLine(t, "y")
	f.waitForOutput(t, "Enter amount to add (>0): ")
	f.typeLine(t, "nope")
	f.waitForOutput(t, "Invalid number, try again.")
	f.typeLine(t, "7")

	select {
	case got := <-amount:
		require.Equal(t, 7, got)
	case <-time.After(time.Second):
		t.Fatal("prompt did not resolve")
	}
}

func TestConsole_RestockAmountDeclined(t *testing.T) {
	f := newConsoleFixture(t)
	catalog := catalogmemory.NewCatalog(catalogmemory.SeedProducts(time.Now()))
	product, _ := catalog.FindProduct(1)

	amount := make(chan int, 1)
	go func() {
		amount <- f.console.RestockAmount(context.Background(), checkouttypes.Shortage{Product: product, Have: 0, Need: 1})
	}()

	f.waitForOutput(t, "Restock now? (y/n): ")
	f.typeLine(t, "n")

	select {
	case got := <-amount:
		require.Zero(t, got)
	case <-time.After(time.Second):
		t.Fatal("prompt did not resolve")
	}
}

func TestConsole_ClosedInputDeclinesPrompt(t *testing.T) {
	f := newConsoleFixture(t)
	require.NoError(t, f.input.Close())

	done := make(chan bool, 1)
	go func() {
		done <- f.console.ConfirmPayment(context.Background(), checkouttypes.PaymentRequest{Total: decimal.Zero})
	}()

	select {
	case confirmed := <-done:
		require.False(t, confirmed, "a closed input stream declines")
	case <-time.After(time.Second):
		t.Fatal("prompt did not resolve after input closed")
	}
}
