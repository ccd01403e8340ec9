package game

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/FrankoBuyern/Proekt2/internal/app/admin"
	"github.com/FrankoBuyern/Proekt2/internal/console"
	catalogmemory "github.com/FrankoBuyern/Proekt2/internal/domains/catalog/adapters/memory"
	checkoutobs "github.com/FrankoBuyern/Proekt2/internal/domains/checkout/adapters/observability"
	checkoutapp "github.com/FrankoBuyern/Proekt2/internal/domains/checkout/application"
	checkoutdomain "github.com/FrankoBuyern/Proekt2/internal/domains/checkout/domain"
	"github.com/FrankoBuyern/Proekt2/internal/domains/customers/generator"
	inventorydomain "github.com/FrankoBuyern/Proekt2/internal/domains/inventory/domain"
	platformobservability "github.com/FrankoBuyern/Proekt2/internal/platform/observability"
)

// Run boots the shop simulation: observability, the seeded catalog and
// warehouse, the seller console, the admin HTTP surface, and the customer
// arrival loop. It blocks until ctx is canceled or the operator exits.
func Run(ctx context.Context, cfg Config) error {
	const serviceName = "shop-sim"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	catalog := catalogmemory.NewCatalog(catalogmemory.SeedProducts(time.Now()))
	ledger := inventorydomain.NewLedger(cfg.Capacity)
	for id, qty := range catalogmemory.SeedStock() {
		if err := ledger.Restock(id, qty); err != nil {
			logger.Warn("seed stock did not fit the warehouse",
				slog.Int64("product_id", id),
				slog.Int("quantity", qty),
				slog.String("error", err.Error()),
			)
		}
	}
	register := checkoutdomain.NewRegister()

	seller := console.New(os.Stdin, os.Stdout, ledger, catalog, register, cancel,
		console.WithColors(cfg.Colors),
		console.WithLogger(logger),
	)
	checkoutService := checkoutobs.New(
		checkoutapp.NewService(catalog, ledger, register, seller),
		checkoutobs.WithLogger(logger),
		checkoutobs.WithTracer(instruments.Tracer("internal.checkout.application")),
		checkoutobs.WithMeter(instruments.Meter("internal.checkout.application")),
	)
	arrivals := generator.New(catalog, cfg.Seed)

	if !cfg.AdminDisabled {
		api := admin.NewAPI(ledger, catalog, register, logger)
		server := &http.Server{Addr: ":" + cfg.AdminPort, Handler: api.Router(serviceName)}
		go func() {
			logger.Info("admin API listening", slog.String("addr", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("admin API server exited", slog.String("error", err.Error()))
			}
		}()
		defer func() {
			closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer closeCancel()
			_ = server.Shutdown(closeCtx)
		}()
	}

	go seller.Run(ctx)
	seller.ShowWelcome(cfg.ArrivalInterval)

	for {
		customer := arrivals.Customer()
		cart := arrivals.Cart()
		seller.AnnounceArrival(customer, cart)

		result, err := checkoutService.Checkout(ctx, customer, cart)
		if err != nil {
			logger.Error("transaction aborted", slog.String("error", err.Error()))
		} else {
			seller.RenderResult(result)
		}

		select {
		case <-ctx.Done():
			seller.ShowFinal()
			return nil
		case <-time.After(cfg.ArrivalInterval):
		}
	}
}
