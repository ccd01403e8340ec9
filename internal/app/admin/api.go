// Package admin exposes the shop state and the operator restock entry point
// over HTTP. It only reads snapshots and mutates stock through the same
// ledger operations the console uses.
package admin

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	catalogports "github.com/FrankoBuyern/Proekt2/internal/domains/catalog/ports"
	checkoutdomain "github.com/FrankoBuyern/Proekt2/internal/domains/checkout/domain"
	inventorydomain "github.com/FrankoBuyern/Proekt2/internal/domains/inventory/domain"
	sharederrors "github.com/FrankoBuyern/Proekt2/internal/shared/errors"
)

// API bundles the dependencies of the admin endpoints.
type API struct {
	ledger   *inventorydomain.Ledger
	catalog  catalogports.Catalog
	register *checkoutdomain.Register
	logger   *slog.Logger
}

func NewAPI(ledger *inventorydomain.Ledger, catalog catalogports.Catalog, register *checkoutdomain.Register, logger *slog.Logger) *API {
	return &API{ledger: ledger, catalog: catalog, register: register, logger: logger}
}

// Router builds the gin engine with the admin routes and tracing middleware.
func (a *API) Router(serviceName string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))

	router.GET("/healthz", a.health)
	router.GET("/status", a.status)
	router.GET("/products", a.products)
	router.GET("/register", a.registerTotal)
	router.POST("/restock", a.restock)
	return router
}

type statusResponse struct {
	Capacity      int           `json:"capacity"`
	Size          int           `json:"size"`
	FreeSpace     int           `json:"free_space"`
	Stock         map[int64]int `json:"stock"`
	RegisterTotal string        `json:"register_total"`
}

type productResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       string  `json:"price"`
	ExpireDate  *string `json:"expire_date,omitempty"`
	Description string  `json:"description,omitempty"`
	OnHand      int     `json:"on_hand"`
}

type restockRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Amount    int   `json:"amount" binding:"required"`
}

func (a *API) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *API) status(c *gin.Context) {
	snap := a.ledger.Snapshot()
	c.JSON(http.StatusOK, statusResponse{
		Capacity:      snap.Capacity,
		Size:          snap.Size,
		FreeSpace:     snap.FreeSpace,
		Stock:         snap.Stock,
		RegisterTotal: a.register.Total().StringFixed(2),
	})
}

func (a *API) products(c *gin.Context) {
	snap := a.ledger.Snapshot()
	list := a.catalog.List()
	out := make([]productResponse, 0, len(list))
	for _, p := range list {
		resp := productResponse{
			ID:          p.ID,
			Name:        p.Name,
			Category:    string(p.Category),
			Price:       p.Price.StringFixed(2),
			Description: p.Description,
			OnHand:      snap.Stock[p.ID],
		}
		if p.ExpireDate != nil {
			formatted := p.ExpireDate.Format(time.DateOnly)
			resp.ExpireDate = &formatted
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) registerTotal(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"total": a.register.Total().StringFixed(2)})
}

func (a *API) restock(c *gin.Context) {
	var req restockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	if req.Amount <= 0 {
		sharederrors.Respond(c, sharederrors.ErrValidation.WithDetail("amount must be greater than zero"))
		return
	}
	if _, ok := a.catalog.FindProduct(req.ProductID); !ok {
		sharederrors.Respond(c, sharederrors.NewNotFoundProblem("product", req.ProductID))
		return
	}
	if err := a.ledger.Restock(req.ProductID, req.Amount); err != nil {
		a.logger.Warn("admin restock refused",
			slog.Int64("product_id", req.ProductID),
			slog.Int("amount", req.Amount),
			slog.String("error", err.Error()),
		)
		sharederrors.Respond(c, sharederrors.ErrCapacityExceeded.
			WithDetail(err.Error()).
			WithExtension("free_space", a.ledger.FreeSpace()))
		return
	}
	a.logger.Info("admin restock applied",
		slog.Int64("product_id", req.ProductID),
		slog.Int("amount", req.Amount),
	)
	c.JSON(http.StatusOK, gin.H{
		"product_id": req.ProductID,
		"amount":     req.Amount,
		"on_hand":    a.ledger.QuantityOf(req.ProductID),
	})
}
