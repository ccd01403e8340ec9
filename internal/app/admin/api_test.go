package admin

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/FrankoBuyern/Proekt2/internal/domains/catalog/adapters/memory"
	checkoutdomain "github.com/FrankoBuyern/Proekt2/internal/domains/checkout/domain"
	inventorydomain "github.com/FrankoBuyern/Proekt2/internal/domains/inventory/domain"
)

func newTestRouter(t *testing.T, capacity int) (*gin.Engine, *inventorydomain.Ledger) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ledger := inventorydomain.NewLedger(capacity)
	require.NoError(t, ledger.Restock(1, 10))
	require.NoError(t, ledger.Restock(3, 2))
	catalog := catalogmemory.NewCatalog(catalogmemory.SeedProducts(time.Now()))
	register := checkoutdomain.NewRegister()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := NewAPI(ledger, catalog, register, logger)
	return api.Router("shop-sim-test"), ledger
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAPI_Health(t *testing.T) {
	router, _ := newTestRouter(t, 50)
	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_Status(t *testing.T) {
	router, _ := newTestRouter(t, 50)

	rec := doJSON(t, router, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 50, got.Capacity)
	require.Equal(t, 12, got.Size)
	require.Equal(t, 38, got.FreeSpace)
	require.Equal(t, map[int64]int{1: 10, 3: 2}, got.Stock)
	require.Equal(t, "0.00", got.RegisterTotal)
}

func TestAPI_ProductsIncludeOnHand(t *testing.T) {
	router, _ := newTestRouter(t, 50)

	rec := doJSON(t, router, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []productResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 7)

	byID := make(map[int64]productResponse, len(got))
	for _, p := range got {
		byID[p.ID] = p
	}
	require.Equal(t, "Apple", byID[1].Name)
	require.Equal(t, "0.50", byID[1].Price)
	require.Equal(t, 10, byID[1].OnHand)
	require.NotNil(t, byID[1].ExpireDate)
	require.Equal(t, 0, byID[2].OnHand)
	require.Nil(t, byID[3].ExpireDate)
}

func TestAPI_RestockApplied(t *testing.T) {
	router, ledger := newTestRouter(t, 50)

	rec := doJSON(t, router, http.MethodPost, "/restock", gin.H{"product_id": 1, "amount": 5})
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.EqualValues(t, 15, got["on_hand"])
	require.Equal(t, 15, ledger.QuantityOf(1))
}

func TestAPI_RestockValidation(t *testing.T) {
	router, ledger := newTestRouter(t, 50)

	rec := doJSON(t, router, http.MethodPost, "/restock", gin.H{"product_id": 1, "amount": -3})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, 10, ledger.QuantityOf(1))

	rec = doJSON(t, router, http.MethodPost, "/restock", gin.H{"amount": 5})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_RestockUnknownProduct(t *testing.T) {
	router, _ := newTestRouter(t, 50)

	rec := doJSON(t, router, http.MethodPost, "/restock", gin.H{"product_id": 999, "amount": 5})
	require.Equal(t, http.StatusNotFound, rec.Code)

	var problem map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.EqualValues(t, http.StatusNotFound, problem["status"])
}

func TestAPI_RestockOverCapacity(t *testing.T) {
	router, ledger := newTestRouter(t, 15)

	rec := doJSON(t, router, http.MethodPost, "/restock", gin.H{"product_id": 1, "amount": 100})
	require.Equal(t, http.StatusConflict, rec.Code)

	var problem map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.EqualValues(t, http.StatusConflict, problem["status"])
	extensions, ok := problem["extensions"].(map[string]any)
	require.True(t, ok, "problem is missing extensions: %v", problem)
	require.EqualValues(t, 3, extensions["free_space"])
	require.Equal(t, 10, ledger.QuantityOf(1))
}
