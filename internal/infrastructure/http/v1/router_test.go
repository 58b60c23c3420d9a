package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeboard/internal/domain/inventory"
	"storeboard/internal/infrastructure/storage/memory"
	"storeboard/pkg/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *inventory.Ledger) {
	t.Helper()

	ledger := inventory.NewLedger(memory.NewStore())
	require.NoError(t, ledger.Load(context.Background()))

	router := NewRouter(RouterConfig{
		Logger: logger.Default(),
		Ledger: ledger,
	})
	return router, ledger
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestInventoryLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	// Create an item that starts below its minimum.
	w := doJSON(t, router, http.MethodPost, "/api/v1/inventory", map[string]any{
		"name":         "oat milk",
		"category":     "beverages",
		"currentStock": 15,
		"minStock":     20,
		"unit":         "carton",
		"unitPrice":    "12.50",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID           string `json:"id"`
		CurrentStock int    `json:"currentStock"`
	}
	decode(t, w, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 15, created.CurrentStock)

	// It shows up in the alert list as a warning.
	w = doJSON(t, router, http.MethodGet, "/api/v1/inventory/alerts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var alerts []map[string]any
	decode(t, w, &alerts)
	require.Len(t, alerts, 1)
	assert.Equal(t, "low_stock", alerts[0]["type"])
	assert.Equal(t, "warning", alerts[0]["severity"])

	// Restocking clears the alert.
	w = doJSON(t, router, http.MethodPost, "/api/v1/inventory/"+created.ID+"/add-stock", map[string]any{
		"quantity": 10,
		"notes":    "weekly delivery",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated struct {
		CurrentStock int `json:"currentStock"`
	}
	decode(t, w, &updated)
	assert.Equal(t, 25, updated.CurrentStock)

	w = doJSON(t, router, http.MethodGet, "/api/v1/inventory/alerts", nil)
	decode(t, w, &alerts)
	assert.Empty(t, alerts)

	// The receipt is in the movement history.
	w = doJSON(t, router, http.MethodGet, "/api/v1/inventory/"+created.ID+"/movements", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var movements []map[string]any
	decode(t, w, &movements)
	require.Len(t, movements, 1)
	assert.Equal(t, "in", movements[0]["type"])
	assert.Equal(t, "oat milk", movements[0]["itemName"])
}

func TestRemoveStockErrors(t *testing.T) {
	router, ledger := newTestRouter(t)

	item, err := ledger.AddProduct(context.Background(), inventory.ItemInput{
		Name: "beans", Category: "coffee", CurrentStock: 5, MinStock: 2, Unit: "bag",
	})
	require.NoError(t, err)

	// Removing more than on hand is a 422.
	w := doJSON(t, router, http.MethodPost, "/api/v1/inventory/"+item.ID.String()+"/remove-stock", map[string]any{
		"quantity": 6,
		"reason":   "sale",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var errBody struct {
		Code string `json:"code"`
	}
	decode(t, w, &errBody)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)

	// Unknown item is a 404 and records nothing.
	w = doJSON(t, router, http.MethodPost, "/api/v1/inventory/0198c5c3-0000-7000-8000-000000000000/remove-stock", map[string]any{
		"quantity": 1,
		"reason":   "sale",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/inventory/movements", nil)
	var movements []map[string]any
	decode(t, w, &movements)
	assert.Empty(t, movements)
}

func TestCreateItemValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/inventory", map[string]any{
		"name":     "broken",
		"category": "c",
		"unit":     "u",
		"minStock": -1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errBody struct {
		Code string `json:"code"`
	}
	decode(t, w, &errBody)
	assert.Equal(t, "VALIDATION_ERROR", errBody.Code)
}

func TestComputeMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/finance/metrics", map[string]any{
		"revenue": map[string]any{
			"meituan": 60720,
			"youzan":  15520,
		},
		"expenses": map[string]any{
			"fixed":    map[string]any{"rent": 8000, "utilities": 1200},
			"variable": map[string]any{"packaging": 2495.63},
			"labor":    map[string]any{"wages": 12000},
			"products": map[string]any{"restock": 6000},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var metrics struct {
		TotalRevenue  json.Number `json:"totalRevenue"`
		TotalExpenses json.Number `json:"totalExpenses"`
		NetProfit     json.Number `json:"netProfit"`
	}
	dec := json.NewDecoder(bytes.NewReader(w.Body.Bytes()))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&metrics))

	assert.Equal(t, "76240", metrics.TotalRevenue.String())
	assert.Equal(t, "31913.95", metrics.TotalExpenses.String())
	assert.Equal(t, "44326.05", metrics.NetProfit.String())
}

func TestHealthLive(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
