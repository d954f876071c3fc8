package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxe-commerce/models"
	"luxe-commerce/services"
)

type fakeCatalog struct {
	products map[int]*models.Product
}

func (f *fakeCatalog) FindByID(_ context.Context, id int) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, errors.New("product not found")
	}
	return p, nil
}

func newCartRouter() (*gin.Engine, *services.CartStore) {
	gin.SetMode(gin.TestMode)

	catalog := &fakeCatalog{products: map[int]*models.Product{
		1: {
			ID:       1,
			Name:     "Wool Coat",
			Price:    decimal.RequireFromString("50.00"),
			Sizes:    []string{"S", "M", "L"},
			Colors:   []string{"black", "camel"},
			IsActive: true,
		},
		2: {
			ID:       2,
			Name:     "Leather Belt",
			Price:    decimal.RequireFromString("35.00"),
			IsActive: true,
		},
		3: {
			ID:       3,
			Name:     "Retired Bag",
			Price:    decimal.RequireFromString("80.00"),
			IsActive: false,
		},
	}}

	store := services.NewCartStore(nil, 0)
	ctrl := NewCartController(store, catalog)

	router := gin.New()
	authed := router.Group("/", func(c *gin.Context) {
		c.Set("user_id", 10)
		c.Next()
	})
	authed.GET("/cart", ctrl.GetCart)
	authed.POST("/cart/items", ctrl.AddItem)
	authed.PATCH("/cart/items", ctrl.UpdateItem)
	authed.DELETE("/cart/items", ctrl.RemoveItem)
	authed.DELETE("/cart", ctrl.ClearCart)

	return router, store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type cartBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Items []struct {
			ProductID int    `json:"product_id"`
			Quantity  int    `json:"quantity"`
			UnitPrice string `json:"unit_price"`
			Size      string `json:"size"`
			Color     string `json:"color"`
		} `json:"items"`
		TotalItems int `json:"total_items"`
		Quote      struct {
			Subtotal   string `json:"subtotal"`
			Shipping   string `json:"shipping"`
			Tax        string `json:"tax"`
			GrandTotal string `json:"grand_total"`
		} `json:"quote"`
	} `json:"data"`
}

func parseCart(t *testing.T, w *httptest.ResponseRecorder) cartBody {
	t.Helper()
	var body cartBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAddItemMergesAndQuotes(t *testing.T) {
	router, _ := newCartRouter()

	w := doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id": 1, "quantity": 2, "size": "M", "color": "black",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id": 1, "quantity": 1, "size": "M", "color": "black",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := parseCart(t, w)
	require.Len(t, body.Data.Items, 1)
	assert.Equal(t, 3, body.Data.Items[0].Quantity)
	assert.Equal(t, "50", body.Data.Items[0].UnitPrice)
	assert.Equal(t, "150", body.Data.Quote.Subtotal)
	assert.Equal(t, "15", body.Data.Quote.Shipping)
	assert.Equal(t, "12", body.Data.Quote.Tax)
	assert.Equal(t, "177", body.Data.Quote.GrandTotal)
}

func TestAddItemUnknownProduct(t *testing.T) {
	router, _ := newCartRouter()

	w := doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id": 99, "quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddItemInactiveProduct(t *testing.T) {
	router, _ := newCartRouter()

	w := doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id": 3, "quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddItemVariantValidation(t *testing.T) {
	router, _ := newCartRouter()

	tests := []struct {
		name string
		req  gin.H
	}{
		{"missing size", gin.H{"product_id": 1, "quantity": 1, "color": "black"}},
		{"unknown size", gin.H{"product_id": 1, "quantity": 1, "size": "XXL", "color": "black"}},
		{"missing color", gin.H{"product_id": 1, "quantity": 1, "size": "M"}},
		{"unknown color", gin.H{"product_id": 1, "quantity": 1, "size": "M", "color": "neon"}},
		{"size on sizeless product", gin.H{"product_id": 2, "quantity": 1, "size": "M"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/cart/items", tt.req)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		})
	}

	// None of the rejected requests may have touched the cart.
	w := doJSON(t, router, http.MethodGet, "/cart", nil)
	body := parseCart(t, w)
	assert.Empty(t, body.Data.Items)
}

func TestAddItemRejectsZeroQuantity(t *testing.T) {
	router, _ := newCartRouter()

	w := doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id": 2, "quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateItemToZeroRemovesLine(t *testing.T) {
	router, _ := newCartRouter()

	w := doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id": 2, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPatch, "/cart/items", gin.H{
		"product_id": 2, "quantity": 0,
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := parseCart(t, w)
	assert.Empty(t, body.Data.Items)
	assert.Equal(t, "0", body.Data.Quote.GrandTotal)
}

func TestRemoveAndClearCart(t *testing.T) {
	router, _ := newCartRouter()

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id": 1, "quantity": 1, "size": "M", "color": "black",
	})
	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id": 2, "quantity": 1,
	})

	w := doJSON(t, router, http.MethodDelete, "/cart/items", gin.H{
		"product_id": 1, "size": "M", "color": "black",
	})
	body := parseCart(t, w)
	require.Len(t, body.Data.Items, 1)
	assert.Equal(t, 2, body.Data.Items[0].ProductID)

	w = doJSON(t, router, http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/cart", nil)
	body = parseCart(t, w)
	assert.Empty(t, body.Data.Items)
	assert.Equal(t, 0, body.Data.TotalItems)
}
