package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxe-commerce/models"
)

type mockProducts struct {
	mu       sync.RWMutex
	products map[int]*models.Product
	err      error
}

func (m *mockProducts) FindByID(_ context.Context, id int) (*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, errors.New("product not found")
	}
	return p, nil
}

type mockOrders struct {
	mu       sync.Mutex
	nextID   int
	orders   map[int]*models.Order
	items    []models.OrderItem
	payments []models.Payment

	createOrderErr   error
	createItemsErr   error
	createPaymentErr error
	updateStatusErr  error
}

func newMockOrders() *mockOrders {
	return &mockOrders{nextID: 1, orders: map[int]*models.Order{}}
}

func (m *mockOrders) CreateOrder(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createOrderErr != nil {
		return m.createOrderErr
	}
	order.ID = m.nextID
	m.nextID++
	stored := *order
	m.orders[order.ID] = &stored
	return nil
}

func (m *mockOrders) CreateOrderItems(_ context.Context, items []models.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createItemsErr != nil {
		return m.createItemsErr
	}
	m.items = append(m.items, items...)
	return nil
}

func (m *mockOrders) FindOrderForUser(_ context.Context, orderID, userID int) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok || order.UserID != userID {
		return nil, errors.New("order not found")
	}
	found := *order
	return &found, nil
}

func (m *mockOrders) CreatePayment(_ context.Context, payment *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createPaymentErr != nil {
		return m.createPaymentErr
	}
	payment.ID = len(m.payments) + 1
	m.payments = append(m.payments, *payment)
	return nil
}

func (m *mockOrders) UpdateOrderStatus(_ context.Context, orderID int, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateStatusErr != nil {
		return m.updateStatusErr
	}
	order, ok := m.orders[orderID]
	if !ok {
		return errors.New("order not found")
	}
	order.Status = status
	return nil
}

func newCheckoutFixture() (*CheckoutService, *mockProducts, *mockOrders, *CartStore) {
	products := &mockProducts{products: map[int]*models.Product{
		1: {ID: 1, Name: "Wool Coat", Price: d("50.00"), IsActive: true},
		2: {ID: 2, Name: "Silk Scarf", Price: d("125.00"), IsActive: true},
		3: {ID: 3, Name: "Retired Bag", Price: d("80.00"), IsActive: false},
	}}
	orders := newMockOrders()
	cart := NewCartStore(nil, 0)
	return NewCheckoutService(products, orders, cart, nil), products, orders, cart
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("creates order with captured prices and grand total", func(t *testing.T) {
		svc, _, orders, cart := newCheckoutFixture()
		cart.AddItem(ctx, SessionKey(10), item(1, "50.00", 2, "", ""))

		order, quote, err := svc.PlaceOrder(ctx, 10)
		require.NoError(t, err)

		assert.Equal(t, models.OrderPendingPayment, order.Status)
		assert.True(t, quote.Subtotal.Equal(d("100.00")))
		assert.True(t, order.TotalAmount.Equal(d("123.00")))
		require.Len(t, orders.items, 1)
		assert.True(t, orders.items[0].PriceAtPurchase.Equal(d("50.00")))
		assert.Equal(t, order.ID, orders.items[0].OrderID)

		// Placing the order must not clear the cart; that happens only
		// after a payment is submitted.
		assert.Len(t, cart.Get(ctx, SessionKey(10)).Items, 1)
	})

	t.Run("prices come from the catalog, not the cart line", func(t *testing.T) {
		svc, _, orders, cart := newCheckoutFixture()
		stale := item(2, "99.99", 1, "", "")
		cart.AddItem(ctx, SessionKey(10), stale)

		order, _, err := svc.PlaceOrder(ctx, 10)
		require.NoError(t, err)

		require.Len(t, orders.items, 1)
		assert.True(t, orders.items[0].PriceAtPurchase.Equal(d("125.00")))
		assert.True(t, order.TotalAmount.Equal(d("150.00"))) // 125 + 15 shipping + 10 tax
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		svc, _, orders, _ := newCheckoutFixture()

		_, _, err := svc.PlaceOrder(ctx, 10)
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.Empty(t, orders.orders)
	})

	t.Run("inactive product aborts the order", func(t *testing.T) {
		svc, _, orders, cart := newCheckoutFixture()
		cart.AddItem(ctx, SessionKey(10), item(3, "80.00", 1, "", ""))

		_, _, err := svc.PlaceOrder(ctx, 10)
		assert.ErrorIs(t, err, ErrProductUnavailable)
		assert.Empty(t, orders.orders)
		assert.Len(t, cart.Get(ctx, SessionKey(10)).Items, 1)
	})

	t.Run("items insert failure surfaces but keeps the cart", func(t *testing.T) {
		svc, _, orders, cart := newCheckoutFixture()
		orders.createItemsErr = errors.New("connection reset")
		cart.AddItem(ctx, SessionKey(10), item(1, "50.00", 2, "", ""))

		_, _, err := svc.PlaceOrder(ctx, 10)
		require.Error(t, err)

		// The two inserts are not transactional; the header row stays
		// behind for the admin surface, but the user keeps their cart.
		assert.Len(t, orders.orders, 1)
		assert.Empty(t, orders.items)
		assert.Len(t, cart.Get(ctx, SessionKey(10)).Items, 1)
	})

	t.Run("order insert failure leaves cart intact and writes nothing", func(t *testing.T) {
		svc, _, orders, cart := newCheckoutFixture()
		orders.createOrderErr = errors.New("connection reset")
		cart.AddItem(ctx, SessionKey(10), item(1, "50.00", 2, "", ""))

		_, _, err := svc.PlaceOrder(ctx, 10)
		require.Error(t, err)

		assert.Empty(t, orders.orders)
		assert.Empty(t, orders.items)
		assert.Empty(t, orders.payments)
		assert.Len(t, cart.Get(ctx, SessionKey(10)).Items, 1)
	})
}

func TestSubmitPayment(t *testing.T) {
	ctx := context.Background()

	place := func(t *testing.T, svc *CheckoutService, cart *CartStore, userID int) *models.Order {
		cart.AddItem(ctx, SessionKey(userID), item(1, "50.00", 2, "", ""))
		order, _, err := svc.PlaceOrder(ctx, userID)
		require.NoError(t, err)
		return order
	}

	t.Run("records payment, updates status, clears cart", func(t *testing.T) {
		svc, _, orders, cart := newCheckoutFixture()
		order := place(t, svc, cart, 10)

		payment, err := svc.SubmitPayment(ctx, 10, order.ID, "First National", "10/1/receipt.jpg", "")
		require.NoError(t, err)

		assert.Equal(t, models.PaymentPending, payment.Status)
		assert.True(t, payment.Amount.Equal(order.TotalAmount))
		assert.Equal(t, "10/1/receipt.jpg", payment.ReceiptURL)
		assert.Equal(t, models.OrderPaymentSubmitted, orders.orders[order.ID].Status)
		assert.Empty(t, cart.Get(ctx, SessionKey(10)).Items)
	})

	t.Run("retry with a new receipt is safe", func(t *testing.T) {
		svc, _, orders, cart := newCheckoutFixture()
		order := place(t, svc, cart, 10)

		_, err := svc.SubmitPayment(ctx, 10, order.ID, "First National", "10/1/a.jpg", "")
		require.NoError(t, err)
		_, err = svc.SubmitPayment(ctx, 10, order.ID, "First National", "10/1/b.jpg", "")
		require.NoError(t, err)

		assert.Len(t, orders.payments, 2)
		assert.Equal(t, models.OrderPaymentSubmitted, orders.orders[order.ID].Status)
	})

	t.Run("rejects another user's order", func(t *testing.T) {
		svc, _, _, cart := newCheckoutFixture()
		order := place(t, svc, cart, 10)

		_, err := svc.SubmitPayment(ctx, 11, order.ID, "First National", "11/1/x.jpg", "")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("rejects orders past payment review", func(t *testing.T) {
		svc, _, orders, cart := newCheckoutFixture()
		order := place(t, svc, cart, 10)
		require.NoError(t, orders.UpdateOrderStatus(ctx, order.ID, models.OrderConfirmed))

		_, err := svc.SubmitPayment(ctx, 10, order.ID, "First National", "10/1/x.jpg", "")
		assert.ErrorIs(t, err, ErrOrderNotPayable)
	})

	t.Run("payment insert failure keeps cart and order state", func(t *testing.T) {
		svc, _, orders, cart := newCheckoutFixture()
		order := place(t, svc, cart, 10)
		orders.createPaymentErr = errors.New("connection reset")

		_, err := svc.SubmitPayment(ctx, 10, order.ID, "First National", "10/1/x.jpg", "")
		require.Error(t, err)

		assert.Empty(t, orders.payments)
		assert.Equal(t, models.OrderPendingPayment, orders.orders[order.ID].Status)
		assert.NotEmpty(t, cart.Get(ctx, SessionKey(10)).Items)
	})
}
