package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"luxe-commerce/models"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotPayable    = errors.New("order is not awaiting payment")
	ErrProductUnavailable = errors.New("product is no longer available")
)

// BankTransfer is the fixed transfer target shown on the payment step.
var BankTransfer = models.BankInstructions{
	Bank:    "LUXE Commerce Bank",
	Account: "XXXX XXXX 1234 5678",
	Routing: "021000021",
	Message: "Please transfer the order total to the account above and use your order ID as the reference, then upload the transfer receipt.",
}

type ProductReader interface {
	FindByID(ctx context.Context, id int) (*models.Product, error)
}

type OrderWriter interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	FindOrderForUser(ctx context.Context, orderID, userID int) (*models.Order, error)
	CreatePayment(ctx context.Context, payment *models.Payment) error
	UpdateOrderStatus(ctx context.Context, orderID int, status string) error
}

// Mailer sends the best-effort order confirmation after a payment is
// submitted.
type Mailer interface {
	SendOrderConfirmation(to, orderNumber, total string) error
}

// CheckoutService sequences cart contents into persisted order and payment
// records. The two inserts of PlaceOrder are deliberately not wrapped in a
// transaction: a failure between them surfaces to the caller and the
// partial order is left for the admin surface, matching the storefront's
// original behavior.
type CheckoutService struct {
	products ProductReader
	orders   OrderWriter
	cart     *CartStore
	mailer   Mailer
}

func NewCheckoutService(products ProductReader, orders OrderWriter, cart *CartStore, mailer Mailer) *CheckoutService {
	return &CheckoutService{
		products: products,
		orders:   orders,
		cart:     cart,
		mailer:   mailer,
	}
}

// PlaceOrder snapshots the user's cart into an order in pending_payment
// with the grand total and per-line prices captured from the catalog at
// this moment. The cart is left intact: it is cleared only once a payment
// is submitted, so a failed upload never forces the user to rebuild it.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID int) (*models.Order, Quote, error) {
	session := SessionKey(userID)
	cart := s.cart.Get(ctx, session)
	if len(cart.Items) == 0 {
		return nil, Quote{}, ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	subtotal := decimal.Zero
	for _, line := range cart.Items {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, Quote{}, fmt.Errorf("failed to price cart line: %w", err)
		}
		if !product.IsActive {
			return nil, Quote{}, fmt.Errorf("%w: %s", ErrProductUnavailable, product.Name)
		}

		items = append(items, models.OrderItem{
			ProductID:       product.ID,
			ProductName:     product.Name,
			Quantity:        line.Quantity,
			PriceAtPurchase: product.Price,
			Size:            line.Size,
			Color:           line.Color,
		})
		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	quote := QuoteFor(subtotal)

	order := &models.Order{
		UserID:      userID,
		Status:      models.OrderPendingPayment,
		TotalAmount: quote.GrandTotal,
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, Quote{}, fmt.Errorf("failed to create order: %w", err)
	}

	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := s.orders.CreateOrderItems(ctx, items); err != nil {
		return nil, Quote{}, fmt.Errorf("failed to create order items: %w", err)
	}

	order.Items = items
	return order, quote, nil
}

// SubmitPayment records a bank-transfer receipt for the order and moves it
// to payment_submitted, then clears the cart. Retrying with a new receipt
// is safe: an order already in payment_submitted simply gains another
// pending payment record.
func (s *CheckoutService) SubmitPayment(ctx context.Context, userID, orderID int, bankName, receiptPath, userEmail string) (*models.Payment, error) {
	order, err := s.orders.FindOrderForUser(ctx, orderID, userID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != models.OrderPendingPayment && order.Status != models.OrderPaymentSubmitted {
		return nil, ErrOrderNotPayable
	}

	payment := &models.Payment{
		OrderID:    order.ID,
		UserID:     userID,
		BankName:   bankName,
		Amount:     order.TotalAmount,
		ReceiptURL: receiptPath,
		Status:     models.PaymentPending,
	}
	if err := s.orders.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	if err := s.orders.UpdateOrderStatus(ctx, order.ID, models.OrderPaymentSubmitted); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.cart.Clear(ctx, SessionKey(userID))

	if s.mailer != nil && userEmail != "" {
		orderNumber := fmt.Sprintf("ORD-%d", order.ID)
		total := order.TotalAmount.StringFixed(2)
		go func() {
			if err := s.mailer.SendOrderConfirmation(userEmail, orderNumber, total); err != nil {
				log.Println("failed to send order confirmation email:", err)
			}
		}()
	}

	return payment, nil
}
