package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderPendingPayment   = "pending_payment"
	OrderPaymentSubmitted = "payment_submitted"
	OrderConfirmed        = "confirmed"
	OrderShipped          = "shipped"
	OrderCompleted        = "completed"
	OrderCancelled        = "cancelled"
)

const (
	PaymentPending  = "pending"
	PaymentApproved = "approved"
	PaymentRejected = "rejected"
)

var orderStatuses = map[string]bool{
	OrderPendingPayment:   true,
	OrderPaymentSubmitted: true,
	OrderConfirmed:        true,
	OrderShipped:          true,
	OrderCompleted:        true,
	OrderCancelled:        true,
}

var paymentStatuses = map[string]bool{
	PaymentPending:  true,
	PaymentApproved: true,
	PaymentRejected: true,
}

func ValidOrderStatus(s string) bool   { return orderStatuses[s] }
func ValidPaymentStatus(s string) bool { return paymentStatuses[s] }

type Order struct {
	ID          int             `json:"id"`
	UserID      int             `json:"user_id"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []OrderItem     `json:"items,omitempty"`
	Payments    []Payment       `json:"payments,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OrderItem snapshots the catalog price at submission time. Later catalog
// changes never touch PriceAtPurchase.
type OrderItem struct {
	ID              int             `json:"id"`
	OrderID         int             `json:"order_id"`
	ProductID       int             `json:"product_id"`
	ProductName     string          `json:"product_name,omitempty"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
	Size            string          `json:"size,omitempty"`
	Color           string          `json:"color,omitempty"`
}

type Payment struct {
	ID         int             `json:"id"`
	OrderID    int             `json:"order_id"`
	UserID     int             `json:"user_id"`
	BankName   string          `json:"bank_name"`
	Amount     decimal.Decimal `json:"amount"`
	ReceiptURL string          `json:"receipt_url,omitempty"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// BankInstructions is the fixed transfer target shown after placing an
// order. The order id doubles as the transfer reference.
type BankInstructions struct {
	Bank    string `json:"bank"`
	Account string `json:"account"`
	Routing string `json:"routing"`
	Message string `json:"message"`
}
