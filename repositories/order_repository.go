package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"luxe-commerce/config"
	"luxe-commerce/models"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (user_id, status, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return config.DB.QueryRow(ctx, query,
		order.UserID, order.Status, order.TotalAmount, now, now,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *OrderRepository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	for i := range items {
		err := config.DB.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase, size, color)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id`,
			items[i].OrderID, items[i].ProductID, items[i].Quantity,
			items[i].PriceAtPurchase, items[i].Size, items[i].Color,
		).Scan(&items[i].ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepository) FindOrderForUser(ctx context.Context, orderID, userID int) (*models.Order, error) {
	query := `SELECT id, user_id, status, total_amount, created_at, updated_at
		FROM orders WHERE id = $1 AND user_id = $2`

	order := &models.Order{}
	err := config.DB.QueryRow(ctx, query, orderID, userID).Scan(
		&order.ID, &order.UserID, &order.Status, &order.TotalAmount,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) FindOrderByID(ctx context.Context, orderID int) (*models.Order, error) {
	query := `SELECT id, user_id, status, total_amount, created_at, updated_at
		FROM orders WHERE id = $1`

	order := &models.Order{}
	err := config.DB.QueryRow(ctx, query, orderID).Scan(
		&order.ID, &order.UserID, &order.Status, &order.TotalAmount,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// LoadDetails fills the order's items and payments.
func (r *OrderRepository) LoadDetails(ctx context.Context, order *models.Order) error {
	rows, err := config.DB.Query(ctx,
		`SELECT oi.id, oi.order_id, oi.product_id, COALESCE(p.name, ''), oi.quantity,
			oi.price_at_purchase, COALESCE(oi.size, ''), COALESCE(oi.color, '')
		 FROM order_items oi
		 LEFT JOIN products p ON p.id = oi.product_id
		 WHERE oi.order_id = $1
		 ORDER BY oi.id`,
		order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	order.Items = []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.PriceAtPurchase, &item.Size, &item.Color); err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	payRows, err := config.DB.Query(ctx,
		`SELECT id, order_id, user_id, bank_name, amount, COALESCE(receipt_url, ''), status, created_at
		 FROM payments WHERE order_id = $1 ORDER BY created_at DESC`,
		order.ID)
	if err != nil {
		return err
	}
	defer payRows.Close()

	order.Payments = []models.Payment{}
	for payRows.Next() {
		var p models.Payment
		if err := payRows.Scan(&p.ID, &p.OrderID, &p.UserID, &p.BankName,
			&p.Amount, &p.ReceiptURL, &p.Status, &p.CreatedAt); err != nil {
			return err
		}
		order.Payments = append(order.Payments, p)
	}
	return payRows.Err()
}

// FindByUser lists a user's orders, newest first.
func (r *OrderRepository) FindByUser(ctx context.Context, userID, page, limit int) ([]models.Order, int, error) {
	var total int
	if err := config.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	rows, err := config.DB.Query(ctx,
		`SELECT id, user_id, status, total_amount, created_at, updated_at
		 FROM orders WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	return collectOrders(rows, total)
}

// FindAll lists every order for the admin surface with an optional status
// filter.
func (r *OrderRepository) FindAll(ctx context.Context, status string, page, limit int) ([]models.Order, int, error) {
	whereConditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if status != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, status)
		argIndex++
	}
	where := ""
	if len(whereConditions) > 0 {
		where = " WHERE " + strings.Join(whereConditions, " AND ")
	}

	var total int
	if err := config.DB.QueryRow(ctx, "SELECT COUNT(*) FROM orders"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	query := fmt.Sprintf(
		`SELECT id, user_id, status, total_amount, created_at, updated_at
		 FROM orders%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := config.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	return collectOrders(rows, total)
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, orderID int, status string) error {
	tag, err := config.DB.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d not found", orderID)
	}
	return nil
}

func (r *OrderRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (order_id, user_id, bank_name, amount, receipt_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return config.DB.QueryRow(ctx, query,
		payment.OrderID, payment.UserID, payment.BankName,
		payment.Amount, payment.ReceiptURL, payment.Status, time.Now(),
	).Scan(&payment.ID, &payment.CreatedAt)
}

func (r *OrderRepository) FindPaymentByID(ctx context.Context, paymentID int) (*models.Payment, error) {
	query := `SELECT id, order_id, user_id, bank_name, amount, COALESCE(receipt_url, ''), status, created_at
		FROM payments WHERE id = $1`

	p := &models.Payment{}
	err := config.DB.QueryRow(ctx, query, paymentID).Scan(
		&p.ID, &p.OrderID, &p.UserID, &p.BankName,
		&p.Amount, &p.ReceiptURL, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *OrderRepository) UpdatePaymentStatus(ctx context.Context, paymentID int, status string) error {
	tag, err := config.DB.Exec(ctx,
		`UPDATE payments SET status = $1 WHERE id = $2`, status, paymentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment %d not found", paymentID)
	}
	return nil
}

type DashboardStats struct {
	TotalOrders     int             `json:"total_orders"`
	PendingPayments int             `json:"pending_payments"`
	Revenue         decimal.Decimal `json:"revenue"`
	Customers       int             `json:"customers"`
}

// DashboardStats aggregates the admin landing-page counters. Revenue counts
// orders that made it past payment review.
func (r *OrderRepository) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{Revenue: decimal.Zero}

	if err := config.DB.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&stats.TotalOrders); err != nil {
		return nil, err
	}
	if err := config.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM payments WHERE status = 'pending'`).Scan(&stats.PendingPayments); err != nil {
		return nil, err
	}
	if err := config.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM orders
		 WHERE status IN ('confirmed', 'shipped', 'completed')`).Scan(&stats.Revenue); err != nil {
		return nil, err
	}
	if err := config.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role = 'customer'`).Scan(&stats.Customers); err != nil {
		return nil, err
	}
	return stats, nil
}

func collectOrders(rows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
}, total int) ([]models.Order, int, error) {
	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}
