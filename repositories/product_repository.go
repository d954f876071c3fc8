package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"luxe-commerce/config"
	"luxe-commerce/models"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

type ProductFilter struct {
	Category string
	Featured bool
	Page     int
	Limit    int
}

const productColumns = `id, name, description, price, category,
	COALESCE(images, '{}'), COALESCE(image_ids, '{}'),
	COALESCE(sizes, '{}'), COALESCE(colors, '{}'),
	stock_quantity, is_active, featured, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }, p *models.Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
		&p.Images, &p.ImageIDs, &p.Sizes, &p.Colors,
		&p.StockQuantity, &p.IsActive, &p.Featured, &p.CreatedAt, &p.UpdatedAt,
	)
}

// FindActive lists active products, newest first, with optional category and
// featured filters.
func (r *ProductRepository) FindActive(ctx context.Context, f ProductFilter) ([]models.Product, int, error) {
	whereConditions := []string{"is_active = true"}
	args := []interface{}{}
	argIndex := 1

	if f.Category != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, f.Category)
		argIndex++
	}
	if f.Featured {
		whereConditions = append(whereConditions, "featured = true")
	}
	where := " WHERE " + strings.Join(whereConditions, " AND ")

	var total int
	if err := config.DB.QueryRow(ctx, "SELECT COUNT(*) FROM products"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.Limit
	query := fmt.Sprintf(
		"SELECT %s FROM products%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		productColumns, where, argIndex, argIndex+1,
	)
	args = append(args, f.Limit, offset)

	rows, err := config.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *ProductRepository) FindByID(ctx context.Context, id int) (*models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)

	p := &models.Product{}
	if err := scanProduct(config.DB.QueryRow(ctx, query, id), p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (name, description, price, category, images, image_ids, sizes, colors, stock_quantity, is_active, featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return config.DB.QueryRow(ctx, query,
		p.Name, p.Description, p.Price, p.Category,
		p.Images, p.ImageIDs, p.Sizes, p.Colors,
		p.StockQuantity, p.IsActive, p.Featured, now, now,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	query := `
		UPDATE products
		SET name=$1, description=$2, price=$3, category=$4, images=$5, image_ids=$6,
			sizes=$7, colors=$8, stock_quantity=$9, is_active=$10, featured=$11, updated_at=$12
		WHERE id=$13
	`
	_, err := config.DB.Exec(ctx, query,
		p.Name, p.Description, p.Price, p.Category, p.Images, p.ImageIDs,
		p.Sizes, p.Colors, p.StockQuantity, p.IsActive, p.Featured, time.Now(), p.ID,
	)
	return err
}

// Delete deactivates the product so order history keeps resolving. Rows are
// never physically removed.
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	tag, err := config.DB.Exec(ctx,
		`UPDATE products SET is_active = false, updated_at = $1 WHERE id = $2`,
		time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d not found", id)
	}
	return nil
}
