package repositories

import (
	"context"
	"time"

	"luxe-commerce/config"
	"luxe-commerce/models"
)

type ReviewRepository struct{}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

func (r *ReviewRepository) FindByProduct(ctx context.Context, productID int) ([]models.Review, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT r.id, r.product_id, r.user_id, COALESCE(u.full_name, ''), r.rating,
			COALESCE(r.comment, ''), r.created_at
		 FROM reviews r
		 LEFT JOIN users u ON u.id = r.user_id
		 WHERE r.product_id = $1
		 ORDER BY r.created_at DESC`,
		productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(&review.ID, &review.ProductID, &review.UserID,
			&review.UserName, &review.Rating, &review.Comment, &review.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) Summary(ctx context.Context, productID int) (*models.ReviewSummary, error) {
	summary := &models.ReviewSummary{}
	err := config.DB.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE product_id = $1`,
		productID).Scan(&summary.Average, &summary.Count)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// Upsert replaces any earlier review by the same user for the same product.
func (r *ReviewRepository) Upsert(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (product_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id, user_id)
		DO UPDATE SET rating = EXCLUDED.rating, comment = EXCLUDED.comment, created_at = EXCLUDED.created_at
		RETURNING id, created_at
	`
	return config.DB.QueryRow(ctx, query,
		review.ProductID, review.UserID, review.Rating, review.Comment, time.Now(),
	).Scan(&review.ID, &review.CreatedAt)
}

// UserHasPurchased reports whether the user has an order containing the
// product that made it to payment review or beyond.
func (r *ReviewRepository) UserHasPurchased(ctx context.Context, userID, productID int) (bool, error) {
	var count int
	err := config.DB.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM order_items oi
		 JOIN orders o ON o.id = oi.order_id
		 WHERE o.user_id = $1
		   AND oi.product_id = $2
		   AND o.status IN ('payment_submitted', 'confirmed', 'shipped', 'completed')`,
		userID, productID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
