package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"luxe-commerce/models"
	"luxe-commerce/repositories"
)

type ReviewController struct {
	reviews *repositories.ReviewRepository
}

func NewReviewController(reviews *repositories.ReviewRepository) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// @Summary Get product reviews
// @Description List reviews for a product with the average rating
// @Tags Reviews
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /products/{id}/reviews [get]
func (ctrl *ReviewController) GetProductReviews(c *gin.Context) {
	productID, _ := strconv.Atoi(c.Param("id"))
	if productID <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid product ID",
		})
		return
	}

	ctx := c.Request.Context()
	reviews, err := ctrl.reviews.FindByProduct(ctx, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to retrieve reviews",
			Error:   err.Error(),
		})
		return
	}

	summary, err := ctrl.reviews.Summary(ctx, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to retrieve review summary",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Reviews retrieved",
		Data: gin.H{
			"reviews": reviews,
			"summary": summary,
		},
	})
}

// @Summary Submit review
// @Description Submit or replace a review; requires a past purchase of the product
// @Tags Reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param body body models.SubmitReviewRequest true "Review"
// @Success 201 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Router /products/{id}/reviews [post]
func (ctrl *ReviewController) SubmitReview(c *gin.Context) {
	productID, _ := strconv.Atoi(c.Param("id"))
	if productID <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid product ID",
		})
		return
	}

	var req models.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request data",
			Error:   err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	userID := c.GetInt("user_id")

	purchased, err := ctrl.reviews.UserHasPurchased(ctx, userID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to verify purchase",
			Error:   err.Error(),
		})
		return
	}
	if !purchased {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Success: false,
			Message: "Only customers who purchased this product can review it",
		})
		return
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := ctrl.reviews.Upsert(ctx, review); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to save review",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Review saved",
		Data:    review,
	})
}
