package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"luxe-commerce/models"
	"luxe-commerce/services"
)

type CartController struct {
	store    *services.CartStore
	products services.ProductReader
}

func NewCartController(store *services.CartStore, products services.ProductReader) *CartController {
	return &CartController{store: store, products: products}
}

func cartPayload(cart *models.Cart) gin.H {
	quote := services.QuoteFor(cart.Subtotal())
	return gin.H{
		"items":       cart.Items,
		"total_items": cart.TotalItems(),
		"quote":       quote,
	}
}

// @Summary Get cart
// @Description Get the session cart with derived totals and a price quote
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	session := services.SessionKey(c.GetInt("user_id"))
	cart := ctrl.store.Get(c.Request.Context(), session)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart retrieved",
		Data:    cartPayload(cart),
	})
}

// validateVariants checks the selected axes against what the product
// declares. Returns a user-facing message on failure; nothing is mutated
// until this passes.
func validateVariants(product *models.Product, size, color string) string {
	if len(product.Sizes) > 0 {
		if size == "" {
			return "Please select a size"
		}
		if !product.HasSize(size) {
			return "Selected size is not available for this product"
		}
	} else if size != "" {
		return "This product has no size options"
	}

	if len(product.Colors) > 0 {
		if color == "" {
			return "Please select a color"
		}
		if !product.HasColor(color) {
			return "Selected color is not available for this product"
		}
	} else if color != "" {
		return "This product has no color options"
	}

	return ""
}

// @Summary Add cart item
// @Description Add a product to the cart; lines with the same product and variants merge
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.AddCartItemRequest true "Item"
// @Success 200 {object} models.Response
// @Failure 422 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request data",
			Error:   err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	product, err := ctrl.products.FindByID(ctx, req.ProductID)
	if err != nil || !product.IsActive {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Product not found",
		})
		return
	}

	if msg := validateVariants(product, req.Size, req.Color); msg != "" {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Success: false,
			Message: msg,
		})
		return
	}

	imageURL := ""
	if len(product.Images) > 0 {
		imageURL = product.Images[0]
	}

	session := services.SessionKey(c.GetInt("user_id"))
	cart := ctrl.store.AddItem(ctx, session, models.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		ImageURL:  imageURL,
		Size:      req.Size,
		Color:     req.Color,
		Quantity:  req.Quantity,
	})

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item added to cart",
		Data:    cartPayload(cart),
	})
}

// @Summary Update cart item quantity
// @Description Set a line's quantity; zero or negative removes the line
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.UpdateCartItemRequest true "Item"
// @Success 200 {object} models.Response
// @Router /cart/items [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request data",
			Error:   err.Error(),
		})
		return
	}

	session := services.SessionKey(c.GetInt("user_id"))
	key := models.CartKey{ProductID: req.ProductID, Size: req.Size, Color: req.Color}
	cart := ctrl.store.UpdateQuantity(c.Request.Context(), session, key, req.Quantity)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart updated",
		Data:    cartPayload(cart),
	})
}

// @Summary Remove cart item
// @Description Remove a line from the cart
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.RemoveCartItemRequest true "Item key"
// @Success 200 {object} models.Response
// @Router /cart/items [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	var req models.RemoveCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request data",
			Error:   err.Error(),
		})
		return
	}

	session := services.SessionKey(c.GetInt("user_id"))
	key := models.CartKey{ProductID: req.ProductID, Size: req.Size, Color: req.Color}
	cart := ctrl.store.RemoveItem(c.Request.Context(), session, key)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item removed",
		Data:    cartPayload(cart),
	})
}

// @Summary Clear cart
// @Description Empty the session cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	session := services.SessionKey(c.GetInt("user_id"))
	ctrl.store.Clear(c.Request.Context(), session)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart cleared",
		Data:    cartPayload(&models.Cart{Items: []models.CartItem{}}),
	})
}
