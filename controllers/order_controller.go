package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"luxe-commerce/models"
	"luxe-commerce/repositories"
	"luxe-commerce/services"
	"luxe-commerce/utils"
)

const receiptURLTTL = time.Hour

type OrderController struct {
	checkout *services.CheckoutService
	orders   *repositories.OrderRepository
}

func NewOrderController(checkout *services.CheckoutService, orders *repositories.OrderRepository) *OrderController {
	return &OrderController{checkout: checkout, orders: orders}
}

func getPaginationParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// @Summary Place order
// @Description Create an order from the session cart; the cart stays intact until a payment is submitted
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 201 {object} models.Response
// @Failure 422 {object} models.ErrorResponse
// @Router /orders [post]
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	userID := c.GetInt("user_id")

	order, quote, err := ctrl.checkout.PlaceOrder(c.Request.Context(), userID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrEmptyCart) || errors.Is(err, services.ErrProductUnavailable) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, models.ErrorResponse{
			Success: false,
			Message: "Failed to place order",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Order placed. Complete the bank transfer and upload your receipt.",
		Data: gin.H{
			"order":             order,
			"quote":             quote,
			"bank_instructions": services.BankTransfer,
		},
	})
}

// @Summary Submit payment
// @Description Upload a bank-transfer receipt for an order awaiting payment
// @Tags Orders
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Order ID"
// @Param bank_name formData string true "Bank the transfer was made from"
// @Param receipt formData file true "Transfer receipt"
// @Success 201 {object} models.Response
// @Failure 422 {object} models.ErrorResponse
// @Router /orders/{id}/payment [post]
func (ctrl *OrderController) SubmitPayment(c *gin.Context) {
	userID := c.GetInt("user_id")
	userEmail := c.GetString("user_email")

	orderID, _ := strconv.Atoi(c.Param("id"))
	if orderID <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid order ID",
		})
		return
	}

	bankName := c.PostForm("bank_name")
	if bankName == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Bank name is required",
		})
		return
	}

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Receipt file is required",
		})
		return
	}

	// The file is stored before any record is written: a failed upload
	// leaves the order in pending_payment and the cart intact, so the user
	// retries without re-placing the order.
	receiptPath, err := utils.SaveReceipt(c, fileHeader, userID, orderID)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Success: false,
			Message: "Failed to store receipt",
			Error:   err.Error(),
		})
		return
	}

	payment, err := ctrl.checkout.SubmitPayment(c.Request.Context(), userID, orderID, bankName, receiptPath, userEmail)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			status = http.StatusNotFound
		case errors.Is(err, services.ErrOrderNotPayable):
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, models.ErrorResponse{
			Success: false,
			Message: "Failed to submit payment",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Payment submitted. We will confirm your order once the transfer is verified.",
		Data:    payment,
	})
}

// @Summary Get my orders
// @Description List the authenticated user's orders
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.PaginationResponse
// @Router /orders [get]
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	userID := c.GetInt("user_id")
	page, limit := getPaginationParams(c, 10)

	orders, total, err := ctrl.orders.FindByUser(c.Request.Context(), userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to retrieve orders",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.PaginationResponse{
		Success: true,
		Message: "Orders retrieved",
		Data:    orders,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// @Summary Get my order
// @Description Get one of the authenticated user's orders with items and payments
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id} [get]
func (ctrl *OrderController) GetMyOrder(c *gin.Context) {
	userID := c.GetInt("user_id")
	orderID, _ := strconv.Atoi(c.Param("id"))

	ctx := c.Request.Context()
	order, err := ctrl.orders.FindOrderForUser(ctx, orderID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Order not found",
		})
		return
	}

	if err := ctrl.orders.LoadDetails(ctx, order); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to load order details",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Order retrieved",
		Data: gin.H{
			"order":             order,
			"bank_instructions": services.BankTransfer,
		},
	})
}

// @Summary Get receipt URL
// @Description Mint a signed, time-limited view URL for a payment receipt
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Payment ID"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Router /payments/{id}/receipt [get]
func (ctrl *OrderController) GetReceiptURL(c *gin.Context) {
	userID := c.GetInt("user_id")
	role := c.GetString("user_role")

	paymentID, _ := strconv.Atoi(c.Param("id"))
	payment, err := ctrl.orders.FindPaymentByID(c.Request.Context(), paymentID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Payment not found",
		})
		return
	}

	if payment.UserID != userID && role != "admin" {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Success: false,
			Message: "Access denied",
		})
		return
	}
	if payment.ReceiptURL == "" {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "No receipt on this payment",
		})
		return
	}

	token, err := utils.GenerateReceiptToken(payment.ReceiptURL, receiptURLTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to sign receipt URL",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Receipt URL generated",
		Data: gin.H{
			"url":        "/receipts/view?token=" + token,
			"expires_in": int(receiptURLTTL.Seconds()),
		},
	})
}

// ViewReceipt streams a receipt file. Access is granted solely by the
// signed token, so the link can be opened outside an authenticated client.
//
// @Summary View receipt
// @Description Stream a receipt file using a signed URL token
// @Tags Orders
// @Produce octet-stream
// @Param token query string true "Signed token"
// @Success 200 {file} binary
// @Failure 401 {object} models.ErrorResponse
// @Router /receipts/view [get]
func (ctrl *OrderController) ViewReceipt(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Token is required",
		})
		return
	}

	path, err := utils.ValidateReceiptToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Success: false,
			Message: "Invalid or expired receipt URL",
		})
		return
	}

	fullPath, err := utils.ReceiptFilePath(path)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Receipt file not found",
		})
		return
	}

	c.File(fullPath)
}

// @Summary Get all orders
// @Description List all orders with optional status filter (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param status query string false "Filter by status"
// @Success 200 {object} models.PaginationResponse
// @Router /admin/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	page, limit := getPaginationParams(c, 10)

	status := c.Query("status")
	if status != "" && !models.ValidOrderStatus(status) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Unknown order status",
		})
		return
	}

	orders, total, err := ctrl.orders.FindAll(c.Request.Context(), status, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to retrieve orders",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.PaginationResponse{
		Success: true,
		Message: "Orders retrieved",
		Data:    orders,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// @Summary Get order by ID
// @Description Get any order with items and payments (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("id"))

	ctx := c.Request.Context()
	order, err := ctrl.orders.FindOrderByID(ctx, orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Order not found",
		})
		return
	}

	if err := ctrl.orders.LoadDetails(ctx, order); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to load order details",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Order retrieved",
		Data:    order,
	})
}

// @Summary Update order status
// @Description Set an order's status (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param body body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.Response
// @Router /admin/orders/{id}/status [patch]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("id"))
	if orderID <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid order ID",
		})
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Status is required",
		})
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Unknown order status",
		})
		return
	}

	if err := ctrl.orders.UpdateOrderStatus(c.Request.Context(), orderID, req.Status); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Order status updated",
		Data:    gin.H{"id": orderID, "status": req.Status},
	})
}

// @Summary Update payment status
// @Description Approve or reject a submitted payment (Admin). Approval confirms the order; rejection sends it back to pending_payment.
// @Tags Admin - Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Payment ID"
// @Param body body models.UpdatePaymentStatusRequest true "New status"
// @Success 200 {object} models.Response
// @Router /admin/payments/{id}/status [patch]
func (ctrl *OrderController) UpdatePaymentStatus(c *gin.Context) {
	paymentID, _ := strconv.Atoi(c.Param("id"))
	if paymentID <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid payment ID",
		})
		return
	}

	var req models.UpdatePaymentStatusRequest
	if err := c.ShouldBind(&req); err != nil || !models.ValidPaymentStatus(req.Status) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Unknown payment status",
		})
		return
	}

	ctx := c.Request.Context()
	payment, err := ctrl.orders.FindPaymentByID(ctx, paymentID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Payment not found",
		})
		return
	}

	if err := ctrl.orders.UpdatePaymentStatus(ctx, paymentID, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to update payment",
			Error:   err.Error(),
		})
		return
	}

	switch req.Status {
	case models.PaymentApproved:
		err = ctrl.orders.UpdateOrderStatus(ctx, payment.OrderID, models.OrderConfirmed)
	case models.PaymentRejected:
		err = ctrl.orders.UpdateOrderStatus(ctx, payment.OrderID, models.OrderPendingPayment)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Payment updated but order status change failed",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Payment status updated",
		Data:    gin.H{"id": paymentID, "status": req.Status},
	})
}

// @Summary Dashboard
// @Description Admin landing-page counters
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/dashboard [get]
func (ctrl *OrderController) GetDashboard(c *gin.Context) {
	stats, err := ctrl.orders.DashboardStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to load dashboard",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Dashboard retrieved",
		Data:    stats,
	})
}
