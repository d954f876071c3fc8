package models

type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	FullName string `json:"full_name" form:"full_name" binding:"required,min=3"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" form:"full_name" binding:"required,min=3"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type AddCartItemRequest struct {
	ProductID int    `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type UpdateCartItemRequest struct {
	ProductID int    `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type RemoveCartItemRequest struct {
	ProductID int    `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// Product create/update arrive as multipart forms so image files can ride
// along; prices come in as strings and are parsed as decimals.
type CreateProductRequest struct {
	Name          string   `form:"name" binding:"required"`
	Description   string   `form:"description"`
	Price         string   `form:"price" binding:"required"`
	Category      string   `form:"category" binding:"required"`
	Sizes         []string `form:"sizes"`
	Colors        []string `form:"colors"`
	StockQuantity int      `form:"stock_quantity"`
	IsActive      *bool    `form:"is_active"`
	Featured      bool     `form:"featured"`
}

type UpdateProductRequest struct {
	Name          string   `form:"name"`
	Description   string   `form:"description"`
	Price         string   `form:"price"`
	Category      string   `form:"category"`
	Sizes         []string `form:"sizes"`
	Colors        []string `form:"colors"`
	StockQuantity *int     `form:"stock_quantity"`
	IsActive      *bool    `form:"is_active"`
	Featured      *bool    `form:"featured"`
}

type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" form:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" form:"status" binding:"required"`
}
