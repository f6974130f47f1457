package dto

import (
	"time"

	"digital-storefront/internal/model"
	"digital-storefront/internal/money"
)

type ProductResponse struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Description            string    `json:"description"`
	PriceInCents           int64     `json:"priceInCents"`
	Price                  string    `json:"price"`
	ImagePath              string    `json:"imagePath"`
	IsAvailableForPurchase bool      `json:"isAvailableForPurchase"`
	CreatedAt              time.Time `json:"createdAt"`
}

// NewProductResponse never exposes the private file location.
func NewProductResponse(product *model.Product) ProductResponse {
	return ProductResponse{
		ID:                     product.ID,
		Name:                   product.Name,
		Description:            product.Description,
		PriceInCents:           product.PriceInCents,
		Price:                  money.FormatCents(product.PriceInCents),
		ImagePath:              product.ImagePath,
		IsAvailableForPurchase: product.IsAvailableForPurchase,
		CreatedAt:              product.CreatedAt,
	}
}

func NewProductResponses(products []*model.Product) []ProductResponse {
	resp := make([]ProductResponse, len(products))
	for i, product := range products {
		resp[i] = NewProductResponse(product)
	}
	return resp
}

type PurchaseResponse struct {
	Product      ProductResponse `json:"product"`
	ClientSecret string          `json:"clientSecret"`
}

type PurchaseSuccessResponse struct {
	Success     bool            `json:"success"`
	Product     ProductResponse `json:"product"`
	DownloadURL string          `json:"downloadUrl,omitempty"`
	RetryURL    string          `json:"retryUrl,omitempty"`
}

type OrderExistsResponse struct {
	Exists bool `json:"exists"`
}

type WebhookResponse struct {
	Received bool   `json:"received"`
	Status   string `json:"status"`
}

type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type SalesData struct {
	AmountInCents int64  `json:"amountInCents"`
	Amount        string `json:"amount"`
	NumberOfSales int64  `json:"numberOfSales"`
}

type UsersData struct {
	UserCount                  int64  `json:"userCount"`
	AverageValuePerUserInCents int64  `json:"averageValuePerUserInCents"`
	AverageValuePerUser        string `json:"averageValuePerUser"`
}

type ProductsData struct {
	ActiveCount   int64 `json:"activeCount"`
	InactiveCount int64 `json:"inactiveCount"`
}

type DashboardResponse struct {
	Sales    SalesData    `json:"sales"`
	Users    UsersData    `json:"users"`
	Products ProductsData `json:"products"`
}

type AdminProductResponse struct {
	ProductResponse
	FilePath string `json:"filePath"`
}

type AvailabilityRequest struct {
	IsAvailableForPurchase bool `json:"isAvailableForPurchase"`
}

type OrderResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"productId"`
	ProductName      string    `json:"productName"`
	UserID           string    `json:"userId"`
	UserEmail        string    `json:"userEmail"`
	PricePaidInCents int64     `json:"pricePaidInCents"`
	PricePaid        string    `json:"pricePaid"`
	CreatedAt        time.Time `json:"createdAt"`
}

func NewOrderResponse(order *model.Order) OrderResponse {
	return OrderResponse{
		ID:               order.ID,
		ProductID:        order.ProductID,
		ProductName:      order.Product.Name,
		UserID:           order.UserID,
		UserEmail:        order.User.Email,
		PricePaidInCents: order.PricePaidInCents,
		PricePaid:        money.FormatCents(order.PricePaidInCents),
		CreatedAt:        order.CreatedAt,
	}
}

type UserResponse struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	OrderCount       int64  `json:"orderCount"`
	TotalPaidInCents int64  `json:"totalPaidInCents"`
	TotalPaid        string `json:"totalPaid"`
}
