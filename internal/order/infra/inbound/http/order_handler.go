package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/storefront/internal/order/application"
	orderDomain "github.com/davicafu/storefront/internal/order/domain"
	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	"github.com/davicafu/storefront/internal/shared/infra/http/middleware"
	"github.com/davicafu/storefront/pkg/utils"
)

// OrderHandler encapsula los endpoints HTTP de pedidos.
type OrderHandler struct {
	service *application.OrderService
}

func NewOrderHandler(service *application.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// --- DTOs ---

type orderItemRequest struct {
	Name     string    `json:"name" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,gte=1"`
	Image    string    `json:"image"`
	Price    float64   `json:"price" binding:"gte=0"`
	Product  uuid.UUID `json:"product" binding:"required"`
}

type shippingInfoRequest struct {
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PhoneNo    string `json:"phoneNo" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
}

type paymentInfoRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type newOrderRequest struct {
	OrderItems    []orderItemRequest  `json:"orderItems" binding:"required,min=1,dive"`
	ShippingInfo  shippingInfoRequest `json:"shippingInfo"`
	ItemsPrice    float64             `json:"itemsPrice" binding:"gte=0"`
	TaxPrice      float64             `json:"taxPrice" binding:"gte=0"`
	ShippingPrice float64             `json:"shippingPrice" binding:"gte=0"`
	TotalPrice    float64             `json:"totalPrice" binding:"gte=0"`
	PaymentInfo   paymentInfoRequest  `json:"paymentInfo"`
}

func (r newOrderRequest) toInput() application.NewOrderInput {
	items := make([]orderDomain.OrderItem, 0, len(r.OrderItems))
	for _, it := range r.OrderItems {
		items = append(items, orderDomain.OrderItem{
			Name: it.Name, Quantity: it.Quantity, Image: it.Image, Price: it.Price, Product: it.Product,
		})
	}
	return application.NewOrderInput{
		OrderItems: items,
		ShippingInfo: orderDomain.ShippingInfo{
			Address:    r.ShippingInfo.Address,
			City:       r.ShippingInfo.City,
			PhoneNo:    r.ShippingInfo.PhoneNo,
			PostalCode: r.ShippingInfo.PostalCode,
		},
		PaymentInfo:   orderDomain.PaymentInfo{ID: r.PaymentInfo.ID, Status: r.PaymentInfo.Status},
		ItemsPrice:    r.ItemsPrice,
		TaxPrice:      r.TaxPrice,
		ShippingPrice: r.ShippingPrice,
		TotalPrice:    r.TotalPrice,
	}
}

type updateOrderRequest struct {
	OrderStatus string `json:"orderStatus" binding:"required"`
	OrderNotes  string `json:"orderNotes"`
}

var errInvalidRange = sharedDomain.BadRequest("Please enter a valid date range")

// --- Endpoints ---

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req newOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	principal, _ := middleware.CurrentPrincipal(c)
	order, err := h.service.CreateOrder(c.Request.Context(), principal.ID, req.toInput())
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"order": order})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	order, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"order": order})
}

func (h *OrderHandler) MyOrders(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	orders, err := h.service.MyOrders(c.Request.Context(), principal.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) AllOrders(c *gin.Context) {
	page, err := h.service.AllOrders(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{
		"count":       len(page.Orders),
		"totalAmount": page.TotalAmount,
		"orders":      page.Orders,
	})
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	if _, err := h.service.UpdateOrder(c.Request.Context(), id, req.OrderStatus, req.OrderNotes); err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{})
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteOrder(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{})
}

// OrderStats GET /admin/orders/stats?from=2024-05-01&to=2024-05-31
// Sin parámetros cubre los últimos 30 días.
func (h *OrderHandler) OrderStats(c *gin.Context) {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)

	var err error
	if raw := c.Query("from"); raw != "" {
		if from, err = parseDay(raw); err != nil {
			_ = c.Error(errInvalidRange)
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = parseDay(raw); err != nil {
			_ = c.Error(errInvalidRange)
			return
		}
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	if to.Before(from) {
		_ = c.Error(errInvalidRange)
		return
	}

	stats, err := h.service.DailyRevenue(c.Request.Context(), from, to)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"from": from, "to": to, "stats": stats})
}

func parseDay(raw string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", raw, time.UTC)
}
