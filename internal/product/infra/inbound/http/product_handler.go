package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/storefront/internal/product/application"
	productDomain "github.com/davicafu/storefront/internal/product/domain"
	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	"github.com/davicafu/storefront/internal/shared/infra/http/middleware"
	"github.com/davicafu/storefront/pkg/utils"
)

// ProductHandler encapsula los endpoints HTTP relacionados con Product.
type ProductHandler struct {
	service *application.ProductService
}

func NewProductHandler(service *application.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

type imageRequest struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// Punteros para distinguir "no enviado" de "valor cero".
type productRequest struct {
	Name     *string        `json:"name" binding:"omitempty,max=100"`
	Price    *float64       `json:"price" binding:"omitempty,gte=0"`
	NewPrice *float64       `json:"new_price" binding:"omitempty,gte=0"`
	Ratings  *float64       `json:"ratings" binding:"omitempty,gte=0,lte=5"`
	Images   []imageRequest `json:"images"`
	Category *string        `json:"category" binding:"omitempty,oneof=Cow Sheep Chicken Fish Camel Kabab"`
	Stock    *int           `json:"stock" binding:"omitempty,gte=0"`
	Enable   *string        `json:"enable"`
}

var (
	errProductName     = sharedDomain.BadRequest("Please enter product name")
	errProductCategory = sharedDomain.BadRequest("Please select product category")
)

func (r productRequest) toPatch() productDomain.Patch {
	patch := productDomain.Patch{
		Name: r.Name, Price: r.Price, NewPrice: r.NewPrice, Ratings: r.Ratings,
		Category: r.Category, Stock: r.Stock, Enable: r.Enable,
	}
	if r.Images != nil {
		patch.Images = make([]productDomain.Image, 0, len(r.Images))
		for _, img := range r.Images {
			patch.Images = append(patch.Images, productDomain.Image{PublicID: img.PublicID, URL: img.URL})
		}
	}
	return patch
}

// --- Listados ---

// GetProducts GET /products?keyword=&category=&price[gte]=&page=
func (h *ProductHandler) GetProducts(c *gin.Context) {
	page, err := h.service.ListProducts(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendPage(c, page)
}

// GetNewCollection GET /newcollection
func (h *ProductHandler) GetNewCollection(c *gin.Context) {
	products, err := h.service.NewCollection(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"count": len(products), "products": products})
}

// GetAllProducts GET /allproducts y POST /admin/allproducts
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	page, err := h.service.ListAll(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendPage(c, page)
}

// GetPopular GET /popular
func (h *ProductHandler) GetPopular(c *gin.Context) {
	products, err := h.service.Popular(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"count": len(products), "products": products})
}

// --- CRUD ---

// GetProduct GET /product/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"product": product})
}

// CreateProduct POST /admin/product/new
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	switch {
	case req.Name == nil || *req.Name == "":
		_ = c.Error(errProductName)
		return
	case req.Category == nil:
		_ = c.Error(errProductCategory)
		return
	}

	principal, _ := middleware.CurrentPrincipal(c)
	product, err := h.service.CreateProduct(c.Request.Context(), principal.ID, req.toPatch())
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct PUT /admin/product/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	product, err := h.service.UpdateProduct(c.Request.Context(), id, req.toPatch())
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"product": product})
}

// DeleteProduct DELETE /admin/product/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendMessage(c, http.StatusOK, "Product deleted successfully")
}

func sendPage(c *gin.Context, page *application.Page) {
	utils.SendSuccess(c, http.StatusOK, gin.H{
		"count":        len(page.Products),
		"productCount": page.Total,
		"products":     page.Products,
	})
}
