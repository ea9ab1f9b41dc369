package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/storefront/internal/ad/application"
	adDomain "github.com/davicafu/storefront/internal/ad/domain"
	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	"github.com/davicafu/storefront/internal/shared/infra/http/middleware"
	"github.com/davicafu/storefront/pkg/utils"
)

type AdHandler struct {
	service *application.AdService
}

func NewAdHandler(service *application.AdService) *AdHandler {
	return &AdHandler{service: service}
}

type adRequest struct {
	Image       *string `json:"image"`
	Description *string `json:"description"`
	Enable      *string `json:"enable" binding:"omitempty,oneof=enabled disabled"`
}

var (
	errAdImage       = sharedDomain.BadRequest("Please enter ad image")
	errAdDescription = sharedDomain.BadRequest("Please enter ad description")
)

func (h *AdHandler) GetAds(c *gin.Context) {
	page, err := h.service.ListAds(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendPage(c, page)
}

func (h *AdHandler) GetNewCollection(c *gin.Context) {
	ads, err := h.service.NewCollection(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"count": len(ads), "ads": ads})
}

func (h *AdHandler) GetPopular(c *gin.Context) {
	ads, err := h.service.Popular(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"count": len(ads), "ads": ads})
}

// GetAllAds GET /allads y GET /alladsad
func (h *AdHandler) GetAllAds(c *gin.Context) {
	page, err := h.service.ListAll(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendPage(c, page)
}

func (h *AdHandler) GetAd(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	ad, err := h.service.GetAd(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"ad": ad})
}

// CreateAd POST /ad/new, cualquier usuario autenticado.
func (h *AdHandler) CreateAd(c *gin.Context) {
	var req adRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	switch {
	case req.Image == nil || *req.Image == "":
		_ = c.Error(errAdImage)
		return
	case req.Description == nil || *req.Description == "":
		_ = c.Error(errAdDescription)
		return
	}

	principal, _ := middleware.CurrentPrincipal(c)
	ad, err := h.service.CreateAd(c.Request.Context(), principal.ID, *req.Image, *req.Description)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, gin.H{"ad": ad})
}

func (h *AdHandler) UpdateAd(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req adRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	ad, err := h.service.UpdateAd(c.Request.Context(), id, adDomain.Patch{
		Image: req.Image, Description: req.Description, Enable: req.Enable,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"ad": ad})
}

func (h *AdHandler) DeleteAd(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteAd(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendMessage(c, http.StatusOK, "Ad deleted successfully")
}

func sendPage(c *gin.Context, page *application.Page) {
	utils.SendSuccess(c, http.StatusOK, gin.H{
		"count":   len(page.Ads),
		"adCount": page.Total,
		"ads":     page.Ads,
	})
}
