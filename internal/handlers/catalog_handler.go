package handler

import (
	"net/http"
	"time"

	"storefront-billing-backend/internal/models"
	"storefront-billing-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogHandler serves the storefront catalog and the admin CRUD panels for
// products and service offerings.
type CatalogHandler struct {
	productRepo *repository.ProductRepository
	serviceRepo *repository.ServiceOfferingRepository
}

func NewCatalogHandler(productRepo *repository.ProductRepository, serviceRepo *repository.ServiceOfferingRepository) *CatalogHandler {
	return &CatalogHandler{productRepo: productRepo, serviceRepo: serviceRepo}
}

type catalogEntryPayload struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	HSNSAC      string          `json:"hsn_sac"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	ImageURL    string          `json:"image_url"`
}

type catalogEntryUpdate struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	HSNSAC      *string          `json:"hsn_sac"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
	ImageURL    *string          `json:"image_url"`
	InStock     *bool            `json:"in_stock"`
	Active      *bool            `json:"active"`
}

func (p *catalogEntryUpdate) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Price != nil {
		fields["price"] = *p.Price
	}
	if p.HSNSAC != nil {
		fields["hsn_sac"] = *p.HSNSAC
	}
	if p.TaxRate != nil {
		fields["tax_rate"] = *p.TaxRate
	}
	if p.ImageURL != nil {
		fields["image_url"] = *p.ImageURL
	}
	return fields
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var payload catalogEntryPayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price cannot be negative"})
		return
	}

	product := &models.Product{
		ID:          uuid.New(),
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		HSNSAC:      payload.HSNSAC,
		TaxRate:     payload.TaxRate,
		ImageURL:    payload.ImageURL,
		InStock:     true,
		CreatedAt:   time.Now(),
	}
	if err := h.productRepo.Create(c.Request.Context(), product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.productRepo.List(
		c.Request.Context(),
		c.Query("search"),
		c.Query("in_stock") == "true",
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}
	product, err := h.productRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	var payload catalogEntryUpdate
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	fields := payload.fields()
	if payload.InStock != nil {
		fields["in_stock"] = *payload.InStock
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	product, err := h.productRepo.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}
	if err := h.productRepo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var payload catalogEntryPayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price cannot be negative"})
		return
	}

	svc := &models.ServiceOffering{
		ID:          uuid.New(),
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		HSNSAC:      payload.HSNSAC,
		TaxRate:     payload.TaxRate,
		ImageURL:    payload.ImageURL,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if err := h.serviceRepo.Create(c.Request.Context(), svc); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"service": svc})
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.serviceRepo.List(
		c.Request.Context(),
		c.Query("search"),
		c.Query("active") == "true",
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (h *CatalogHandler) GetService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service ID"})
		return
	}
	svc, err := h.serviceRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": svc})
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service ID"})
		return
	}

	var payload catalogEntryUpdate
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	fields := payload.fields()
	if payload.Active != nil {
		fields["active"] = *payload.Active
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	svc, err := h.serviceRepo.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": svc})
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service ID"})
		return
	}
	if err := h.serviceRepo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}
