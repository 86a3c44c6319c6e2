package handler

import (
	"net/http"
	"strconv"

	"storefront-billing-backend/internal/repository"
	"storefront-billing-backend/internal/services/billing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvoiceHandler struct {
	compiler    *billing.Compiler
	invoiceRepo *repository.InvoiceRepository
}

func NewInvoiceHandler(compiler *billing.Compiler, invoiceRepo *repository.InvoiceRepository) *InvoiceHandler {
	return &InvoiceHandler{compiler: compiler, invoiceRepo: invoiceRepo}
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req billing.CreateInvoiceRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	inv, err := h.compiler.CreateInvoice(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"invoice": inv})
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
		return
	}

	inv, err := h.invoiceRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoice": inv})
}

func (h *InvoiceHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	if limit < 1 || limit > 100 {
		limit = 25
	}

	invoices, nextCursor, hasMore, err := h.invoiceRepo.List(
		c.Request.Context(),
		c.Query("status"),
		c.Query("type"),
		c.Query("cursor"),
		limit,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoices":    invoices,
		"next_cursor": nextCursor,
		"has_more":    hasMore,
	})
}

// Update corrects header fields (status, addresses, presentation overrides).
// The invoice number and computed totals are not editable through this path.
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
		return
	}

	var payload struct {
		Status        *string `json:"status"`
		PlaceOfSupply *string `json:"place_of_supply"`
		AmountInWords *string `json:"amount_in_words"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	fields := map[string]interface{}{}
	if payload.Status != nil {
		fields["status"] = *payload.Status
	}
	if payload.PlaceOfSupply != nil {
		fields["place_of_supply"] = *payload.PlaceOfSupply
	}
	if payload.AmountInWords != nil {
		fields["amount_in_words"] = *payload.AmountInWords
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	inv, err := h.invoiceRepo.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoice": inv})
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
		return
	}

	if err := h.invoiceRepo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "invoice deleted"})
}
