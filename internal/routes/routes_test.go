package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-billing-backend/internal/logger"
	"storefront-billing-backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, testutil.NewDB(t), logger.NewNop())
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateInvoiceEndpoint(t *testing.T) {
	r := newRouter(t)

	payload := map[string]any{
		"invoice_type": "tax_invoice",
		"invoice_date": "2024-04-01T10:00:00Z",
		"billing_address": map[string]any{
			"line": "14 MG Road", "city": "Bengaluru", "state": "Karnataka",
		},
		"items": []map[string]any{{
			"description": "Solar panel 540W",
			"unit_price":  1000,
			"quantity":    2,
			"tax_rate":    18,
			"tax_type":    "cgst_sgst",
		}},
	}

	w := doJSON(t, r, http.MethodPost, "/api/invoices", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Invoice struct {
			InvoiceNo     string `json:"invoice_no"`
			GrandTotal    string `json:"grand_total"`
			AmountInWords string `json:"amount_in_words"`
		} `json:"invoice"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Invoice.InvoiceNo, 10)
	assert.Equal(t, "2360.00", resp.Invoice.GrandTotal)
	assert.Equal(t, "Two Thousand Three Hundred and Sixty Rupees", resp.Invoice.AmountInWords)
}

func TestCreateInvoiceEndpointValidation(t *testing.T) {
	r := newRouter(t)

	payload := map[string]any{
		"invoice_type": "tax_invoice",
		"items": []map[string]any{{
			"description": "bad line",
			"unit_price":  100,
			"quantity":    0,
			"tax_rate":    18,
			"tax_type":    "cgst_sgst",
		}},
	}

	w := doJSON(t, r, http.MethodPost, "/api/invoices", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Code)
}

func TestProductCRUD(t *testing.T) {
	r := newRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/products", map[string]any{
		"name":     "Inverter",
		"price":    32000,
		"hsn_sac":  "8504",
		"tax_rate": 18,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Product struct {
			ID string `json:"id"`
		} `json:"product"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPut, "/api/products/"+created.Product.ID, map[string]any{
		"in_stock": false,
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/products?in_stock=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Products []json.RawMessage `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list.Products)

	w = doJSON(t, r, http.MethodDelete, "/api/products/"+created.Product.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/products/%s", created.Product.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContactForm(t *testing.T) {
	r := newRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/contact", map[string]any{
		"name":    "Asha Rao",
		"email":   "asha@example.com",
		"message": "Do you deliver to Mysuru?",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/contact", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Messages []struct {
			Email string `json:"email"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Messages, 1)
	assert.Equal(t, "asha@example.com", list.Messages[0].Email)
}

func TestAdminCRUD(t *testing.T) {
	r := newRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/admins", map[string]any{
		"email": "ops@example.com",
		"name":  "Ops",
		"role":  "owner",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/admins", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Admins []struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"admins"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Admins, 1)
	assert.Equal(t, "owner", list.Admins[0].Role)
}
