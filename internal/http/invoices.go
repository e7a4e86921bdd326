package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"serviq/internal/invoice"
)

var contentTypes = map[invoice.Format]string{
	invoice.FormatPNG: "image/png",
	invoice.FormatPDF: "application/pdf",
}

// @Summary Invoice of an order
// @Description Totals, QR code links and share links.
// @Tags invoices
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} service.InvoiceView
// @Failure 404 {object} map[string]string
// @Router /orders/{id}/invoice [get]
func (s *Server) getInvoice(c *gin.Context) {
	v, err := s.invoices.View(c, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// renderInvoice serves GET /orders/{id}/invoice.png and /orders/{id}/invoice.pdf.
func (s *Server) renderInvoice(f invoice.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, name, err := s.invoices.Render(c, c.Param("id"), f)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
		c.Data(http.StatusOK, contentTypes[f], data)
	}
}

type exportReq struct {
	OrderIDs     []string `json:"orderIds"`
	OrderNumbers []string `json:"orderNumbers"`
}

type exportResp struct {
	Files []string `json:"files"`
}

// @Summary Export invoices to the export directory
// @Description Orders are exported one by one; an empty body exports all orders.
// @Tags invoices
// @Accept json
// @Produce json
// @Param input body exportReq false "Orders"
// @Success 200 {object} exportResp
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /exports [post]
func (s *Server) exportInvoices(c *gin.Context) {
	var req exportReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
	}
	var (
		files []string
		err   error
	)
	if len(req.OrderNumbers) > 0 {
		files, err = s.invoices.ExportByNumbers(c, req.OrderNumbers)
	} else {
		files, err = s.invoices.ExportBatch(c, req.OrderIDs)
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, exportResp{Files: files})
}
