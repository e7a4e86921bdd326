package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"serviq/internal/domain"
	"serviq/internal/invoice"
	"serviq/internal/service"
)

type createDraftReq struct {
	// OrderID opens an existing order for editing; empty starts a new order.
	OrderID string `json:"orderId"`
}

// @Summary Open an order form
// @Tags drafts
// @Accept json
// @Produce json
// @Param input body createDraftReq false "Order to edit"
// @Success 201 {object} service.Draft
// @Failure 404 {object} map[string]string
// @Router /drafts [post]
func (s *Server) createDraft(c *gin.Context) {
	var req createDraftReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
	}
	var (
		d   service.Draft
		err error
	)
	if req.OrderID != "" {
		d, err = s.drafts.EditDraft(c, req.OrderID)
	} else {
		d, err = s.drafts.NewDraft(c)
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// @Summary Get draft
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} service.Draft
// @Failure 404 {object} map[string]string
// @Router /drafts/{id} [get]
func (s *Server) getDraft(c *gin.Context) {
	d, err := s.drafts.Get(c, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary Discard draft
// @Tags drafts
// @Param id path string true "Draft ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /drafts/{id} [delete]
func (s *Server) discardDraft(c *gin.Context) {
	if err := s.drafts.Discard(c, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Add an empty row
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} service.Draft
// @Failure 404 {object} map[string]string
// @Router /drafts/{id}/items [post]
func (s *Server) addDraftItem(c *gin.Context) {
	d, err := s.drafts.AddItem(c, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary Update a row
// @Description Fields left out are not changed. The gift line is reconciled afterwards.
// @Tags drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param itemId path string true "Item ID"
// @Param input body service.ItemPatch true "Patch"
// @Success 200 {object} service.Draft
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /drafts/{id}/items/{itemId} [patch]
func (s *Server) updateDraftItem(c *gin.Context) {
	var patch service.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	d, err := s.drafts.UpdateItem(c, c.Param("id"), c.Param("itemId"), patch)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary Remove a row
// @Description The last row cannot be removed.
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} service.Draft
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /drafts/{id}/items/{itemId} [delete]
func (s *Server) removeDraftItem(c *gin.Context) {
	d, err := s.drafts.RemoveItem(c, c.Param("id"), c.Param("itemId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary Set customer
// @Tags drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param input body domain.Customer true "Customer"
// @Success 200 {object} service.Draft
// @Failure 400 {object} map[string]string
// @Router /drafts/{id}/customer [put]
func (s *Server) setDraftCustomer(c *gin.Context) {
	var req domain.Customer
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	d, err := s.drafts.SetCustomer(c, c.Param("id"), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type discountReq struct {
	Discount float64 `json:"discount"`
}

// @Summary Set discount percentage
// @Tags drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param input body discountReq true "Discount"
// @Success 200 {object} service.Draft
// @Failure 400 {object} map[string]string
// @Router /drafts/{id}/discount [put]
func (s *Server) setDraftDiscount(c *gin.Context) {
	var req discountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	d, err := s.drafts.SetDiscount(c, c.Param("id"), req.Discount)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary Set status
// @Tags drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param input body statusReq true "Status"
// @Success 200 {object} service.Draft
// @Failure 400 {object} map[string]string
// @Router /drafts/{id}/status [put]
func (s *Server) setDraftStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	d, err := s.drafts.SetStatus(c, c.Param("id"), req.Status)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary Fill the draft from free text
// @Tags drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param input body importReq true "Text"
// @Success 200 {object} service.Draft
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /drafts/{id}/extract [post]
func (s *Server) extractIntoDraft(c *gin.Context) {
	var req importReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	d, err := s.drafts.ApplyExtraction(c, c.Param("id"), req.Text)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type previewResp struct {
	Order  domain.Order   `json:"order"`
	Totals invoice.Totals `json:"totals"`
}

// @Summary Preview draft totals
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} previewResp
// @Failure 404 {object} map[string]string
// @Router /drafts/{id}/preview [get]
func (s *Server) previewDraft(c *gin.Context) {
	o, t, err := s.drafts.Preview(c, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, previewResp{Order: o, Totals: t})
}

// @Summary Submit draft
// @Description Creates a new order (201) or saves the edited one (200).
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} domain.Order
// @Success 201 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /drafts/{id}/submit [post]
func (s *Server) submitDraft(c *gin.Context) {
	o, created, err := s.drafts.Submit(c, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if created {
		c.JSON(http.StatusCreated, o)
		return
	}
	c.JSON(http.StatusOK, o)
}
