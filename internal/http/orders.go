package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"serviq/internal/dashboard"
	"serviq/internal/domain"
	"serviq/internal/service"
)

type orderReq struct {
	domain.Customer
	Items    []domain.OrderItem `json:"items" binding:"required"`
	Status   domain.OrderStatus `json:"status"`
	Discount *float64           `json:"discount"`
}

func (r orderReq) input() service.OrderInput {
	return service.OrderInput{Customer: r.Customer, Items: r.Items, Status: r.Status, Discount: r.Discount}
}

// @Summary List orders
// @Description Newest first.
// @Tags orders
// @Produce json
// @Param status query string false "in-progress, completed or cancelled"
// @Param q query string false "Order number, customer name or phone"
// @Success 200 {array} domain.Order
// @Failure 400 {object} map[string]string
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	list, err := s.orders.List(c, service.OrderFilter{
		Status: domain.OrderStatus(c.Query("status")),
		Query:  c.Query("q"),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Param input body orderReq true "Order"
// @Success 201 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Router /orders [post]
func (s *Server) createOrder(c *gin.Context) {
	var req orderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, err := s.orders.CreateOrder(c, req.input())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

type batchReq struct {
	Orders []orderReq `json:"orders" binding:"required"`
}

// @Summary Create several orders
// @Description All orders start in progress; nothing is saved if one is invalid.
// @Tags orders
// @Accept json
// @Produce json
// @Param input body batchReq true "Orders"
// @Success 201 {array} domain.Order
// @Failure 400 {object} map[string]string
// @Router /orders/batch [post]
func (s *Server) createBatch(c *gin.Context) {
	var req batchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	inputs := make([]service.OrderInput, 0, len(req.Orders))
	for _, o := range req.Orders {
		inputs = append(inputs, o.input())
	}
	orders, err := s.orders.CreateBatch(c, inputs)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, orders)
}

type importReq struct {
	Text string `json:"text"`
}

// @Summary Import orders from free text
// @Tags orders
// @Accept json
// @Produce json
// @Param input body importReq true "Text"
// @Success 201 {array} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /extract/batch [post]
func (s *Server) importText(c *gin.Context) {
	var req importReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	orders, err := s.orders.ImportText(c, req.Text)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, orders)
}

// @Summary Get order by id
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	o, err := s.orders.GetByID(c, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary Update order
// @Description Keeps id, order number and order date.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param input body orderReq true "Order"
// @Success 200 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [put]
func (s *Server) updateOrder(c *gin.Context) {
	var req orderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, err := s.orders.UpdateOrder(c, c.Param("id"), req.input())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary Delete order
// @Tags orders
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [delete]
func (s *Server) deleteOrder(c *gin.Context) {
	if err := s.orders.Delete(c, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel order
// @Description Only in-progress orders can be cancelled.
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/cancel [post]
func (s *Server) cancelOrder(c *gin.Context) {
	o, err := s.orders.CancelOrder(c, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

type statusReq struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

// @Summary Set order status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param input body statusReq true "Status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id}/status [put]
func (s *Server) setOrderStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, err := s.orders.SetStatus(c, c.Param("id"), req.Status)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary Dashboard summary
// @Tags dashboard
// @Produce json
// @Success 200 {object} dashboard.Summary
// @Router /dashboard [get]
func (s *Server) getDashboard(c *gin.Context) {
	orders, err := s.orders.List(c, service.OrderFilter{})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard.Compute(orders))
}
