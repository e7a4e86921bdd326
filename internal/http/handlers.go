package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"serviq/internal/domain"
	"serviq/internal/extract"
	"serviq/internal/invoice"
	"serviq/internal/repository"
	"serviq/internal/service"
	"serviq/internal/store"
)

// Services зависимости HTTP-сервера
type Services struct {
	Products *service.ProductService
	Orders   *service.OrderService
	Drafts   *service.DraftService
	Settings *service.SettingsService
	Invoices *service.InvoiceService
}

type Server struct {
	engine   *gin.Engine
	log      *zap.Logger
	products *service.ProductService
	orders   *service.OrderService
	drafts   *service.DraftService
	settings *service.SettingsService
	invoices *service.InvoiceService
}

func NewServer(svc Services, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery())
	s := &Server{
		engine:   r,
		log:      log,
		products: svc.Products,
		orders:   svc.Orders,
		drafts:   svc.Drafts,
		settings: svc.Settings,
		invoices: svc.Invoices,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")
	{
		products := v1.Group("/products")
		products.POST("", s.createProduct)
		products.GET(":id", s.getProduct)
		products.PUT(":id", s.updateProduct)
		products.DELETE(":id", s.deleteProduct)
		products.GET("", s.listProducts)

		orders := v1.Group("/orders")
		orders.GET("", s.listOrders)
		orders.POST("", s.createOrder)
		orders.POST("batch", s.createBatch)
		orders.GET(":id", s.getOrder)
		orders.PUT(":id", s.updateOrder)
		orders.DELETE(":id", s.deleteOrder)
		orders.POST(":id/cancel", s.cancelOrder)
		orders.PUT(":id/status", s.setOrderStatus)
		orders.GET(":id/invoice", s.getInvoice)
		orders.GET(":id/invoice.png", s.renderInvoice(invoice.FormatPNG))
		orders.GET(":id/invoice.pdf", s.renderInvoice(invoice.FormatPDF))

		v1.POST("/exports", s.exportInvoices)
		v1.POST("/extract/batch", s.importText)

		drafts := v1.Group("/drafts")
		drafts.POST("", s.createDraft)
		drafts.GET(":id", s.getDraft)
		drafts.DELETE(":id", s.discardDraft)
		drafts.POST(":id/items", s.addDraftItem)
		drafts.PATCH(":id/items/:itemId", s.updateDraftItem)
		drafts.DELETE(":id/items/:itemId", s.removeDraftItem)
		drafts.PUT(":id/customer", s.setDraftCustomer)
		drafts.PUT(":id/discount", s.setDraftDiscount)
		drafts.PUT(":id/status", s.setDraftStatus)
		drafts.POST(":id/extract", s.extractIntoDraft)
		drafts.GET(":id/preview", s.previewDraft)
		drafts.POST(":id/submit", s.submitDraft)

		settings := v1.Group("/settings")
		settings.GET("", s.getSettings)
		settings.PUT("", s.replaceSettings)
		settings.PUT("branding", s.updateBranding)
		settings.PUT("display", s.updateDisplay)
		settings.PUT("appearance", s.updateAppearance)
		settings.PUT("promotion", s.updatePromotion)
		settings.GET("templates", s.listTemplates)
		settings.POST("template/:name", s.applyTemplate)
		settings.POST("preview", s.previewSettings)

		v1.GET("/dashboard", s.getDashboard)
	}
}

// requestLogger пишет одну строку на запрос
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Error("request", fields...)
			return
		}
		log.Info("request", fields...)
	}
}

// Product handlers
type productReq struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
}

// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param input body productReq true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Router /products [post]
func (s *Server) createProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.products.Create(c, domain.Product{Name: req.Name, Price: req.Price})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	p, err := s.products.GetByID(c, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Update product
// @Description Orders keep their own name and price snapshots.
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param input body productReq true "Update"
// @Success 200 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.products.Update(c, domain.Product{ID: c.Param("id"), Name: req.Name, Price: req.Price})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Delete product
// @Tags products
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.products.Delete(c, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List products
// @Tags products
// @Produce json
// @Param q query string false "Name contains"
// @Param min_price query number false "Min price"
// @Param max_price query number false "Max price"
// @Success 200 {array} domain.Product
// @Failure 400 {object} map[string]string
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	var f store.ProductFilter
	if q := c.Query("q"); q != "" {
		f.NameSubstring = q
	}
	if v := c.Query("min_price"); v != "" {
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &x
		}
	}
	if v := c.Query("max_price"); v != "" {
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &x
		}
	}
	list, err := s.products.List(c, f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// fail отвечает ошибкой с кодом из mapErrorToStatus
func (s *Server) fail(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	body := gin.H{"error": err.Error()}
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		body["field"] = ve.Field
	}
	c.JSON(status, body)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, extract.ErrEmptyPrompt),
		errors.Is(err, invoice.ErrUnknownPlatform):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, extract.ErrNoMatchingItems),
		errors.Is(err, extract.ErrNoValidOrders):
		return http.StatusUnprocessableEntity
	case errors.Is(err, extract.ErrGeneratorFailure),
		errors.Is(err, extract.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
