package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"serviq/internal/domain"
	"serviq/internal/service"
)

// @Summary Get invoice settings
// @Tags settings
// @Produce json
// @Success 200 {object} domain.InvoiceSettings
// @Router /settings [get]
func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, s.settings.Get(c))
}

// @Summary Replace invoice settings
// @Tags settings
// @Accept json
// @Produce json
// @Param input body domain.InvoiceSettings true "Settings"
// @Success 200 {object} domain.InvoiceSettings
// @Failure 400 {object} map[string]string
// @Router /settings [put]
func (s *Server) replaceSettings(c *gin.Context) {
	var req domain.InvoiceSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	st, err := s.settings.Replace(c, req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary Update company details
// @Tags settings
// @Accept json
// @Produce json
// @Param input body service.Branding true "Branding"
// @Success 200 {object} domain.InvoiceSettings
// @Failure 400 {object} map[string]string
// @Router /settings/branding [put]
func (s *Server) updateBranding(c *gin.Context) {
	var req service.Branding
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	st, err := s.settings.UpdateBranding(c, req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary Update display toggles and texts
// @Tags settings
// @Accept json
// @Produce json
// @Param input body service.Display true "Display"
// @Success 200 {object} domain.InvoiceSettings
// @Router /settings/display [put]
func (s *Server) updateDisplay(c *gin.Context) {
	var req service.Display
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	st, err := s.settings.UpdateDisplay(c, req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary Update theme and font
// @Tags settings
// @Accept json
// @Produce json
// @Param input body service.Appearance true "Appearance"
// @Success 200 {object} domain.InvoiceSettings
// @Failure 400 {object} map[string]string
// @Router /settings/appearance [put]
func (s *Server) updateAppearance(c *gin.Context) {
	var req service.Appearance
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	st, err := s.settings.UpdateAppearance(c, req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary Update the gift promotion
// @Tags settings
// @Accept json
// @Produce json
// @Param input body domain.PromotionSetting true "Promotion"
// @Success 200 {object} domain.InvoiceSettings
// @Failure 400 {object} map[string]string
// @Router /settings/promotion [put]
func (s *Server) updatePromotion(c *gin.Context) {
	var req domain.PromotionSetting
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	st, err := s.settings.UpdatePromotion(c, req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary List design templates
// @Tags settings
// @Produce json
// @Success 200 {array} service.Template
// @Router /settings/templates [get]
func (s *Server) listTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, service.Templates())
}

// @Summary Apply a design template
// @Tags settings
// @Produce json
// @Param name path string true "Template name"
// @Success 200 {object} domain.InvoiceSettings
// @Failure 400 {object} map[string]string
// @Router /settings/template/{name} [post]
func (s *Server) applyTemplate(c *gin.Context) {
	st, err := s.settings.ApplyTemplate(c, c.Param("name"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary Preview unsaved settings on a sample order
// @Tags settings
// @Accept json
// @Produce json
// @Param input body domain.InvoiceSettings true "Settings"
// @Success 200 {object} service.InvoiceView
// @Router /settings/preview [post]
func (s *Server) previewSettings(c *gin.Context) {
	var req domain.InvoiceSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	v, err := s.invoices.PreviewView(c, req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
