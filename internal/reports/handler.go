package reports

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/esepkerala/registration-backend/internal/auth"
	"github.com/esepkerala/registration-backend/internal/registration"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// ExportRegistrations streams the filtered export as a file download.
// GET /admin/registrations/export?category=all&panchayath=all&status=all&format=csv
func (h *Handler) ExportRegistrations(c *gin.Context) {
	filter := registration.Filter{
		CategoryID:   c.DefaultQuery("category", "all"),
		PanchayathID: c.DefaultQuery("panchayath", "all"),
		Status:       c.DefaultQuery("status", "all"),
	}
	format := c.DefaultQuery("format", FormatCSV)

	var adminID *uint
	if v, exists := c.Get("admin"); exists {
		admin := v.(auth.Admin)
		adminID = &admin.ID
	}

	data, filename, mimeType, err := h.service.ExportRegistrations(
		c.Request.Context(), filter, format, adminID, c.GetString("client_ip"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, mimeType, data)
}
