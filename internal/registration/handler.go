package registration

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrAddressRequired) ||
		errors.Is(err, ErrInvalidMobile) ||
		errors.Is(err, ErrPanchayathRequired) ||
		errors.Is(err, ErrWardRequired) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrPanchayathNotFound)
}

// Submit handles the public registration form.
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reg, cat, err := h.service.Submit(c.Request.Context(), Draft{
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Address:      req.Address,
		MobileNumber: req.MobileNumber,
		PanchayathID: req.PanchayathID,
		Ward:         req.Ward,
		AgentPro:     req.AgentPro,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateMobile):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case isValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit registration"})
		}
		return
	}

	c.JSON(http.StatusCreated, SubmitResponse{
		CustomerID: reg.CustomerID,
		Status:     reg.Status,
		Category:   cat.Name,
		Fees: FeeRecap{
			ActualFee: cat.ActualFee,
			OfferFee:  cat.OfferFee,
			Discount:  cat.ActualFee - cat.OfferFee,
		},
		Details: *reg,
	})
}

// Lookup is the public status check by customer id or mobile number.
// A miss is a defined outcome, not a server error.
func (h *Handler) Lookup(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please enter a customer id or mobile number"})
		return
	}

	reg, found := h.service.Lookup(query)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no registration found with the provided details"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"registration": reg})
}

// List is the admin table with category/panchayath/status filters.
func (h *Handler) List(c *gin.Context) {
	filter := Filter{
		CategoryID:   c.DefaultQuery("category", "all"),
		PanchayathID: c.DefaultQuery("panchayath", "all"),
		Status:       c.DefaultQuery("status", "all"),
	}

	regs, err := h.service.ListFiltered(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch registrations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"registrations": regs,
		"count":         len(regs),
	})
}

// UpdateStatus approves or rejects a pending registration.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration id"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), uint(id), req.Status); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "registration " + req.Status})
}
