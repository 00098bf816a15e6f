package registration

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ==============================
// Request/Response DTOs
// ==============================

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
			return mobilePattern.MatchString(fl.Field().String())
		})
	}
}

// SubmitRequest is the public registration submission. The service validates
// again with its own messages; the binding tags only reject malformed JSON
// payloads early.
type SubmitRequest struct {
	CategoryID   uint   `json:"category_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address" binding:"required"`
	MobileNumber string `json:"mobile_number" binding:"required,mobile"`
	PanchayathID uint   `json:"panchayath_id" binding:"required"`
	Ward         string `json:"ward" binding:"required"`
	AgentPro     string `json:"agent_pro"`
}

// FeeRecap echoes the confirm-step pricing. Discount may be negative when
// the offer fee was entered above the actual fee.
type FeeRecap struct {
	ActualFee float64 `json:"actual_fee"`
	OfferFee  float64 `json:"offer_fee"`
	Discount  float64 `json:"discount"`
}

// SubmitResponse carries the generated customer id the registrant uses for
// status lookup later.
type SubmitResponse struct {
	CustomerID string       `json:"customer_id"`
	Status     string       `json:"status"`
	Category   string       `json:"category"`
	Fees       FeeRecap     `json:"fees"`
	Details    Registration `json:"registration"`
}

// UpdateStatusRequest is the admin approve/reject action.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}
