package outreach

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smart-email-sender/internal/compose"
	"smart-email-sender/internal/mailer"
	"smart-email-sender/internal/shared/server/middleware"
	"smart-email-sender/internal/shared/server/respond"
)

type inquiryForm struct {
	To                string `form:"to" binding:"required,email"`
	CompanyName       string `form:"companyName" binding:"required"`
	HiringManagerName string `form:"hiringManagerName" binding:"required"`
	Body              string `form:"body" binding:"required"`
}

type applicationForm struct {
	To       string `form:"to" binding:"required,email"`
	JobTitle string `form:"jobTitle" binding:"required"`
	Body     string `form:"body" binding:"required"`
}

// SendResponse acknowledges a delivered email.
type SendResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the send routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/send/email", h.sendInquiry)
	rg.POST("/send_job/email", h.sendApplication)
}

func (h *Handler) sendInquiry(c *gin.Context) {
	c.Set(middleware.TemplateKey, compose.TemplateInquiry)

	var form inquiryForm
	if err := c.ShouldBind(&form); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "to, companyName, hiringManagerName and body are required", respond.ValidationDetails(err))
		return
	}

	err := h.Svc.SendInquiry(c.Request.Context(), InquiryRequest{
		To:                form.To,
		CompanyName:       form.CompanyName,
		HiringManagerName: form.HiringManagerName,
		Body:              form.Body,
	})
	if err != nil {
		h.sendError(c, err)
		return
	}
	respond.OK(c, SendResponse{Status: "sent", Message: "Email sent successfully!"})
}

func (h *Handler) sendApplication(c *gin.Context) {
	c.Set(middleware.TemplateKey, compose.TemplateApplication)

	var form applicationForm
	if err := c.ShouldBind(&form); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "to, jobTitle and body are required", respond.ValidationDetails(err))
		return
	}

	err := h.Svc.SendApplication(c.Request.Context(), ApplicationRequest{
		To:       form.To,
		JobTitle: form.JobTitle,
		Body:     form.Body,
	})
	if err != nil {
		h.sendError(c, err)
		return
	}
	respond.OK(c, SendResponse{Status: "sent", Message: "Email sent successfully!"})
}

func (h *Handler) sendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, mailer.ErrTransport):
		respond.Error(c, http.StatusInternalServerError, "send_failed", "Failed to send email: "+err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", "Failed to send email: "+err.Error(), nil)
	}
}
