package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zeecare/hospital-system/internal/api/metrics"
	"github.com/zeecare/hospital-system/internal/core/domain"
	"github.com/zeecare/hospital-system/internal/core/ports"
)

type sendMessageRequest struct {
	FirstName string `json:"firstName" validate:"required,min=3"`
	LastName  string `json:"lastName"  validate:"required,min=3"`
	Email     string `json:"email"     validate:"required,email"`
	Phone     string `json:"phone"     validate:"required,len=11"`
	Message   string `json:"message"   validate:"required,min=10"`
}

type messagesResponse struct {
	Success  bool             `json:"success"`
	Messages []domain.Message `json:"messages"`
}

// MessageHandler handles the public contact form and its dashboard listing.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Send stores a contact-form submission.
//
// @Summary      Send a contact message
// @Tags         message
// @Accept       json
// @Produce      json
// @Param        body  body      sendMessageRequest  true  "Message details"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  map[string]any
// @Router       /api/v1/message/send [post]
func (h *MessageHandler) Send(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.service.Send(c.Request().Context(), ports.SendMessageInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
	}); err != nil {
		return err
	}

	metrics.MessagesReceivedTotal.Inc()
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "message sent successfully"})
}

// List returns every contact message for the dashboard.
//
// @Summary      List contact messages
// @Tags         message
// @Produce      json
// @Success      200  {object}  messagesResponse
// @Router       /api/v1/message/getall [get]
func (h *MessageHandler) List(c echo.Context) error {
	messages, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messagesResponse{Success: true, Messages: messages})
}
