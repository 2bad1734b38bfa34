package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/message-board/internal/api/dto"
	"github.com/spec-kit/message-board/internal/auth"
	"github.com/spec-kit/message-board/internal/service"
	apperrors "github.com/spec-kit/message-board/pkg/util"
)

// MessagesHandler manages board message endpoints.
type MessagesHandler struct {
	service *service.MessageService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messageService *service.MessageService) *MessagesHandler {
	return &MessagesHandler{service: messageService}
}

// Create POST /api/messages.
func (h *MessagesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	message, err := h.service.Create(c.UserContext(), principal.Username, req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(message)
}

// List GET /api/messages.
func (h *MessagesHandler) List(c *fiber.Ctx) error {
	messages, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(messages)
}

// Get GET /api/messages/:id.
func (h *MessagesHandler) Get(c *fiber.Ctx) error {
	id, err := parseMessageID(c)
	if err != nil {
		return err
	}

	message, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(message)
}

// Delete DELETE /api/messages/:id.
func (h *MessagesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	id, err := parseMessageID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), principal.Username, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseMessageID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid message id", nil)
	}
	return id, nil
}
