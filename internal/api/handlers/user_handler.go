package handlers

import (
	"time"

	"finsight/internal/dto"
	"finsight/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserHandler struct {
	provisioner *service.ProvisionService
	logger      *zap.Logger
}

func NewUserHandler(provisioner *service.ProvisionService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		provisioner: provisioner,
		logger:      logger,
	}
}

// Me godoc
// @Summary Current user
// @Description Return the application user for the current session, creating it on first sight
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} map[string]string
// @Router /me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.provisioner.CheckUser(c.Context(), sessionToken(c))
	if err != nil {
		h.logger.Error("User provisioning failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve user",
		})
	}
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	return c.JSON(dto.UserResponse{
		ID:         user.ID.String(),
		ExternalID: user.ExternalID,
		Email:      user.Email,
		Name:       user.Name,
		ImageURL:   user.ImageURL,
		CreatedAt:  user.CreatedAt.Format(time.RFC3339),
	})
}
