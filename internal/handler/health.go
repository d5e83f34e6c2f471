package handler

import (
	"skillsage/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports process liveness and question bank reachability.
type HealthHandler struct {
	bank domain.QuestionBank
}

func NewHealthHandler(bank domain.QuestionBank) *HealthHandler {
	return &HealthHandler{bank: bank}
}

// Health godoc
// @Summary Health check
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	bankStatus := "ok"
	if err := h.bank.Ping(c.Context()); err != nil {
		// The bank is an optimization; a down cache degrades, not kills.
		bankStatus = "unreachable"
	}
	return c.JSON(fiber.Map{
		"status":        "ok",
		"question_bank": bankStatus,
	})
}
