package handler

import (
	"skillsage/internal/dto"
	"skillsage/internal/logger"
	"skillsage/internal/service"
	"skillsage/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AssessmentHandler handles assessment-related HTTP requests
type AssessmentHandler struct {
	service   service.AssessmentService
	validator *validation.Validator
}

// NewAssessmentHandler creates a new AssessmentHandler instance
func NewAssessmentHandler(service service.AssessmentService, validator *validation.Validator) *AssessmentHandler {
	return &AssessmentHandler{
		service:   service,
		validator: validator,
	}
}

// StartTest godoc
// @Summary Start an adaptive assessment
// @Description Creates a session for the user and returns the first question at the self-rated level
// @Tags assessment
// @Accept json
// @Produce json
// @Param request body dto.StartTestRequest true "Start request"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /assessment/start [post]
func (h *AssessmentHandler) StartTest(c *fiber.Ctx) error {
	var req dto.StartTestRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := h.validator.ValidateStartTest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.StartTest(c.Context(), req.UserID, req.Skill, req.SelfRating)
	if err != nil {
		logger.Get().Warn("Failed to start assessment",
			zap.String("user_id", req.UserID),
			zap.String("skill", req.Skill),
			zap.Error(err))
		return err
	}
	return c.JSON(resp)
}

// SubmitAnswer godoc
// @Summary Submit an answer and get the next question
// @Description Grades the last issued question, adjusts the level, and returns the next question
// @Tags assessment
// @Accept json
// @Produce json
// @Param request body dto.SubmitAnswerRequest true "Answer request"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /assessment/answer [post]
func (h *AssessmentHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := h.validator.ValidateSubmitAnswer(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.SubmitAnswer(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// EndTest godoc
// @Summary End an assessment
// @Description Finalizes the session and returns the aggregate score and history
// @Tags assessment
// @Accept json
// @Produce json
// @Param request body dto.EndTestRequest true "End request"
// @Success 200 {object} dto.EndTestResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /assessment/end [post]
func (h *AssessmentHandler) EndTest(c *fiber.Ctx) error {
	var req dto.EndTestRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := h.validator.ValidateEndTest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.EndTest(c.Context(), req.UserID, req.Skill)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ExplainMistake godoc
// @Summary Explain a missed question
// @Description Stateless explanation of why the chosen option is wrong
// @Tags assessment
// @Accept json
// @Produce json
// @Param request body dto.ExplainMistakeRequest true "Explain request"
// @Success 200 {object} dto.ExplainMistakeResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /assessment/explain [post]
func (h *AssessmentHandler) ExplainMistake(c *fiber.Ctx) error {
	var req dto.ExplainMistakeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := h.validator.ValidateExplainMistake(&req); len(errs) > 0 {
		return errs
	}

	explanation, err := h.service.ExplainMistake(c.Context(), req.QuestionTitle, req.CorrectOptionText, req.UserOptionText)
	if err != nil {
		return err
	}
	return c.JSON(dto.ExplainMistakeResponse{Explanation: explanation})
}

// History godoc
// @Summary List archived assessments for a user
// @Tags assessment
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.HistoryResponse
// @Router /assessment/history/{user_id} [get]
func (h *AssessmentHandler) History(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	if userID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "user_id is required")
	}

	results, err := h.service.History(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.HistoryResponse{UserID: userID, Results: results})
}
