package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"skillsage/internal/domain"
	"skillsage/internal/dto"
	"skillsage/internal/middleware"
	"skillsage/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- MockAssessmentService ---

type MockAssessmentService struct {
	mock.Mock
}

func (m *MockAssessmentService) StartTest(ctx context.Context, userID, skill string, selfRating int) (*dto.QuestionResponse, error) {
	args := m.Called(ctx, userID, skill, selfRating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuestionResponse), args.Error(1)
}

func (m *MockAssessmentService) SubmitAnswer(ctx context.Context, req *dto.SubmitAnswerRequest) (*dto.QuestionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuestionResponse), args.Error(1)
}

func (m *MockAssessmentService) EndTest(ctx context.Context, userID, skill string) (*dto.EndTestResponse, error) {
	args := m.Called(ctx, userID, skill)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EndTestResponse), args.Error(1)
}

func (m *MockAssessmentService) ExplainMistake(ctx context.Context, questionTitle, correctText, userText string) (string, error) {
	args := m.Called(ctx, questionTitle, correctText, userText)
	return args.String(0), args.Error(1)
}

func (m *MockAssessmentService) History(ctx context.Context, userID string) ([]*domain.AssessmentResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AssessmentResult), args.Error(1)
}

func setupTestApp(svc *MockAssessmentService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := NewAssessmentHandler(svc, validation.NewValidator())

	api := app.Group("/api/assessment")
	api.Post("/start", h.StartTest)
	api.Post("/answer", h.SubmitAnswer)
	api.Post("/end", h.EndTest)
	api.Post("/explain", h.ExplainMistake)
	api.Get("/history/:user_id", h.History)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	raw, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func TestStartTestHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockAssessmentService)
		app := setupTestApp(svc)

		question := &dto.QuestionResponse{QuestionID: "q1", QuestionTitle: "t", CorrectAnswer: "opt1", Difficulty: 60}
		svc.On("StartTest", mock.Anything, "u1", "python", 50).Return(question, nil).Once()

		resp := postJSON(t, app, "/api/assessment/start", dto.StartTestRequest{
			UserID: "u1", Skill: "python", SelfRating: 50,
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got dto.QuestionResponse
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "q1", got.QuestionID)
		svc.AssertExpectations(t)
	})

	t.Run("OutOfRangeSelfRating", func(t *testing.T) {
		svc := new(MockAssessmentService)
		app := setupTestApp(svc)

		resp := postJSON(t, app, "/api/assessment/start", dto.StartTestRequest{
			UserID: "u1", Skill: "python", SelfRating: 150,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "StartTest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("GenerationFailure", func(t *testing.T) {
		svc := new(MockAssessmentService)
		app := setupTestApp(svc)

		svc.On("StartTest", mock.Anything, "u1", "python", 50).
			Return(nil, domain.NewGenerationError(errors.New("model down"))).Once()

		resp := postJSON(t, app, "/api/assessment/start", dto.StartTestRequest{
			UserID: "u1", Skill: "python", SelfRating: 50,
		})
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestSubmitAnswerHandler(t *testing.T) {
	t.Run("NoSession", func(t *testing.T) {
		svc := new(MockAssessmentService)
		app := setupTestApp(svc)

		svc.On("SubmitAnswer", mock.Anything, mock.Anything).
			Return(nil, domain.NewSessionNotFoundError("u1")).Once()

		resp := postJSON(t, app, "/api/assessment/answer", dto.SubmitAnswerRequest{
			UserID: "u1", QuestionID: "q1", SelectedOption: "opt1", CorrectAnswer: "opt2", TimeTaken: 10,
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("QuestionMismatch", func(t *testing.T) {
		svc := new(MockAssessmentService)
		app := setupTestApp(svc)

		svc.On("SubmitAnswer", mock.Anything, mock.Anything).
			Return(nil, domain.NewQuestionMismatchError("stale", "q2")).Once()

		resp := postJSON(t, app, "/api/assessment/answer", dto.SubmitAnswerRequest{
			UserID: "u1", QuestionID: "stale", SelectedOption: "opt1", CorrectAnswer: "opt2", TimeTaken: 10,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body middleware.ErrorResponse
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, string(domain.CodeQuestionMismatch), body.Code)
		assert.Equal(t, "q2", body.Details["expected_id"])
	})

	t.Run("InvalidOptionKey", func(t *testing.T) {
		svc := new(MockAssessmentService)
		app := setupTestApp(svc)

		resp := postJSON(t, app, "/api/assessment/answer", dto.SubmitAnswerRequest{
			UserID: "u1", QuestionID: "q1", SelectedOption: "banana", CorrectAnswer: "opt2", TimeTaken: 10,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "SubmitAnswer", mock.Anything, mock.Anything)
	})
}

func TestEndTestHandler(t *testing.T) {
	svc := new(MockAssessmentService)
	app := setupTestApp(svc)

	svc.On("EndTest", mock.Anything, "u1", "python").
		Return(&dto.EndTestResponse{UserID: "u1", Skill: "python", FinalScore: 72.5, QuestionsAttempted: 4}, nil).Once()

	resp := postJSON(t, app, "/api/assessment/end", dto.EndTestRequest{UserID: "u1", Skill: "python"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got dto.EndTestResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 72.5, got.FinalScore)
}

func TestExplainMistakeHandler(t *testing.T) {
	svc := new(MockAssessmentService)
	app := setupTestApp(svc)

	svc.On("ExplainMistake", mock.Anything, "title", "right", "wrong").
		Return("because reasons", nil).Once()

	resp := postJSON(t, app, "/api/assessment/explain", dto.ExplainMistakeRequest{
		QuestionTitle: "title", CorrectOptionText: "right", UserOptionText: "wrong",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got dto.ExplainMistakeResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "because reasons", got.Explanation)
}

func TestHistoryHandler(t *testing.T) {
	svc := new(MockAssessmentService)
	app := setupTestApp(svc)

	svc.On("History", mock.Anything, "u1").
		Return([]*domain.AssessmentResult{{ID: "r1", UserID: "u1", Skill: "go"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/assessment/history/u1", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got dto.HistoryResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "u1", got.UserID)
	assert.Len(t, got.Results, 1)
}
