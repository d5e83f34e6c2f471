package validation

import (
	"testing"

	"skillsage/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestValidateStartTest(t *testing.T) {
	v := NewValidator()

	t.Run("Valid", func(t *testing.T) {
		errs := v.ValidateStartTest(&dto.StartTestRequest{UserID: "u1", Skill: "python", SelfRating: 50})
		assert.Empty(t, errs)
	})

	t.Run("BoundaryRatings", func(t *testing.T) {
		assert.Empty(t, v.ValidateStartTest(&dto.StartTestRequest{UserID: "u1", Skill: "go", SelfRating: 0}))
		assert.Empty(t, v.ValidateStartTest(&dto.StartTestRequest{UserID: "u1", Skill: "go", SelfRating: 100}))
	})

	t.Run("Invalid", func(t *testing.T) {
		errs := v.ValidateStartTest(&dto.StartTestRequest{UserID: " ", Skill: "", SelfRating: 101})
		assert.Len(t, errs, 3)
	})
}

func TestValidateSubmitAnswer(t *testing.T) {
	v := NewValidator()

	valid := &dto.SubmitAnswerRequest{
		UserID: "u1", QuestionID: "q1", SelectedOption: "opt2", CorrectAnswer: "opt1", TimeTaken: 12.5,
	}
	assert.Empty(t, v.ValidateSubmitAnswer(valid))

	t.Run("BadOptionKeys", func(t *testing.T) {
		req := *valid
		req.SelectedOption = "opt9"
		req.CorrectAnswer = "B"
		errs := v.ValidateSubmitAnswer(&req)
		assert.Len(t, errs, 2)
	})

	t.Run("NegativeTime", func(t *testing.T) {
		req := *valid
		req.TimeTaken = -1
		errs := v.ValidateSubmitAnswer(&req)
		assert.Len(t, errs, 1)
		assert.Equal(t, "time_taken", errs[0].Field)
	})
}

func TestValidateEndTest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateEndTest(&dto.EndTestRequest{UserID: "u1", Skill: "go"}))
	assert.Len(t, v.ValidateEndTest(&dto.EndTestRequest{}), 2)
}

func TestValidateExplainMistake(t *testing.T) {
	v := NewValidator()

	valid := &dto.ExplainMistakeRequest{
		QuestionTitle:     "What is a slice?",
		CorrectOptionText: "A view over an array",
		UserOptionText:    "A linked list",
	}
	assert.Empty(t, v.ValidateExplainMistake(valid))
	assert.Len(t, v.ValidateExplainMistake(&dto.ExplainMistakeRequest{}), 3)
}
