package validation

import (
	"strings"

	"skillsage/internal/domain"
	"skillsage/internal/dto"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateStartTest validates the start request.
func (v *Validator) ValidateStartTest(req *dto.StartTestRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(req.UserID) == "" {
		errs = append(errs, domain.NewMissingFieldError("user_id"))
	}
	if strings.TrimSpace(req.Skill) == "" {
		errs = append(errs, domain.NewMissingFieldError("skill"))
	}
	if req.SelfRating < 0 || req.SelfRating > 100 {
		errs = append(errs, domain.NewOutOfRangeError("self_rating", req.SelfRating, 0, 100))
	}

	return errs
}

// ValidateSubmitAnswer validates the answer request.
func (v *Validator) ValidateSubmitAnswer(req *dto.SubmitAnswerRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(req.UserID) == "" {
		errs = append(errs, domain.NewMissingFieldError("user_id"))
	}
	if strings.TrimSpace(req.QuestionID) == "" {
		errs = append(errs, domain.NewMissingFieldError("question_id"))
	}
	if !domain.IsOptionKey(req.SelectedOption) {
		errs = append(errs, domain.NewInvalidFormatError("selected_option", req.SelectedOption))
	}
	if !domain.IsOptionKey(req.CorrectAnswer) {
		errs = append(errs, domain.NewInvalidFormatError("correct_answer", req.CorrectAnswer))
	}
	if req.TimeTaken < 0 {
		errs = append(errs, domain.NewOutOfRangeError("time_taken", int(req.TimeTaken), 0, int(^uint(0)>>1)))
	}

	return errs
}

// ValidateEndTest validates the end request.
func (v *Validator) ValidateEndTest(req *dto.EndTestRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(req.UserID) == "" {
		errs = append(errs, domain.NewMissingFieldError("user_id"))
	}
	if strings.TrimSpace(req.Skill) == "" {
		errs = append(errs, domain.NewMissingFieldError("skill"))
	}

	return errs
}

// ValidateExplainMistake validates the explain request.
func (v *Validator) ValidateExplainMistake(req *dto.ExplainMistakeRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(req.QuestionTitle) == "" {
		errs = append(errs, domain.NewMissingFieldError("question_title"))
	}
	if strings.TrimSpace(req.CorrectOptionText) == "" {
		errs = append(errs, domain.NewMissingFieldError("correct_option_text"))
	}
	if strings.TrimSpace(req.UserOptionText) == "" {
		errs = append(errs, domain.NewMissingFieldError("user_option_text"))
	}

	return errs
}
