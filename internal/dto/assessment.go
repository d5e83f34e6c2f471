package dto

import "skillsage/internal/domain"

// StartTestRequest begins an assessment session.
// @Description Request body for starting an assessment
type StartTestRequest struct {
	UserID     string `json:"user_id"`
	Skill      string `json:"skill"`
	SelfRating int    `json:"self_rating"`
}

// SubmitAnswerRequest grades the last issued question and requests the next.
// @Description Request body for submitting an answer
type SubmitAnswerRequest struct {
	UserID         string  `json:"user_id"`
	QuestionID     string  `json:"question_id"`
	SelectedOption string  `json:"selected_option"`
	TimeTaken      float64 `json:"time_taken"`
	CorrectAnswer  string  `json:"correct_answer"`
}

// EndTestRequest finalizes a session.
// @Description Request body for ending an assessment
type EndTestRequest struct {
	UserID string `json:"user_id"`
	Skill  string `json:"skill"`
}

// ExplainMistakeRequest asks for a rationale on a missed question.
// @Description Request body for the mistake explainer
type ExplainMistakeRequest struct {
	QuestionTitle     string `json:"question_title"`
	CorrectOptionText string `json:"correct_option_text"`
	UserOptionText    string `json:"user_option_text"`
}

// QuestionResponse is the issued question in the API response.
type QuestionResponse struct {
	QuestionID    string         `json:"question_id"`
	QuestionTitle string         `json:"question_title"`
	Options       domain.Options `json:"options"`
	CorrectAnswer string         `json:"correct_answer"`
	Explanation   string         `json:"explanation"`
	Difficulty    int            `json:"difficulty"`
}

// NewQuestionResponse maps a domain question onto the wire shape.
func NewQuestionResponse(q *domain.Question) *QuestionResponse {
	return &QuestionResponse{
		QuestionID:    q.ID,
		QuestionTitle: q.Title,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Difficulty:    q.Difficulty,
	}
}

// EndTestResponse is the final report of a session.
type EndTestResponse struct {
	UserID             string            `json:"user_id"`
	Skill              string            `json:"skill"`
	FinalScore         float64           `json:"final_score"`
	QuestionsAttempted int               `json:"questions_attempted"`
	History            []*domain.Attempt `json:"history"`
}

// ExplainMistakeResponse carries the generated explanation.
type ExplainMistakeResponse struct {
	Explanation string `json:"explanation"`
}

// HistoryResponse lists a user's archived assessments.
type HistoryResponse struct {
	UserID  string                     `json:"user_id"`
	Results []*domain.AssessmentResult `json:"results"`
}
