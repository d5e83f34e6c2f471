package domain

import "time"

// AssessmentResult is the archived summary of a finished assessment.
type AssessmentResult struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	Skill          string    `db:"skill" json:"skill"`
	FinalScore     float64   `db:"final_score" json:"final_score"`
	QuestionsAsked int       `db:"questions_asked" json:"questions_asked"`
	CorrectAnswers int       `db:"correct_answers" json:"correct_answers"`
	FinalLevel     float64   `db:"final_level" json:"final_level"`
	FinishedAt     time.Time `db:"finished_at" json:"finished_at"`
}
