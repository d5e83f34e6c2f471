package domain

import (
	"math"
	"time"
)

// DefaultExplanation is used when the generator omits a rationale.
const DefaultExplanation = "No explanation provided."

// Options holds the four answer choices of a multiple-choice question.
// The keys opt1..opt4 are fixed and their declaration order is the
// canonical presentation order.
type Options struct {
	Opt1 string `json:"opt1"`
	Opt2 string `json:"opt2"`
	Opt3 string `json:"opt3"`
	Opt4 string `json:"opt4"`
}

// OptionKeys returns the option keys in canonical order.
func OptionKeys() []string {
	return []string{"opt1", "opt2", "opt3", "opt4"}
}

// IsOptionKey reports whether key names one of the four options.
func IsOptionKey(key string) bool {
	switch key {
	case "opt1", "opt2", "opt3", "opt4":
		return true
	}
	return false
}

// Text returns the option text for the given key.
func (o Options) Text(key string) (string, bool) {
	switch key {
	case "opt1":
		return o.Opt1, true
	case "opt2":
		return o.Opt2, true
	case "opt3":
		return o.Opt3, true
	case "opt4":
		return o.Opt4, true
	}
	return "", false
}

// Complete reports whether all four options carry text.
func (o Options) Complete() bool {
	return o.Opt1 != "" && o.Opt2 != "" && o.Opt3 != "" && o.Opt4 != ""
}

// Question is immutable once issued to a session.
type Question struct {
	ID            string  `json:"question_id"`
	Title         string  `json:"question_title"`
	Options       Options `json:"options"`
	CorrectAnswer string  `json:"correct_answer"`
	Explanation   string  `json:"explanation"`
	Difficulty    int     `json:"difficulty"`
}

// Attempt is one history entry: the presented question plus the user's
// answer, which stays null until SubmitAnswer records it.
type Attempt struct {
	Question
	UserAnswer *string `json:"user_answer"`
	TimeTaken  float64 `json:"time_taken,omitempty"`
}

// Session tracks one user+skill assessment between start and end.
// It is volatile by design; nothing survives a process restart.
type Session struct {
	UserID         string
	Skill          string
	CurrentLevel   float64
	QuestionsAsked int
	CorrectAnswers int
	History        []*Attempt
	LastQuestion   *Question
	UpdatedAt      time.Time
}

// NewSession creates an Active session seeded with the user's self-rating.
func NewSession(userID, skill string, selfRating int) *Session {
	return &Session{
		UserID:       userID,
		Skill:        skill,
		CurrentLevel: float64(selfRating),
		History:      []*Attempt{},
		UpdatedAt:    time.Now(),
	}
}

// RecordQuestion appends a newly issued question to the history with no
// answer yet and makes it the session's last question.
func (s *Session) RecordQuestion(q *Question) {
	s.History = append(s.History, &Attempt{Question: *q})
	s.LastQuestion = q
	s.QuestionsAsked++
	s.UpdatedAt = time.Now()
}

// RecordAnswer stores the user's answer on the most recent history entry.
func (s *Session) RecordAnswer(selected string, timeTaken float64, correct bool) {
	if n := len(s.History); n > 0 {
		s.History[n-1].UserAnswer = &selected
		s.History[n-1].TimeTaken = timeTaken
	}
	if correct {
		s.CorrectAnswers++
	}
	s.UpdatedAt = time.Now()
}

// SeenQuestionIDs returns the ids of every question in the history, used
// as the exclusion set when requesting the next question.
func (s *Session) SeenQuestionIDs() map[string]struct{} {
	seen := make(map[string]struct{}, len(s.History))
	for _, a := range s.History {
		seen[a.ID] = struct{}{}
	}
	return seen
}

// FinalScore blends answer accuracy with the difficulty the user reached:
// half the score comes from correct/asked, half from current_level/100.
func (s *Session) FinalScore() float64 {
	asked := s.QuestionsAsked
	if asked < 1 {
		asked = 1
	}
	accuracy := float64(s.CorrectAnswers) / float64(asked) * 50
	difficultyBonus := s.CurrentLevel / 100 * 50
	score := math.Min(100, accuracy+difficultyBonus)
	return math.Round(score*100) / 100
}
