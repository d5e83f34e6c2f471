package service

import (
	"context"
	"sync"

	"skillsage/internal/domain"
	"skillsage/internal/dto"
	"skillsage/internal/logger"
	"skillsage/internal/util"

	"go.uber.org/zap"
)

// AssessmentService drives the per-user session state machine:
// start -> active (one question outstanding) -> ended.
type AssessmentService interface {
	StartTest(ctx context.Context, userID, skill string, selfRating int) (*dto.QuestionResponse, error)
	SubmitAnswer(ctx context.Context, req *dto.SubmitAnswerRequest) (*dto.QuestionResponse, error)
	EndTest(ctx context.Context, userID, skill string) (*dto.EndTestResponse, error)
	ExplainMistake(ctx context.Context, questionTitle, correctText, userText string) (string, error)
	History(ctx context.Context, userID string) ([]*domain.AssessmentResult, error)
}

type assessmentService struct {
	store     domain.SessionStore
	source    QuestionSource
	generator domain.QuestionGenerator
	archive   domain.ResultArchive // nil when archiving is disabled

	// locks serializes all transitions per user id, held across the
	// external generator/bank calls so concurrent requests for one user
	// cannot race on the session's mutable fields. One mutex per distinct
	// user id ever seen; each is a few words, so the map is left to grow.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewAssessmentService creates the assessment state machine. archive may
// be nil to disable result archiving.
func NewAssessmentService(
	store domain.SessionStore,
	source QuestionSource,
	generator domain.QuestionGenerator,
	archive domain.ResultArchive,
) AssessmentService {
	return &assessmentService{
		store:     store,
		source:    source,
		generator: generator,
		archive:   archive,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (s *assessmentService) lockFor(userID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	m, ok := s.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[userID] = m
	}
	return m
}

// StartTest implements AssessmentService. An existing session for the user
// is silently replaced; a generation failure rolls the new session back so
// the user is startable again.
func (s *assessmentService) StartTest(ctx context.Context, userID, skill string, selfRating int) (*dto.QuestionResponse, error) {
	mu := s.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	if _, exists := s.store.Get(userID); exists {
		logger.Get().Warn("Overwriting existing session on start",
			zap.String("user_id", userID),
			zap.String("skill", skill))
	}

	session := domain.NewSession(userID, skill, selfRating)
	s.store.Put(session)

	question, err := s.source.Obtain(ctx, skill, session.CurrentLevel, nil)
	if err != nil {
		s.store.Remove(userID)
		return nil, err
	}

	session.RecordQuestion(question)
	logger.Get().Info("Assessment started",
		zap.String("user_id", userID),
		zap.String("skill", skill),
		zap.Int("self_rating", selfRating),
		zap.String("question_id", question.ID))
	return dto.NewQuestionResponse(question), nil
}

// SubmitAnswer implements AssessmentService. The question id check is
// strict: a mismatch against the last issued question rejects the request
// without touching session state.
func (s *assessmentService) SubmitAnswer(ctx context.Context, req *dto.SubmitAnswerRequest) (*dto.QuestionResponse, error) {
	mu := s.lockFor(req.UserID)
	mu.Lock()
	defer mu.Unlock()

	session, ok := s.store.Get(req.UserID)
	if !ok {
		return nil, domain.NewSessionNotFoundError(req.UserID)
	}

	if session.LastQuestion == nil || session.LastQuestion.ID != req.QuestionID {
		expected := ""
		if session.LastQuestion != nil {
			expected = session.LastQuestion.ID
		}
		return nil, domain.NewQuestionMismatchError(req.QuestionID, expected)
	}

	// If the last attempt is already graded, this is a retry after a
	// failed issue-next-question step: keep the recorded answer and level
	// and only retry obtaining a question.
	last := session.History[len(session.History)-1]
	if last.UserAnswer == nil {
		correct := req.SelectedOption == req.CorrectAnswer
		session.RecordAnswer(req.SelectedOption, req.TimeTaken, correct)
		session.CurrentLevel = domain.Adjust(session.CurrentLevel, correct, req.TimeTaken)
	}

	question, err := s.source.Obtain(ctx, session.Skill, session.CurrentLevel, session.SeenQuestionIDs())
	if err != nil {
		// The graded answer and adjusted level stay committed.
		return nil, err
	}

	session.RecordQuestion(question)
	logger.Get().Debug("Answer graded, next question issued",
		zap.String("user_id", req.UserID),
		zap.Float64("level", session.CurrentLevel),
		zap.String("question_id", question.ID))
	return dto.NewQuestionResponse(question), nil
}

// EndTest implements AssessmentService. The session is removed and its
// aggregate score returned; archiving the result is best-effort.
func (s *assessmentService) EndTest(ctx context.Context, userID, skill string) (*dto.EndTestResponse, error) {
	mu := s.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	session, ok := s.store.Remove(userID)
	if !ok {
		return nil, domain.NewSessionNotFoundError(userID)
	}

	score := session.FinalScore()
	if s.archive != nil {
		result := &domain.AssessmentResult{
			ID:             util.NewULID(),
			UserID:         session.UserID,
			Skill:          session.Skill,
			FinalScore:     score,
			QuestionsAsked: session.QuestionsAsked,
			CorrectAnswers: session.CorrectAnswers,
			FinalLevel:     session.CurrentLevel,
			FinishedAt:     session.UpdatedAt,
		}
		if err := s.archive.SaveResult(ctx, result); err != nil {
			logger.Get().Warn("Failed to archive assessment result",
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}

	logger.Get().Info("Assessment ended",
		zap.String("user_id", userID),
		zap.String("skill", session.Skill),
		zap.Float64("final_score", score),
		zap.Int("questions_attempted", session.QuestionsAsked))

	return &dto.EndTestResponse{
		UserID:             userID,
		Skill:              session.Skill,
		FinalScore:         score,
		QuestionsAttempted: session.QuestionsAsked,
		History:            session.History,
	}, nil
}

// ExplainMistake implements AssessmentService. Stateless pass-through to
// the generator; no session interaction.
func (s *assessmentService) ExplainMistake(ctx context.Context, questionTitle, correctText, userText string) (string, error) {
	return s.generator.Explain(ctx, questionTitle, correctText, userText)
}

// History implements AssessmentService.
func (s *assessmentService) History(ctx context.Context, userID string) ([]*domain.AssessmentResult, error) {
	if s.archive == nil {
		return []*domain.AssessmentResult{}, nil
	}
	results, err := s.archive.ResultsByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load assessment history", err)
	}
	return results, nil
}
