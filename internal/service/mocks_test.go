package service

import (
	"context"

	"skillsage/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuestionBank ---

type MockQuestionBank struct {
	mock.Mock
}

func (m *MockQuestionBank) Questions(ctx context.Context, skill string, bucket int) ([]domain.Question, error) {
	args := m.Called(ctx, skill, bucket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *MockQuestionBank) Add(ctx context.Context, skill string, bucket int, q domain.Question) error {
	args := m.Called(ctx, skill, bucket, q)
	return args.Error(0)
}

func (m *MockQuestionBank) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ domain.QuestionBank = (*MockQuestionBank)(nil)

// --- MockQuestionGenerator ---

type MockQuestionGenerator struct {
	mock.Mock
}

func (m *MockQuestionGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.Question, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionGenerator) Explain(ctx context.Context, questionTitle, correctText, userText string) (string, error) {
	args := m.Called(ctx, questionTitle, correctText, userText)
	return args.String(0), args.Error(1)
}

var _ domain.QuestionGenerator = (*MockQuestionGenerator)(nil)

// --- MockQuestionSource ---

type MockQuestionSource struct {
	mock.Mock
}

func (m *MockQuestionSource) Obtain(ctx context.Context, skill string, rawLevel float64, excluded map[string]struct{}) (*domain.Question, error) {
	args := m.Called(ctx, skill, rawLevel, excluded)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

var _ QuestionSource = (*MockQuestionSource)(nil)

// --- MockResultArchive ---

type MockResultArchive struct {
	mock.Mock
}

func (m *MockResultArchive) SaveResult(ctx context.Context, r *domain.AssessmentResult) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockResultArchive) ResultsByUser(ctx context.Context, userID string) ([]*domain.AssessmentResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AssessmentResult), args.Error(1)
}

var _ domain.ResultArchive = (*MockResultArchive)(nil)
