package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"skillsage/internal/domain"
	"skillsage/internal/logger"
	"skillsage/internal/util"

	"go.uber.org/zap"
)

const (
	// minPartitionForSampling is the bank size below which the source
	// generates instead of sampling, so random picks don't immediately
	// collide with recently seen ids.
	minPartitionForSampling = 15

	maxGenerationAttempts = 2
	maxAvoidTitles        = 3
	avoidTitleMaxLen      = 80
)

// questionStyles diversify generation phrasing across attempts.
var questionStyles = []string{
	"conceptual",
	"output-prediction",
	"debugging",
	"real-world",
	"best-practices",
}

// QuestionSource resolves "a question at this difficulty for this skill,
// excluding these ids" into one concrete question, via bank sampling or
// on-demand generation.
type QuestionSource interface {
	Obtain(ctx context.Context, skill string, rawLevel float64, excluded map[string]struct{}) (*domain.Question, error)
}

type questionSource struct {
	bank       domain.QuestionBank
	generator  domain.QuestionGenerator
	similarity domain.SimilarityChecker

	// rng drives style and avoid-title sampling; injected so tests can
	// seed it and assert exact sequences. Guarded by mu: rand.Rand is not
	// safe for concurrent use.
	rng *rand.Rand
	mu  sync.Mutex
}

// NewQuestionSource creates a question source. A nil rng gets a
// time-seeded one.
func NewQuestionSource(
	bank domain.QuestionBank,
	generator domain.QuestionGenerator,
	similarity domain.SimilarityChecker,
	rng *rand.Rand,
) QuestionSource {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &questionSource{
		bank:       bank,
		generator:  generator,
		similarity: similarity,
		rng:        rng,
	}
}

// Obtain implements QuestionSource. Bank failures degrade to the
// generation path and are never surfaced; generator failures are fatal to
// the request.
func (s *questionSource) Obtain(ctx context.Context, skill string, rawLevel float64, excluded map[string]struct{}) (*domain.Question, error) {
	bucket := domain.BucketFor(rawLevel)

	cached, err := s.bank.Questions(ctx, skill, bucket)
	if err != nil {
		logger.Get().Warn("Question bank read failed, falling back to generation",
			zap.String("skill", skill),
			zap.Int("bucket", bucket),
			zap.Error(err))
		cached = nil
	}

	if len(cached) >= minPartitionForSampling {
		candidates := make([]domain.Question, 0, len(cached))
		for _, q := range cached {
			if _, seen := excluded[q.ID]; !seen {
				candidates = append(candidates, q)
			}
		}
		if len(candidates) > 0 {
			picked := candidates[s.intn(len(candidates))]
			logger.Get().Debug("Serving question from bank",
				zap.String("skill", skill),
				zap.Int("bucket", bucket),
				zap.String("question_id", picked.ID))
			return &picked, nil
		}
	}

	return s.generate(ctx, skill, bucket, cached)
}

func (s *questionSource) generate(ctx context.Context, skill string, bucket int, cached []domain.Question) (*domain.Question, error) {
	cachedTitles := make([]string, 0, len(cached))
	for _, q := range cached {
		cachedTitles = append(cachedTitles, q.Title)
	}

	var lastGenerated *domain.Question
	for attempt := 1; attempt <= maxGenerationAttempts; attempt++ {
		req := domain.GenerationRequest{
			Skill:         skill,
			Bucket:        bucket,
			Style:         questionStyles[s.intn(len(questionStyles))],
			AvoidTitles:   s.sampleAvoidTitles(cachedTitles),
			PlaceholderID: attempt,
		}

		question, err := s.generator.Generate(ctx, req)
		if err != nil {
			return nil, err
		}

		// The bucket is authoritative over whatever the generator echoed,
		// and the throwaway id is replaced before the question escapes.
		question.Difficulty = bucket
		question.ID = util.NewULID()
		lastGenerated = question

		if s.similarity.IsDuplicate(question.Title, cachedTitles) {
			logger.Get().Info("Generated question duplicates the bank, retrying",
				zap.String("skill", skill),
				zap.Int("bucket", bucket),
				zap.Int("attempt", attempt),
				zap.String("title", question.Title))
			continue
		}

		if err := s.bank.Add(ctx, skill, bucket, *question); err != nil {
			logger.Get().Warn("Question bank write failed, serving question anyway",
				zap.String("skill", skill),
				zap.Int("bucket", bucket),
				zap.Error(err))
		}
		return question, nil
	}

	// Both attempts duplicated the bank. Serve the last payload rather
	// than fail the request; it is not written back.
	logger.Get().Warn("All generation attempts were duplicates, serving the last one",
		zap.String("skill", skill),
		zap.Int("bucket", bucket))
	return lastGenerated, nil
}

// sampleAvoidTitles picks up to maxAvoidTitles random cached titles,
// truncated, as a negative constraint for the generator.
func (s *questionSource) sampleAvoidTitles(titles []string) []string {
	if len(titles) == 0 {
		return nil
	}

	s.mu.Lock()
	picked := s.rng.Perm(len(titles))
	s.mu.Unlock()

	n := maxAvoidTitles
	if len(picked) < n {
		n = len(picked)
	}

	avoid := make([]string, 0, n)
	for _, idx := range picked[:n] {
		title := titles[idx]
		if len(title) > avoidTitleMaxLen {
			title = title[:avoidTitleMaxLen]
		}
		avoid = append(avoid, title)
	}
	return avoid
}

func (s *questionSource) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
