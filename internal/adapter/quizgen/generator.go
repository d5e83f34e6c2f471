package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"skillsage/internal/domain"
	"skillsage/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// bucketDescriptions label each difficulty bucket for the prompt.
var bucketDescriptions = map[int]string{
	20:  "very basic and conceptual",
	40:  "beginner",
	60:  "intermediate",
	80:  "advanced",
	100: "expert",
}

const questionPromptTemplate = `You are an expert technical test designer for adaptive skill assessments.

Generate ONE multiple choice question for the skill: %s
Target difficulty: %d/100 (%s)
Question style: %s

Instructions:
- The question must be relevant to real-world application of the skill.
- Include exactly 4 options, with only one correct answer.
- Use neutral, professional wording.
- Include a short explanation of the correct answer.
%s
Return only valid JSON (no markdown) in the structure:

{
  "question_id": %d,
  "question_title": "string",
  "options": {
    "opt1": "string",
    "opt2": "string",
    "opt3": "string",
    "opt4": "string"
  },
  "correct_answer": "optX",
  "explanation": "string",
  "difficulty": %d
}`

const explainPromptTemplate = `A user answered a multiple choice question incorrectly.

Question: %s
Correct answer: %s
User's answer: %s

In 2-3 sentences, explain why the user's answer is wrong and why the correct answer is right. Respond with plain text only.`

// LLMQuestionGenerator implements domain.QuestionGenerator over any
// langchaingo model (googleai or ollama, selected in wiring).
type LLMQuestionGenerator struct {
	llm     llms.Model
	timeout time.Duration
}

// NewLLMQuestionGenerator creates a new generator. timeout bounds every
// model call; zero disables the deadline.
func NewLLMQuestionGenerator(llm llms.Model, timeout time.Duration) domain.QuestionGenerator {
	return &LLMQuestionGenerator{llm: llm, timeout: timeout}
}

func (g *LLMQuestionGenerator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}

// Generate implements domain.QuestionGenerator.
func (g *LLMQuestionGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.Question, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	prompt := buildQuestionPrompt(req)
	logger.Get().Debug("Requesting question from LLM",
		zap.String("skill", req.Skill),
		zap.Int("bucket", req.Bucket),
		zap.String("style", req.Style))

	raw, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt)
	if err != nil {
		return nil, domain.NewGenerationError(fmt.Errorf("llm call failed: %w", err))
	}

	question, err := ParseQuestionPayload(raw)
	if err != nil {
		logger.Get().Warn("Unparsable generator payload",
			zap.Error(err),
			zap.String("raw_response", truncate(raw, 500)))
		return nil, domain.NewGenerationError(err)
	}
	return question, nil
}

// Explain implements domain.QuestionGenerator.
func (g *LLMQuestionGenerator) Explain(ctx context.Context, questionTitle, correctText, userText string) (string, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	prompt := fmt.Sprintf(explainPromptTemplate, questionTitle, correctText, userText)
	raw, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt)
	if err != nil {
		return "", domain.NewGenerationError(fmt.Errorf("llm call failed: %w", err))
	}

	explanation := strings.TrimSpace(StripCodeFences(raw))
	if explanation == "" {
		return "", domain.NewGenerationError(fmt.Errorf("llm returned an empty explanation"))
	}
	return explanation, nil
}

func buildQuestionPrompt(req domain.GenerationRequest) string {
	avoidSection := ""
	if len(req.AvoidTitles) > 0 {
		var b strings.Builder
		b.WriteString("- Do NOT produce a question similar to any of these existing ones:\n")
		for _, title := range req.AvoidTitles {
			fmt.Fprintf(&b, "  - %s\n", title)
		}
		avoidSection = b.String()
	}

	return fmt.Sprintf(questionPromptTemplate,
		req.Skill,
		req.Bucket,
		bucketDescriptions[req.Bucket],
		req.Style,
		avoidSection,
		req.PlaceholderID,
		req.Bucket,
	)
}

// questionPayload is the wire shape the generator must return. The id and
// difficulty are json.Number because models echo them inconsistently as
// numbers or strings.
type questionPayload struct {
	ID            json.Number    `json:"question_id"`
	Title         string         `json:"question_title"`
	Options       domain.Options `json:"options"`
	CorrectAnswer string         `json:"correct_answer"`
	Explanation   string         `json:"explanation"`
	Difficulty    json.Number    `json:"difficulty"`
}

// ParseQuestionPayload strips optional code fences, unmarshals the payload,
// and validates the question shape. Malformed output is a hard failure for
// the attempt.
func ParseQuestionPayload(raw string) (*domain.Question, error) {
	cleaned := StripCodeFences(raw)

	var payload questionPayload
	decoder := json.NewDecoder(strings.NewReader(cleaned))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse generator payload: %w", err)
	}

	if strings.TrimSpace(payload.Title) == "" {
		return nil, fmt.Errorf("generator payload has empty question_title")
	}
	if !payload.Options.Complete() {
		return nil, fmt.Errorf("generator payload is missing one or more options")
	}
	if !domain.IsOptionKey(payload.CorrectAnswer) {
		return nil, fmt.Errorf("generator payload correct_answer %q is not an option key", payload.CorrectAnswer)
	}

	explanation := strings.TrimSpace(payload.Explanation)
	if explanation == "" {
		explanation = domain.DefaultExplanation
	}

	difficulty := 0
	if d, err := payload.Difficulty.Int64(); err == nil {
		difficulty = int(d)
	}

	return &domain.Question{
		ID:            payload.ID.String(),
		Title:         payload.Title,
		Options:       payload.Options,
		CorrectAnswer: payload.CorrectAnswer,
		Explanation:   explanation,
		Difficulty:    difficulty,
	}, nil
}

// StripCodeFences removes a leading ```/```json fence line and a trailing
// ``` fence, which models add despite the JSON-only instruction.
func StripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		if idx := strings.Index(cleaned, "\n"); idx != -1 {
			cleaned = cleaned[idx+1:]
		} else {
			cleaned = strings.TrimPrefix(cleaned, "```json")
			cleaned = strings.TrimPrefix(cleaned, "```")
		}
	}
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var _ domain.QuestionGenerator = (*LLMQuestionGenerator)(nil)
