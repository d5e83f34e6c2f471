package domain

import "context"

// QuestionBank is the persistent question cache, keyed by skill and
// difficulty bucket. It is an optimization, not a correctness requirement:
// callers must tolerate every method failing.
type QuestionBank interface {
	// Questions returns all stored questions for the (skill, bucket) partition.
	Questions(ctx context.Context, skill string, bucket int) ([]Question, error)

	// Add upserts a question into the (skill, bucket) partition.
	Add(ctx context.Context, skill string, bucket int, q Question) error

	// Ping checks the health of the backing store.
	Ping(ctx context.Context) error
}

// GenerationRequest describes one question-generation attempt.
type GenerationRequest struct {
	Skill  string
	Bucket int
	// Style is a question-style label (conceptual, debugging, ...) that
	// diversifies phrasing across attempts.
	Style string
	// AvoidTitles are truncated titles of cached questions the generator is
	// instructed not to resemble.
	AvoidTitles []string
	// PlaceholderID is a throwaway numeric id echoed by the generator; the
	// source replaces it before the question is persisted or issued.
	PlaceholderID int
}

// QuestionGenerator is the external natural-language generation capability.
type QuestionGenerator interface {
	// Generate produces one question for the request. Unparsable generator
	// output is a hard failure for the attempt.
	Generate(ctx context.Context, req GenerationRequest) (*Question, error)

	// Explain returns a short explanation of why the user's chosen option is
	// wrong and the correct one is right. Stateless.
	Explain(ctx context.Context, questionTitle, correctText, userText string) (string, error)
}

// SessionStore holds active sessions keyed by user id. Injected into the
// state machine so a persistent backend can replace the in-memory one
// without touching transition logic.
type SessionStore interface {
	Get(userID string) (*Session, bool)
	Put(s *Session)
	// Remove deletes and returns the session, reporting whether it existed.
	Remove(userID string) (*Session, bool)
}

// SimilarityChecker decides whether a candidate question duplicates an
// existing one. Pluggable so stricter semantic dedup can replace the
// default substring heuristic without changing the source's control flow.
type SimilarityChecker interface {
	IsDuplicate(candidateTitle string, existingTitles []string) bool
}

// ResultArchive persists finished assessments for the history view.
// Writes are best-effort; an archive failure never fails EndTest.
type ResultArchive interface {
	SaveResult(ctx context.Context, r *AssessmentResult) error
	ResultsByUser(ctx context.Context, userID string) ([]*AssessmentResult, error)
}
