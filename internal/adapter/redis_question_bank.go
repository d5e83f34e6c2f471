package adapter

import (
	"context"
	"encoding/json"
	"time"

	"skillsage/internal/cache"
	"skillsage/internal/domain"
	"skillsage/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisQuestionBank implements domain.QuestionBank over a redis hash per
// (skill, bucket) partition: field = question id, value = question JSON.
// Partitions are append-only and never expire.
type RedisQuestionBank struct {
	client    *redis.Client
	opTimeout time.Duration
}

// NewRedisQuestionBank creates a new instance of RedisQuestionBank.
// It expects a connected *redis.Client. opTimeout bounds each operation;
// zero disables the per-call deadline.
func NewRedisQuestionBank(client *redis.Client, opTimeout time.Duration) domain.QuestionBank {
	return &RedisQuestionBank{client: client, opTimeout: opTimeout}
}

func (b *RedisQuestionBank) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, b.opTimeout)
}

// Questions implements domain.QuestionBank. Entries that fail to decode are
// skipped with a warning rather than poisoning the whole partition.
func (b *RedisQuestionBank) Questions(ctx context.Context, skill string, bucket int) ([]domain.Question, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	key := cache.BankKey(skill, bucket)
	entries, err := b.client.HGetAll(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, domain.NewCacheError("read", err)
	}

	questions := make([]domain.Question, 0, len(entries))
	for field, raw := range entries {
		var q domain.Question
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			logger.Get().Warn("Skipping malformed question bank entry",
				zap.String("key", key),
				zap.String("field", field),
				zap.Error(err))
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// Add implements domain.QuestionBank.
func (b *RedisQuestionBank) Add(ctx context.Context, skill string, bucket int, q domain.Question) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	raw, err := json.Marshal(q)
	if err != nil {
		return domain.NewCacheError("encode", err)
	}

	key := cache.BankKey(skill, bucket)
	if err := b.client.HSet(ctx, key, q.ID, string(raw)).Err(); err != nil {
		return domain.NewCacheError("write", err)
	}
	return nil
}

// Ping implements domain.QuestionBank.
func (b *RedisQuestionBank) Ping(ctx context.Context) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()
	return b.client.Ping(ctx).Err()
}

var _ domain.QuestionBank = (*RedisQuestionBank)(nil)
