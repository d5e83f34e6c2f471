package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"skillsage/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func sampleQuestion(id string) domain.Question {
	return domain.Question{
		ID:    id,
		Title: "What does a goroutine leak look like?",
		Options: domain.Options{
			Opt1: "Unbounded memory growth",
			Opt2: "A compile error",
			Opt3: "A panic at startup",
			Opt4: "Nothing observable",
		},
		CorrectAnswer: "opt1",
		Explanation:   "Leaked goroutines accumulate and hold memory.",
		Difficulty:    60,
	}
}

func TestRedisQuestionBank_Questions(t *testing.T) {
	db, mock := redismock.NewClientMock()
	bank := NewRedisQuestionBank(db, 0)
	ctx := context.Background()

	key := "skillsage:bank:go:60"

	t.Run("Success", func(t *testing.T) {
		q := sampleQuestion("q1")
		raw, err := json.Marshal(q)
		assert.NoError(t, err)

		mock.ExpectHGetAll(key).SetVal(map[string]string{"q1": string(raw)})

		questions, err := bank.Questions(ctx, "go", 60)
		assert.NoError(t, err)
		assert.Len(t, questions, 1)
		assert.Equal(t, q, questions[0])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("EmptyPartition", func(t *testing.T) {
		mock.ExpectHGetAll(key).SetVal(map[string]string{})

		questions, err := bank.Questions(ctx, "go", 60)
		assert.NoError(t, err)
		assert.Empty(t, questions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MalformedEntrySkipped", func(t *testing.T) {
		q := sampleQuestion("q2")
		raw, err := json.Marshal(q)
		assert.NoError(t, err)

		mock.ExpectHGetAll(key).SetVal(map[string]string{
			"broken": "{not json",
			"q2":     string(raw),
		})

		questions, err := bank.Questions(ctx, "go", 60)
		assert.NoError(t, err)
		assert.Len(t, questions, 1)
		assert.Equal(t, "q2", questions[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("connection refused")
		mock.ExpectHGetAll(key).SetErr(redisErr)

		_, err := bank.Questions(ctx, "go", 60)
		var cacheErr *domain.CacheError
		assert.ErrorAs(t, err, &cacheErr)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisQuestionBank_Add(t *testing.T) {
	db, mock := redismock.NewClientMock()
	bank := NewRedisQuestionBank(db, 0)
	ctx := context.Background()

	key := "skillsage:bank:python:40"
	q := sampleQuestion("q9")
	q.Difficulty = 40
	raw, err := json.Marshal(q)
	assert.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectHSet(key, q.ID, string(raw)).SetVal(1)

		err := bank.Add(ctx, "Python", 40, q)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("readonly replica")
		mock.ExpectHSet(key, q.ID, string(raw)).SetErr(redisErr)

		err := bank.Add(ctx, "Python", 40, q)
		var cacheErr *domain.CacheError
		assert.ErrorAs(t, err, &cacheErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisQuestionBank_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	bank := NewRedisQuestionBank(db, time.Second)

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, bank.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
