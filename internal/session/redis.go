package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nfanikita31-bit/woodshop-sushko/pkg/redis"
)

// RedisStore keeps drafts in Redis with a TTL, so an order in progress
// survives a bot restart.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, chatID int64) (Draft, error) {
	data, err := s.client.Get(ctx, draftKey(chatID))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return Draft{}, ErrNotFound
		}
		return Draft{}, fmt.Errorf("get draft: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return Draft{}, fmt.Errorf("unmarshal draft: %w", err)
	}
	return draft, nil
}

func (s *RedisStore) Save(ctx context.Context, chatID int64, draft Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	if err := s.client.Set(ctx, draftKey(chatID), data); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, chatID int64) error {
	if err := s.client.Del(ctx, draftKey(chatID)); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

func draftKey(chatID int64) string {
	return fmt.Sprintf("draft:%d", chatID)
}
