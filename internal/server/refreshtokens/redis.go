package refreshtokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/olivecrm/olivecrm/internal/common"
)

// RedisRepository keeps tokens in Redis with a TTL, one key per token plus a
// per-user set so a whole account can be revoked at once. The prefix
// separates token kinds ("refresh:", "pwreset:") sharing one client.
type RedisRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	return &RedisRepository{client: client, prefix: prefix}
}

func (r *RedisRepository) Create(ctx context.Context, token, userID string, validity time.Duration) error {
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.tokenKey(token), userID, validity)
	pipe.SAdd(ctx, r.userKey(userID), token)
	pipe.Expire(ctx, r.userKey(userID), validity)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

func (r *RedisRepository) UserID(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, r.tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", common.ErrorNotFound
	}
	if err != nil {
		return "", fmt.Errorf("look up token: %w", err)
	}
	return userID, nil
}

func (r *RedisRepository) Delete(ctx context.Context, token string) error {
	userID, err := r.client.Get(ctx, r.tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("look up token: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.tokenKey(token))
	pipe.SRem(ctx, r.userKey(userID), token)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (r *RedisRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	tokens, err := r.client.SMembers(ctx, r.userKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("list user tokens: %w", err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, r.tokenKey(token))
	}
	keys = append(keys, r.userKey(userID))

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete user tokens: %w", err)
	}
	return nil
}

func (r *RedisRepository) tokenKey(token string) string {
	return r.prefix + token
}

func (r *RedisRepository) userKey(userID string) string {
	return r.prefix + "user:" + userID
}
