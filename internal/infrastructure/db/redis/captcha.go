package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// CaptchaStore keeps pending login challenges until answered or expired.
// Key format: captcha:<id>
type CaptchaStore struct {
	client *redis.Client
}

// NewCaptchaStore creates a CaptchaStore wrapping the given Redis client.
func NewCaptchaStore(client *redis.Client) *CaptchaStore {
	return &CaptchaStore{client: client}
}

// Put records the expected answer of challenge id for ttl.
func (s *CaptchaStore) Put(ctx context.Context, id string, answer int, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(id), answer, ttl).Err(); err != nil {
		return fmt.Errorf("captcha put: %w", err)
	}
	return nil
}

// Take returns the expected answer and deletes the challenge, so every
// challenge is answered at most once.
func (s *CaptchaStore) Take(ctx context.Context, id string) (int, bool, error) {
	v, err := s.client.GetDel(ctx, s.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("captcha take: %w", err)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

func (s *CaptchaStore) key(id string) string {
	return "captcha:" + id
}
