package ports

import (
	"context"
	"time"
)

// KeyValueStore is durable client storage surviving restarts. It holds the
// cart snapshot of each session.
type KeyValueStore interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// CaptchaStore keeps expected captcha answers for a limited time.
type CaptchaStore interface {
	Put(ctx context.Context, id string, answer int, ttl time.Duration) error
	// Take returns the answer and deletes it, so a challenge can be answered once.
	Take(ctx context.Context, id string) (int, bool, error)
}
