package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agrimart/agri-storefront/internal/domain"
)

// SessionRepository stores live sessions. Deleting a session revokes its token.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

type redisSessionRepository struct {
	client *redis.Client
	prefix string
}

// NewSessionRepository returns a Redis-backed session repository.
func NewSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client, prefix: "session:"}
}

func (r *redisSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	return r.client.Set(ctx, r.prefix+session.ID, payload, ttl).Err()
}

func (r *redisSessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	payload, err := r.client.Get(ctx, r.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.prefix+id).Err()
}
