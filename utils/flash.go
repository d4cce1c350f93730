package utils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// FlashStore хранит одноразовые сообщения между двумя переходами:
// Put перед редиректом, Take на целевой странице. Take отдаёт сообщение
// ровно один раз — на перезагрузке и back-навигации его уже нет.
type FlashStore interface {
	Put(ctx context.Context, message string) (token string, err error)
	Take(ctx context.Context, token string) (string, error)
	Close() error
}

const flashTTL = time.Minute

type redisFlashStore struct {
	client *redis.Client
}

func NewRedisFlashStore() (FlashStore, error) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost:6379"
	}
	if !strings.Contains(host, ":") {
		host = host + ":6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     host,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisFlashStore{client: client}, nil
}

func (s *redisFlashStore) Put(ctx context.Context, message string) (string, error) {
	if s.client == nil {
		return "", errors.New("Redis client is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	token := uuid.NewString()
	if err := s.client.Set(ctx, flashKey(token), message, flashTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store flash message: %w", err)
	}
	return token, nil
}

func (s *redisFlashStore) Take(ctx context.Context, token string) (string, error) {
	if s.client == nil {
		return "", errors.New("Redis client is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	// GETDEL — чтение и есть потребление
	val, err := s.client.GetDel(ctx, flashKey(token)).Result()
	if err == redis.Nil {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("failed to take flash message: %w", err)
	}
	return val, nil
}

func (s *redisFlashStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func flashKey(token string) string {
	return "flash:" + token
}
