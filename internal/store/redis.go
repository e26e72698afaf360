package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore appends documents to one stream per collection.
// Keys: "<prefix>col:<collection>" (stream) and "<prefix>meta:collections" (set).
// The stream entry id is the document id.
type RedisStore struct {
	client *redis.Client
	name   string
	prefix string
}

// NewRedisStore wraps client. name doubles as key prefix; empty means "blueexport".
func NewRedisStore(client *redis.Client, name string) *RedisStore {
	if name == "" {
		name = "blueexport"
	}
	return &RedisStore{client: client, name: name, prefix: name + ":"}
}

// ConnectRedis parses a redis:// or rediss:// URL and checks the server answers.
func ConnectRedis(ctx context.Context, url string, timeout time.Duration) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (r *RedisStore) streamKey(collection string) string {
	return r.prefix + "col:" + collection
}

func (r *RedisStore) collectionsKey() string {
	return r.prefix + "meta:collections"
}

func (r *RedisStore) Create(ctx context.Context, collection string, doc Document) (string, error) {
	if err := checkCollection(collection); err != nil {
		return "", err
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", wrap("serialize", collection, err)
	}
	var add *redis.StringCmd
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		add = pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: r.streamKey(collection),
			Values: map[string]interface{}{"doc": string(b)},
		})
		pipe.SAdd(ctx, r.collectionsKey(), collection)
		return nil
	})
	if err != nil {
		return "", wrap("insert", collection, err)
	}
	id, err := add.Result()
	if err != nil {
		return "", wrap("insert", collection, err)
	}
	return id, nil
}

func (r *RedisStore) ListCollections(ctx context.Context, limit int) ([]string, error) {
	names, err := r.client.SMembers(ctx, r.collectionsKey()).Result()
	if err != nil {
		return nil, wrap("list collections", "", err)
	}
	sort.Strings(names)
	if n := clampLimit(limit); len(names) > n {
		names = names[:n]
	}
	return names, nil
}

func (r *RedisStore) Name() string { return r.name }

func (r *RedisStore) Close(context.Context) error {
	return r.client.Close()
}
