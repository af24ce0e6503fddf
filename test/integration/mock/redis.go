package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisServer *miniredis.Miniredis

// NewRedis starts one in-process Redis shared by every scenario and returns its URL.
func NewRedis() string {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisServer = server
	})
	return "redis://" + redisServer.Addr()
}

// ClearRedis drops every cached rate and rate-limit counter.
func ClearRedis() error {
	if redisServer == nil {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
	defer client.Close()
	return client.FlushAll(context.TODO()).Err()
}
