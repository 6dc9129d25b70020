package common

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// InitRedisClient connects to REDIS_CONN_STRING when it is set. Redis is
// optional: without it API token revocation is skipped and synthesis locks
// are process-local.
func InitRedisClient() (err error) {
	if RedisConnString == "" {
		RedisEnabled = false
		SysLog("REDIS_CONN_STRING not set, Redis is not enabled")
		return nil
	}
	RedisEnabled = true
	SysLog("Redis is enabled")
	opt, err := ParseRedisOption()
	if err != nil {
		return err
	}
	RDB = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = RDB.Ping(ctx).Result()
	return err
}

// ParseRedisOption parses REDIS_CONN_STRING, e.g. redis://:pass@localhost:6379/0.
func ParseRedisOption() (*redis.Options, error) {
	return redis.ParseURL(RedisConnString)
}

func CloseRedisClient() error {
	if RDB == nil {
		return nil
	}
	return RDB.Close()
}
