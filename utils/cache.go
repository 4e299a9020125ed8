// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"dentaldesk/config"

	"github.com/go-redis/redis/v8"
)

// AgendaCacheClient is the dedicated client for cached day agendas.
var AgendaCacheClient *redis.Client

// InitAgendaCache initializes the Redis client for day-agenda caching.
func InitAgendaCache() {
	AgendaCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAgendaCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := AgendaCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Agenda Cache): %v", err)
	}
}

// GetAgendaCacheClient returns the Redis client for day-agenda caching.
func GetAgendaCacheClient() *redis.Client {
	if AgendaCacheClient == nil {
		InitAgendaCache()
	}
	return AgendaCacheClient
}
