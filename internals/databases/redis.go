package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"sekolahku_backend/internals/configs"
)

// Redis nil kalau REDIS_ADDR tidak diset; cache otomatis jadi pass-through.
var Redis *redis.Client

func ConnectRedis() *redis.Client {
	addr := configs.GetEnv("REDIS_ADDR")
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR kosong, cache publik nonaktif")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: configs.GetEnv("REDIS_PASSWORD"),
		DB:       configs.GetEnvInt("REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis tidak bisa dihubungi (%s): %v, cache nonaktif", addr, err)
		_ = client.Close()
		return nil
	}

	Redis = client
	log.Println("✅ Redis connected.")
	return client
}

func CloseRedis() {
	if Redis != nil {
		_ = Redis.Close()
	}
}
