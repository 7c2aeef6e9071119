package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	slotKeyPrefix  = "progress:decoder:slot"
	defaultSlotTTL = 7 * 24 * time.Hour
)

// RedisProgressStore 管理 Redis 中的 slot 状态记录（幂等控制）
type RedisProgressStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisProgressStore 创建 Redis 判重管理器，ttl<=0 时使用 7 天
func NewRedisProgressStore(rdb *redis.Client, ttl time.Duration) *RedisProgressStore {
	if ttl <= 0 {
		ttl = defaultSlotTTL
	}
	return &RedisProgressStore{rdb: rdb, ttl: ttl}
}

func slotKey(slot uint64) string {
	return fmt.Sprintf("%s:%d", slotKeyPrefix, slot)
}

// parseSlotStatus 未知取值按 SlotUnknown 处理
func parseSlotStatus(val int) SlotStatus {
	switch SlotStatus(val) {
	case SlotProcessed, SlotInvalid, SlotPending:
		return SlotStatus(val)
	default:
		return SlotUnknown
	}
}

// GetSlotStatus 获取 slot 的状态（Unknown / Processed / Invalid / Pending）
func (r *RedisProgressStore) GetSlotStatus(ctx context.Context, slot uint64) (SlotStatus, error) {
	val, err := r.rdb.Get(ctx, slotKey(slot)).Int()
	switch {
	case errors.Is(err, redis.Nil):
		return SlotUnknown, nil
	case err != nil:
		return SlotUnknown, fmt.Errorf("redis get error: %w", err)
	default:
		return parseSlotStatus(val), nil
	}
}

// MarkSlotStatus 设置 slot 的状态
func (r *RedisProgressStore) MarkSlotStatus(ctx context.Context, slot uint64, status SlotStatus) error {
	if err := r.rdb.Set(ctx, slotKey(slot), int(status), r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set slot %d error: %w", slot, err)
	}
	return nil
}
