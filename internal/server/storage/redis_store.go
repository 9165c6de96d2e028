package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/super-rummy/internal/protocol"
)

const (
	// Redis key 前缀
	lobbyKeyPrefix  = "lobby:"
	codeKeyPrefix   = "code:"
	resultKeyPrefix = "round:result:"

	// 大厅快照过期时间
	lobbyExpiration = 2 * time.Hour
	// 结算保留时间
	resultExpiration = 24 * time.Hour
)

// LobbyData 大厅快照（用于 Redis 序列化）
type LobbyData struct {
	Code      string                `json:"code"`
	Players   []PlayerData          `json:"players"`
	Settings  protocol.GameSettings `json:"settings"`
	Playing   bool                  `json:"playing"`
	CreatedAt int64                 `json:"created_at"`
	UpdatedAt int64                 `json:"updated_at"`
}

// PlayerData 座位数据
type PlayerData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Human bool   `json:"human"`
}

// ResultData 一局的结算
type ResultData struct {
	Code       string            `json:"code"`
	WinnerID   string            `json:"winner_id,omitempty"`
	HandValues map[string]int    `json:"hand_values"`
	Names      map[string]string `json:"names"`
	EndedAt    int64             `json:"ended_at"`
}

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// --- 大厅代码 ---

// ReserveCode 占用大厅代码，多个服务进程之间保证唯一；已被占用时返回 false
func (rs *RedisStore) ReserveCode(ctx context.Context, code string, ttl time.Duration) (bool, error) {
	return rs.client.SetNX(ctx, codeKeyPrefix+code, time.Now().Unix(), ttl).Result()
}

// RefreshCode 延长占用时间
func (rs *RedisStore) RefreshCode(ctx context.Context, code string, ttl time.Duration) error {
	return rs.client.Expire(ctx, codeKeyPrefix+code, ttl).Err()
}

// ReleaseCode 释放大厅代码
func (rs *RedisStore) ReleaseCode(ctx context.Context, code string) error {
	return rs.client.Del(ctx, codeKeyPrefix+code).Err()
}

// --- 大厅快照 ---

// SaveLobby 保存大厅快照
func (rs *RedisStore) SaveLobby(ctx context.Context, data *LobbyData) error {
	if data == nil {
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化大厅数据失败: %w", err)
	}
	return rs.client.Set(ctx, lobbyKeyPrefix+data.Code, jsonData, lobbyExpiration).Err()
}

// LoadLobby 读取大厅快照，不存在时返回 nil, nil
func (rs *RedisStore) LoadLobby(ctx context.Context, code string) (*LobbyData, error) {
	var data LobbyData
	found, err := rs.load(ctx, lobbyKeyPrefix+code, &data)
	if err != nil || !found {
		return nil, err
	}
	return &data, nil
}

// DeleteLobby 删除大厅快照
func (rs *RedisStore) DeleteLobby(ctx context.Context, code string) error {
	return rs.client.Del(ctx, lobbyKeyPrefix+code).Err()
}

// GetAllLobbyCodes 获取所有有快照的大厅代码
func (rs *RedisStore) GetAllLobbyCodes(ctx context.Context) ([]string, error) {
	var codes []string
	iter := rs.client.Scan(ctx, 0, lobbyKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		codes = append(codes, iter.Val()[len(lobbyKeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return codes, nil
}

// --- 结算 ---

// SaveResult 保存该大厅最近一局的结算
func (rs *RedisStore) SaveResult(ctx context.Context, data *ResultData) error {
	if data == nil {
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化结算数据失败: %w", err)
	}
	return rs.client.Set(ctx, resultKeyPrefix+data.Code, jsonData, resultExpiration).Err()
}

// LoadResult 读取最近一局的结算，不存在时返回 nil, nil
func (rs *RedisStore) LoadResult(ctx context.Context, code string) (*ResultData, error) {
	var data ResultData
	found, err := rs.load(ctx, resultKeyPrefix+code, &data)
	if err != nil || !found {
		return nil, err
	}
	return &data, nil
}

func (rs *RedisStore) load(ctx context.Context, key string, v any) (bool, error) {
	raw, err := rs.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("反序列化 %s 失败: %w", key, err)
	}
	return true, nil
}
